package boardapi

import (
	"testing"
)

func TestJSONCodec(t *testing.T) {
	var codec JSONCodec
	if codec.Name() != "json" {
		t.Errorf("Name = %q, want json", codec.Name())
	}

	data, err := codec.Marshal(&EditMessageRequest{GroupId: "g", MessageId: "m", Text: "hi"})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `{"group_id":"g","message_id":"m","text":"hi"}` {
		t.Errorf("Marshal = %s", data)
	}

	var req ListGroupsRequest
	if err := codec.Unmarshal(nil, &req); err != nil {
		t.Errorf("Unmarshal of empty body failed: %v", err)
	}
	if err := codec.Unmarshal([]byte(`{"query":"ord"}`), &req); err != nil || req.Query != "ord" {
		t.Errorf("Unmarshal = (%+v, %v)", req, err)
	}
	if err := codec.Unmarshal([]byte(`{`), &req); err == nil {
		t.Error("Expected error for malformed body")
	}
}

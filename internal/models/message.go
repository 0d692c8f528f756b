package models

// Message represents a single text entry on a group's board.
type Message struct {
	// ID is unique within the owning group.
	// Seed messages use "{groupID}-{index}", added messages use a UUIDv7.
	ID string `json:"id"`

	// Text is the trimmed, non-empty message body.
	Text string `json:"text"`

	// Timestamp is the human-readable creation or last edit time (e.g., "2:15:04 PM").
	// It is display text, not a sortable machine time.
	Timestamp string `json:"timestamp"`
}

// CloneMessages returns a copy of msgs. A nil input yields an empty, non-nil slice
// so the persisted form is always a JSON array.
func CloneMessages(msgs []Message) []Message {
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out
}

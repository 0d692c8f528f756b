package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/msgboard/internal/auth"
	"github.com/mmynk/msgboard/pkg/logging"
)

// captureLogs routes the default logger into a buffer for the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(logging.New(&buf, slog.LevelDebug))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func replying(err error) connect.UnaryFunc {
	return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		if err != nil {
			return nil, err
		}
		return connect.NewResponse(&struct{}{}), nil
	}
}

func TestLoggingInterceptorLevels(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		level string
	}{
		{"success", nil, "INF"},
		{"not found", connect.NewError(connect.CodeNotFound, errors.New("no such group")), "WRN"},
		{"invalid argument", connect.NewError(connect.CodeInvalidArgument, errors.New("title required")), "WRN"},
		{"internal", connect.NewError(connect.CodeInternal, errors.New("disk full")), "ERR"},
		{"plain error", errors.New("boom"), "ERR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLogs(t)
			call := LoggingInterceptor()(replying(tt.err))

			_, err := call(context.Background(), connect.NewRequest(&struct{}{}))
			if !errors.Is(err, tt.err) {
				t.Errorf("err = %v, want %v", err, tt.err)
			}
			out := buf.String()
			if !strings.Contains(out, tt.level) {
				t.Errorf("Expected %s record, got %q", tt.level, out)
			}
			if strings.Count(out, "\n") != 1 {
				t.Errorf("Expected one record, got %q", out)
			}
		})
	}
}

func TestLoggingInterceptorWithAuth(t *testing.T) {
	jwtManager, err := auth.NewJWTManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewJWTManager failed: %v", err)
	}
	call := LoggingInterceptor()(RequireAuth(jwtManager)(replying(nil)))

	t.Run("rejected call is logged", func(t *testing.T) {
		buf := captureLogs(t)
		_, err := call(context.Background(), connect.NewRequest(&struct{}{}))
		if connect.CodeOf(err) != connect.CodeUnauthenticated {
			t.Fatalf("Expected CodeUnauthenticated, got %v", err)
		}
		out := buf.String()
		if !strings.Contains(out, "WRN") || !strings.Contains(out, "unauthenticated") {
			t.Errorf("Expected warn record for rejected call, got %q", out)
		}
	})

	t.Run("device id is logged", func(t *testing.T) {
		buf := captureLogs(t)
		token, err := jwtManager.Generate("phone-1")
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		req := connect.NewRequest(&struct{}{})
		req.Header().Set("Authorization", "Bearer "+token)
		if _, err := call(context.Background(), req); err != nil {
			t.Fatalf("call failed: %v", err)
		}
		if out := buf.String(); !strings.Contains(out, "device_id=phone-1") {
			t.Errorf("Expected device id in record, got %q", out)
		}
	})
}

package observability

import (
	"context"
	"log/slog"
	"os"
	"sync"
)

// NoOpLogger discards everything. Intended for tests.
var NoOpLogger = slog.New(slog.DiscardHandler)

// NewLogger builds the process-wide slog logger. Production environments get
// JSON output for the log pipeline; anything else gets human-readable text.
func NewLogger(environment string) *slog.Logger {
	var handler slog.Handler
	switch environment {
	case "production", "staging":
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	return slog.New(handler)
}

// TestHandler is a slog.Handler that records log entries in memory so tests
// can assert on them.
type TestHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

// NewTestHandler creates a TestHandler.
func NewTestHandler() *TestHandler {
	return &TestHandler{}
}

func (h *TestHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *TestHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r.Clone())
	return nil
}

func (h *TestHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h *TestHandler) WithGroup(string) slog.Handler { return h }

// Records returns a copy of the captured log records.
func (h *TestHandler) Records() []slog.Record {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]slog.Record, len(h.records))
	copy(out, h.records)
	return out
}

// MessageLogged reports whether any captured record carries the given message.
func (h *TestHandler) MessageLogged(msg string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, r := range h.records {
		if r.Message == msg {
			return true
		}
	}
	return false
}

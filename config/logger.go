package config

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

// NewLogger returns a slog.Logger configured from GO_ENV and LOG_LEVEL.
// Production uses JSON handler; otherwise text handler.
// LOG_LEVEL may be: debug, info, warn, error (default: info).
func NewLogger() *slog.Logger {
	return slog.New(NewHandler(os.Stdout))
}

// NewHandler builds the handler NewLogger uses, writing to w.
func NewHandler(w io.Writer) slog.Handler {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}
	opts := &slog.HandlerOptions{Level: ParseLevel(os.Getenv("LOG_LEVEL"))}
	if env == "production" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// ParseLevel maps debug, info, warn and error to slog levels. Anything else is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogEntry is one record kept by a RingHandler.
type LogEntry struct {
	Time    time.Time      `json:"time"`
	Level   string         `json:"level"`
	Message string         `json:"message"`
	Attrs   map[string]any `json:"attrs,omitempty"`
}

type ring struct {
	mu      sync.Mutex
	entries []LogEntry
	next    int
	full    bool
}

func (r *ring) add(e LogEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[r.next] = e
	r.next = (r.next + 1) % len(r.entries)
	if r.next == 0 {
		r.full = true
	}
}

func (r *ring) snapshot() []LogEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.full {
		return append([]LogEntry(nil), r.entries[:r.next]...)
	}
	out := make([]LogEntry, 0, len(r.entries))
	out = append(out, r.entries[r.next:]...)
	return append(out, r.entries[:r.next]...)
}

// RingHandler forwards records to next and keeps the most recent ones in a fixed-capacity
// buffer; the oldest record is evicted first.
type RingHandler struct {
	next   slog.Handler
	buf    *ring
	attrs  []slog.Attr
	prefix string
}

// NewRingHandler returns a RingHandler keeping up to capacity records (minimum 1).
func NewRingHandler(next slog.Handler, capacity int) *RingHandler {
	if capacity < 1 {
		capacity = 1
	}
	return &RingHandler{next: next, buf: &ring{entries: make([]LogEntry, capacity)}}
}

func (h *RingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *RingHandler) Handle(ctx context.Context, rec slog.Record) error {
	entry := LogEntry{Time: rec.Time, Level: rec.Level.String(), Message: rec.Message}
	if len(h.attrs) > 0 || rec.NumAttrs() > 0 {
		entry.Attrs = make(map[string]any, len(h.attrs)+rec.NumAttrs())
		for _, a := range h.attrs {
			entry.Attrs[a.Key] = a.Value.Resolve().Any()
		}
		rec.Attrs(func(a slog.Attr) bool {
			entry.Attrs[h.prefix+a.Key] = attrValue(a.Value.Resolve())
			return true
		})
	}
	h.buf.add(entry)
	return h.next.Handle(ctx, rec)
}

func attrValue(v slog.Value) any {
	if err, ok := v.Any().(error); ok {
		return err.Error()
	}
	return v.Any()
}

func (h *RingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.next = h.next.WithAttrs(attrs)
	clone.attrs = append(append([]slog.Attr(nil), h.attrs...), prefixed(h.prefix, attrs)...)
	return &clone
}

func (h *RingHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.next = h.next.WithGroup(name)
	clone.prefix = h.prefix + name + "."
	return &clone
}

func prefixed(prefix string, attrs []slog.Attr) []slog.Attr {
	out := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		out[i] = slog.Attr{Key: prefix + a.Key, Value: a.Value}
	}
	return out
}

// Entries returns the buffered records, oldest first.
func (h *RingHandler) Entries() []LogEntry {
	return h.buf.snapshot()
}

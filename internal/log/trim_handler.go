package log

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"
)

// DefaultMaxAttrLen is the default cap on logged string attribute
// values. HTML fragments and URL lists past this length add noise, not
// signal.
const DefaultMaxAttrLen = 512

// MaskValue replaces sensitive attribute values.
const MaskValue = "***MASKED***"

// sensitiveKeys are attribute keys whose values are always masked.
// Fetch configuration can carry credentials in these headers and they
// must never reach a log sink.
var sensitiveKeys = map[string]bool{
	"authorization":       true,
	"proxy-authorization": true,
	"cookie":              true,
	"set-cookie":          true,
	"x-api-key":           true,
	"x-auth-token":        true,
}

// TrimHandler wraps an slog.Handler, masking sensitive attribute
// values and truncating oversized string values before records reach
// the underlying handler.
//
// Design decision: A handler wrapper rather than a custom logger
// because it composes with standard slog APIs and works with any
// underlying handler (text, JSON, ...).
type TrimHandler struct {
	// handler receives the sanitized records.
	handler slog.Handler

	// maxLen caps string attribute values.
	maxLen int
}

// TrimOption configures a TrimHandler.
type TrimOption func(*TrimHandler)

// WithMaxAttrLen overrides the string value cap.
func WithMaxAttrLen(n int) TrimOption {
	return func(h *TrimHandler) {
		if n > 0 {
			h.maxLen = n
		}
	}
}

// NewTrimHandler creates a TrimHandler wrapping handler. A nil handler
// falls back to slog.Default().Handler().
func NewTrimHandler(handler slog.Handler, opts ...TrimOption) *TrimHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}

	h := &TrimHandler{
		handler: handler,
		maxLen:  DefaultMaxAttrLen,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Enabled delegates to the underlying handler.
func (h *TrimHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle sanitizes the record's attributes and forwards it.
func (h *TrimHandler) Handle(ctx context.Context, r slog.Record) error {
	sanitized := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		sanitized.AddAttrs(h.sanitizeAttr(a))
		return true
	})

	return h.handler.Handle(ctx, sanitized)
}

// WithAttrs returns a TrimHandler whose underlying handler has the
// sanitized attrs pre-applied.
func (h *TrimHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	sanitized := make([]slog.Attr, 0, len(attrs))
	for _, a := range attrs {
		sanitized = append(sanitized, h.sanitizeAttr(a))
	}
	return &TrimHandler{
		handler: h.handler.WithAttrs(sanitized),
		maxLen:  h.maxLen,
	}
}

// WithGroup returns a TrimHandler for the given group.
func (h *TrimHandler) WithGroup(name string) slog.Handler {
	return &TrimHandler{
		handler: h.handler.WithGroup(name),
		maxLen:  h.maxLen,
	}
}

// sanitizeAttr masks sensitive values and trims oversized strings,
// recursing into groups.
func (h *TrimHandler) sanitizeAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		group := a.Value.Group()
		sanitized := make([]slog.Attr, 0, len(group))
		for _, member := range group {
			sanitized = append(sanitized, h.sanitizeAttr(member))
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(sanitized...)}
	}

	if sensitiveKeys[strings.ToLower(a.Key)] {
		return slog.String(a.Key, MaskValue)
	}

	if a.Value.Kind() == slog.KindString {
		if trimmed, ok := h.trim(a.Value.String()); ok {
			return slog.String(a.Key, trimmed)
		}
	}

	return a
}

// trim shortens s to the configured cap on a rune boundary. The second
// return is false when s is already short enough.
func (h *TrimHandler) trim(s string) (string, bool) {
	if len(s) <= h.maxLen {
		return s, false
	}

	cut := h.maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "...(trimmed)", true
}

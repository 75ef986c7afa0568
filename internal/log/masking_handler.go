package log

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"strings"
)

// cellValueKeys contains attribute keys whose values come straight from
// dataset cells. Cell values may contain personal data, so they are
// inspected and masked before they reach the underlying handler.
var cellValueKeys = map[string]bool{
	"value":  true,
	"raw":    true,
	"cell":   true,
	"sample": true,
}

// piiPatterns contains regex patterns that indicate personally identifiable
// values. Values matching these patterns are masked regardless of key name.
var piiPatterns = []*regexp.Regexp{
	// Email addresses
	regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`),

	// Long digit runs (national IDs, card numbers, phone numbers).
	// At least nine digits so ISO dates (eight digits) pass through.
	regexp.MustCompile(`^[+]?(?:\d[\s-]?){9,}$`),

	// US-style social security numbers
	regexp.MustCompile(`^\d{3}-\d{2}-\d{4}$`),

	// IBAN-style account numbers
	regexp.MustCompile(`^[A-Z]{2}\d{2}[A-Z0-9]{11,30}$`),
}

// MaskValue is the string used to replace masked values.
const MaskValue = "***MASKED***"

// maxLoggedValueLen bounds the length of cell values emitted to logs.
// Longer values are truncated with an ellipsis.
const maxLoggedValueLen = 120

// MaskingHandler wraps an slog.Handler to keep dataset content out of logs.
// It intercepts log records, masks attribute values that look like personal
// data, and truncates oversized cell values before passing them to the
// underlying handler.
//
// Design decision: We use a handler wrapper rather than a custom logger
// because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Components that accept *slog.Logger need no changes
type MaskingHandler struct {
	// handler is the underlying slog handler that receives masked records.
	handler slog.Handler
}

// NewMaskingHandler creates a new MaskingHandler wrapping the given handler.
// All log attributes are inspected before being passed to the underlying handler.
// If handler is nil, the returned MaskingHandler will use slog.Default().Handler().
func NewMaskingHandler(handler slog.Handler) *MaskingHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &MaskingHandler{handler: handler}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *MaskingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle masks the record's attributes and passes it to the underlying handler.
func (h *MaskingHandler) Handle(ctx context.Context, r slog.Record) error {
	// Create a new record with masked attributes
	masked := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		masked.AddAttrs(h.maskAttr(a))
		return true
	})

	return h.handler.Handle(ctx, masked)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are masked before being added.
func (h *MaskingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	maskedAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		maskedAttrs[i] = h.maskAttr(a)
	}
	return &MaskingHandler{handler: h.handler.WithAttrs(maskedAttrs)}
}

// WithGroup returns a new handler with the given group name.
func (h *MaskingHandler) WithGroup(name string) slog.Handler {
	return &MaskingHandler{handler: h.handler.WithGroup(name)}
}

// maskAttr masks a single attribute, recursively handling groups.
func (h *MaskingHandler) maskAttr(a slog.Attr) slog.Attr {
	// Handle groups recursively
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		maskedAttrs := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			maskedAttrs[i] = h.maskAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(maskedAttrs...)}
	}

	if a.Value.Kind() != slog.KindString {
		return a
	}

	strVal := a.Value.String()

	// Values matching PII patterns are masked regardless of key
	if isPIIValue(strVal) {
		return slog.String(a.Key, MaskValue)
	}

	// Cell-valued keys are additionally length-bounded
	if cellValueKeys[strings.ToLower(a.Key)] && len(strVal) > maxLoggedValueLen {
		return slog.String(a.Key, strVal[:maxLoggedValueLen-3]+"...")
	}

	return a
}

// isPIIValue checks if a value matches personal-data patterns.
// The value is trimmed first so padded cell content is still caught.
func isPIIValue(value string) bool {
	trimmed := strings.TrimSpace(value)
	for _, pattern := range piiPatterns {
		if pattern.MatchString(trimmed) {
			return true
		}
	}
	return false
}

// NewLogger creates a new slog.Logger with cell-value masking.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
//
// Returns a *slog.Logger that can be used with slog.SetDefault() or passed
// to components that accept *slog.Logger.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	textHandler := slog.NewTextHandler(w, opts)
	maskingHandler := NewMaskingHandler(textHandler)

	return slog.New(maskingHandler)
}

// NewJSONLogger creates a new slog.Logger with cell-value masking that
// outputs JSON format. Useful for structured log aggregation.
//
// Parameters:
//   - w: The io.Writer to write log output to
//   - verbose: If true, sets log level to Debug; otherwise Warn
//
// Returns a *slog.Logger configured for JSON output with masking.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	jsonHandler := slog.NewJSONHandler(w, opts)
	maskingHandler := NewMaskingHandler(jsonHandler)

	return slog.New(maskingHandler)
}

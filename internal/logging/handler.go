// Package logging provides imp-refactor's slog handler: a compact,
// lipgloss-colored line format for terminals, with a plain fallback for
// piped/CI output.
package logging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	debugStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
)

// Handler formats records as "TIME [level] message | key=value ...",
// coloring the level tag when color is enabled.
type Handler struct {
	w      io.Writer
	level  slog.Leveler
	color  bool
	attrs  []slog.Attr
	groups []string
	mu     *sync.Mutex
}

// NewHandler creates a Handler writing to w. color enables lipgloss
// styling and should be false for piped output and files.
func NewHandler(w io.Writer, opts *slog.HandlerOptions, color bool) *Handler {
	level := slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level.Level()
	}
	return &Handler{w: w, level: level, color: color, mu: &sync.Mutex{}}
}

// Enabled implements slog.Handler.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle implements slog.Handler.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	buf.WriteString(r.Time.UTC().Format(time.RFC3339))
	buf.WriteString(" [")
	buf.WriteString(h.levelTag(r.Level))
	buf.WriteString("] ")
	buf.WriteString(r.Message)

	attrs := make([]slog.Attr, 0, len(h.attrs)+r.NumAttrs())
	attrs = append(attrs, h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, h.resolveAttr(a))
		return true
	})

	if len(attrs) > 0 {
		buf.WriteString(" |")
		for _, a := range attrs {
			if a.Key == "" {
				continue
			}
			buf.WriteString(" ")
			key := a.Key
			if h.color {
				key = keyStyle.Render(key)
			}
			buf.WriteString(key)
			buf.WriteString("=")
			buf.WriteString(formatValue(a.Value))
		}
	}
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf.Bytes())
	return err
}

func (h *Handler) levelTag(level slog.Level) string {
	tag, style := levelParts(level)
	if !h.color {
		return tag
	}
	return style.Render(tag)
}

func levelParts(level slog.Level) (string, lipgloss.Style) {
	switch {
	case level < slog.LevelInfo:
		return "debug", debugStyle
	case level < slog.LevelWarn:
		return "info", infoStyle
	case level < slog.LevelError:
		return "warn", warnStyle
	default:
		return "error", errorStyle
	}
}

// WithAttrs implements slog.Handler.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]slog.Attr, len(h.attrs), len(h.attrs)+len(attrs))
	copy(newAttrs, h.attrs)
	for _, a := range attrs {
		newAttrs = append(newAttrs, h.resolveAttr(a))
	}
	return &Handler{w: h.w, level: h.level, color: h.color, attrs: newAttrs, groups: h.groups, mu: h.mu}
}

// WithGroup implements slog.Handler.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	newGroups := make([]string, len(h.groups)+1)
	copy(newGroups, h.groups)
	newGroups[len(h.groups)] = name
	return &Handler{w: h.w, level: h.level, color: h.color, attrs: h.attrs, groups: newGroups, mu: h.mu}
}

func (h *Handler) resolveAttr(a slog.Attr) slog.Attr {
	if len(h.groups) == 0 {
		return a
	}
	key := a.Key
	for i := len(h.groups) - 1; i >= 0; i-- {
		key = h.groups[i] + "." + key
	}
	return slog.Attr{Key: key, Value: a.Value}
}

func formatValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return v.String()
	case slog.KindTime:
		return v.Time().Format(time.RFC3339)
	case slog.KindDuration:
		return v.Duration().String()
	default:
		return fmt.Sprint(v.Any())
	}
}

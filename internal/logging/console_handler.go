package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

const consoleTimeLayout = "2006-01-02 15:04:05.000"

// consoleOutput is shared by every handler derived from the same root so
// lines from sibling loggers never interleave.
type consoleOutput struct {
	mu     sync.Mutex
	w      io.Writer
	styles map[string]lipgloss.Style
}

func newConsoleOutput(w io.Writer, colorize bool) *consoleOutput {
	out := &consoleOutput{w: w}
	if colorize {
		r := lipgloss.NewRenderer(w)
		out.styles = map[string]lipgloss.Style{
			"ERROR": r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
			"WARN":  r.NewStyle().Foreground(lipgloss.Color("3")),
			"INFO":  r.NewStyle().Foreground(lipgloss.Color("4")),
			"DEBUG": r.NewStyle().Foreground(lipgloss.Color("8")),
			"TRACE": r.NewStyle().Foreground(lipgloss.Color("8")).Faint(true),
		}
	}
	return out
}

func (o *consoleOutput) label(level slog.Level) string {
	label := levelLabel(level)
	if style, ok := o.styles[label]; ok {
		return style.Render(label)
	}
	return label
}

func (o *consoleOutput) write(line []byte) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, err := o.w.Write(line)
	return err
}

// consoleHandler renders one human-readable line per record:
//
//	2000-01-02 15:04:05.000 INFO intf: message key=value group.key=value
//
// Attributes bound through WithAttrs are encoded once and reused.
type consoleHandler struct {
	out       *consoleOutput
	level     slog.Leveler
	addSource bool
	component string
	prefix    string
	bound     []byte
}

func newConsoleHandler(w io.Writer, level slog.Leveler, addSource, colorize bool) *consoleHandler {
	return &consoleHandler{out: newConsoleOutput(w, colorize), level: level, addSource: addSource}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	ts := record.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	component := h.component

	var attrs []byte
	record.Attrs(func(attr slog.Attr) bool {
		if h.prefix == "" && attr.Key == FieldComponent && component == "" {
			component = attr.Value.Resolve().String()
			return true
		}
		attrs = appendConsoleAttr(attrs, h.prefix, attr)
		return true
	})

	line := make([]byte, 0, 96+len(h.bound)+len(attrs))
	line = ts.AppendFormat(line, consoleTimeLayout)
	line = append(line, ' ')
	line = append(line, h.out.label(record.Level)...)
	line = append(line, ' ')
	if component != "" {
		line = append(line, component...)
		line = append(line, ": "...)
	}
	if record.Message == "" {
		line = append(line, "(no message)"...)
	} else {
		line = append(line, record.Message...)
	}
	if h.addSource {
		if src := record.Source(); src != nil && src.File != "" {
			line = fmt.Appendf(line, " (%s:%d)", filepath.Base(src.File), src.Line)
		}
	}
	line = append(line, h.bound...)
	line = append(line, attrs...)
	line = append(line, '\n')
	return h.out.write(line)
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	next := *h
	next.bound = append([]byte(nil), h.bound...)
	for _, attr := range attrs {
		if h.prefix == "" && attr.Key == FieldComponent {
			next.component = attr.Value.Resolve().String()
			continue
		}
		next.bound = appendConsoleAttr(next.bound, h.prefix, attr)
	}
	return &next
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.prefix = h.prefix + name + "."
	return &next
}

func appendConsoleAttr(dst []byte, prefix string, attr slog.Attr) []byte {
	value := attr.Value.Resolve()
	if value.Kind() == slog.KindGroup {
		members := value.Group()
		if len(members) == 0 {
			return dst
		}
		if attr.Key != "" {
			prefix += attr.Key + "."
		}
		for _, member := range members {
			dst = appendConsoleAttr(dst, prefix, member)
		}
		return dst
	}
	if attr.Key == "" {
		return dst
	}
	dst = append(dst, ' ')
	dst = append(dst, prefix...)
	dst = append(dst, attr.Key...)
	dst = append(dst, '=')
	return appendConsoleValue(dst, value)
}

func appendConsoleValue(dst []byte, v slog.Value) []byte {
	switch v.Kind() {
	case slog.KindBool:
		return strconv.AppendBool(dst, v.Bool())
	case slog.KindInt64:
		return strconv.AppendInt(dst, v.Int64(), 10)
	case slog.KindUint64:
		return strconv.AppendUint(dst, v.Uint64(), 10)
	case slog.KindFloat64:
		return strconv.AppendFloat(dst, v.Float64(), 'g', -1, 64)
	case slog.KindDuration:
		return append(dst, v.Duration().String()...)
	case slog.KindTime:
		return v.Time().AppendFormat(dst, time.RFC3339)
	}
	var s string
	if err, ok := v.Any().(error); ok && v.Kind() == slog.KindAny {
		s = err.Error()
	} else {
		s = v.String()
	}
	if bare(s) {
		return append(dst, s...)
	}
	return strconv.AppendQuote(dst, s)
}

// bare reports whether s can be written unquoted in key=value form.
func bare(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError || r <= ' ' || r == '=' || r == '"' || r == 0x7f {
			return false
		}
		i += size
	}
	return true
}

func levelLabel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN"
	case level >= slog.LevelInfo:
		return "INFO"
	case level >= slog.LevelDebug:
		return "DEBUG"
	}
	return "TRACE"
}

package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// lineHandler writes one line per record:
//
//	2024-03-07 10:12:01 INFO  [1f0c9a2b] workspace: book added ean=9782070368228
//
// The action id and component move into the prefix; every other attribute
// follows the message as key=value.
type lineHandler struct {
	mu     *sync.Mutex
	out    io.Writer
	level  slog.Leveler
	fields []field
	group  string
}

type field struct {
	key   string
	value slog.Value
}

func newLineHandler(w io.Writer, level slog.Leveler) *lineHandler {
	return &lineHandler{mu: &sync.Mutex{}, out: w, level: level}
}

func (h *lineHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *lineHandler) Handle(_ context.Context, record slog.Record) error {
	fields := make([]field, 0, len(h.fields)+record.NumAttrs())
	fields = append(fields, h.fields...)
	record.Attrs(func(attr slog.Attr) bool {
		fields = collect(fields, h.group, attr)
		return true
	})

	var component, action string
	rest := fields[:0]
	for _, f := range fields {
		switch {
		case f.key == FieldComponent && component == "":
			component = valueText(f.value)
		case f.key == FieldActionID && action == "":
			action = valueText(f.value)
		case f.key == FieldComponent, f.key == FieldActionID:
		default:
			rest = append(rest, f)
		}
	}

	ts := record.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	buf := make([]byte, 0, 96+len(rest)*24)
	buf = ts.In(time.Local).AppendFormat(buf, lineTimestampLayout)
	buf = append(buf, ' ')
	buf = append(buf, levelTag(record.Level)...)
	if action != "" {
		if len(action) > shortActionID {
			action = action[:shortActionID]
		}
		buf = append(buf, " ["...)
		buf = append(buf, action...)
		buf = append(buf, ']')
	}
	buf = append(buf, ' ')
	if component != "" {
		buf = append(buf, component...)
		buf = append(buf, ": "...)
	}
	msg := strings.TrimSpace(record.Message)
	if msg == "" {
		msg = "(no message)"
	}
	buf = append(buf, msg...)
	for _, f := range rest {
		buf = append(buf, ' ')
		buf = append(buf, f.key...)
		buf = append(buf, '=')
		buf = appendValue(buf, f.value)
	}
	buf = append(buf, '\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.Write(buf)
	return err
}

func (h *lineHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.fields = make([]field, len(h.fields), len(h.fields)+len(attrs))
	copy(next.fields, h.fields)
	for _, attr := range attrs {
		next.fields = collect(next.fields, h.group, attr)
	}
	return &next
}

func (h *lineHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.group = joinKey(h.group, name)
	return &next
}

// collect flattens attr into fields, joining group names with dots.
func collect(fields []field, group string, attr slog.Attr) []field {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return fields
	}
	if attr.Value.Kind() != slog.KindGroup {
		if attr.Key == "" {
			return fields
		}
		return append(fields, field{key: joinKey(group, attr.Key), value: attr.Value})
	}
	inner := group
	if attr.Key != "" {
		inner = joinKey(group, attr.Key)
	}
	for _, member := range attr.Value.Group() {
		fields = collect(fields, inner, member)
	}
	return fields
}

func joinKey(group, key string) string {
	if group == "" {
		return key
	}
	return group + "." + key
}

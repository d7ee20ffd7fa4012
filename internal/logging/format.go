package logging

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

const lineTimestampLayout = "2006-01-02 15:04:05"

// shortActionID keeps enough of an action id to tell actions apart in one file.
const shortActionID = 8

// appendValue writes v in key=value form, quoting text that would break the line.
func appendValue(buf []byte, v slog.Value) []byte {
	switch v.Kind() {
	case slog.KindBool:
		return strconv.AppendBool(buf, v.Bool())
	case slog.KindInt64:
		return strconv.AppendInt(buf, v.Int64(), 10)
	case slog.KindUint64:
		return strconv.AppendUint(buf, v.Uint64(), 10)
	case slog.KindFloat64:
		return strconv.AppendFloat(buf, v.Float64(), 'f', -1, 64)
	case slog.KindTime:
		return v.Time().In(time.Local).AppendFormat(buf, lineTimestampLayout)
	case slog.KindDuration:
		return append(buf, v.Duration().String()...)
	}
	return appendText(buf, valueText(v))
}

func valueText(v slog.Value) string {
	if v.Kind() != slog.KindAny {
		return v.String()
	}
	if err, ok := v.Any().(error); ok {
		return err.Error()
	}
	return fmt.Sprint(v.Any())
}

func appendText(buf []byte, s string) []byte {
	if s == "" || strings.ContainsFunc(s, breaksLine) {
		return strconv.AppendQuote(buf, s)
	}
	return append(buf, s...)
}

func breaksLine(r rune) bool {
	return r <= ' ' || r == '=' || r == '"'
}

// levelTag pads labels to one width so messages line up.
func levelTag(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN "
	case level >= slog.LevelInfo:
		return "INFO "
	default:
		return "DEBUG"
	}
}

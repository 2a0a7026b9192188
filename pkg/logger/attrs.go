package logger

import (
	"fmt"
	"log/slog"
)

// Keys for log attributes.
const (
	LevelKey           = slog.LevelKey
	ErrorKey           = "error"
	ErrorVerboseKey    = "error_verbose"
	ErrorStackTraceKey = "error_stacktrace"
)

// Levels above [slog.LevelError].
const (
	LevelCritical = slog.Level(12)
	LevelPanic    = slog.Level(14)
	LevelFatal    = slog.Level(16)
)

// highLevels is ordered from the most to the least severe.
var highLevels = []struct {
	level slog.Level
	name  string
}{
	{LevelFatal, "FATAL"},
	{LevelPanic, "PANIC"},
	{LevelCritical, "CRITICAL"},
}

// levelAttrReplacer names the levels slog does not know about, e.g. PANIC or CRITICAL+1.
func levelAttrReplacer(groups []string, attr slog.Attr) slog.Attr {
	if len(groups) != 0 || attr.Key != LevelKey {
		return attr
	}
	l, ok := attr.Value.Any().(slog.Level)
	if !ok {
		return attr
	}
	for _, hl := range highLevels {
		if l < hl.level {
			continue
		}
		name := hl.name
		if diff := l - hl.level; diff != 0 {
			name = fmt.Sprintf("%s%+d", name, diff)
		}
		return slog.String(attr.Key, name)
	}
	return attr
}

// durationToMsAttrReplacer writes durations as integer milliseconds.
func durationToMsAttrReplacer(_ []string, attr slog.Attr) slog.Attr {
	if attr.Value.Kind() != slog.KindDuration {
		return attr
	}
	return slog.Int64(attr.Key, attr.Value.Duration().Milliseconds())
}

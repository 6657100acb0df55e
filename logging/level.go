package logging

import (
	"fmt"
	"strings"
	"sync/atomic"

	"go.uber.org/zap/zapcore"
)

// Level is an enum of log levels. Its value can be `DEBUG`, `INFO`, `WARN` or `ERROR`.
type Level int

const (
	// DEBUG log level.
	DEBUG Level = iota - 1
	// INFO log level.
	INFO
	// WARN log level.
	WARN
	// ERROR log level.
	ERROR
)

func (level Level) String() string {
	switch level {
	case DEBUG:
		return "Debug"
	case INFO:
		return "Info"
	case WARN:
		return "Warn"
	case ERROR:
		return "Error"
	default:
		return fmt.Sprintf("Level(%d)", int(level))
	}
}

// LevelFromString parses a case-insensitive level name: `debug`, `info`, `warn` (or `warning`)
// or `error`.
func LevelFromString(inp string) (Level, error) {
	switch strings.ToLower(inp) {
	case "debug":
		return DEBUG, nil
	case "info":
		return INFO, nil
	case "warn", "warning":
		return WARN, nil
	case "error":
		return ERROR, nil
	}
	return DEBUG, fmt.Errorf("unknown log level: %q", inp)
}

// AsZap converts the Level to a `zapcore.Level`.
func (level Level) AsZap() zapcore.Level {
	switch level {
	case DEBUG:
		return zapcore.DebugLevel
	case WARN:
		return zapcore.WarnLevel
	case ERROR:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// atomicLevel is a level shared by a logger and the registry that may re-level it.
type atomicLevel struct {
	val *atomic.Int32
}

func newAtomicLevelAt(level Level) atomicLevel {
	l := atomicLevel{val: &atomic.Int32{}}
	l.Set(level)
	return l
}

func (l atomicLevel) Set(level Level) {
	l.val.Store(int32(level))
}

func (l atomicLevel) Get() Level {
	return Level(l.val.Load())
}

// Package logging wraps logrus behind a small leveled API used across the
// service. Fields are attached per call with WithField/WithFields.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// ParseLevel maps a config string to a Level. Unknown values fall back to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Fields is a set of structured key/value pairs attached to one log entry.
type Fields map[string]interface{}

func WithField(key string, value interface{}) Fields {
	return Fields{key: value}
}

func WithFields(fields map[string]interface{}) Fields {
	return Fields(fields)
}

type Logger struct {
	entry *logrus.Logger
	level Level
}

func New(level Level) *Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetLevel(toLogrus(level))
	return &Logger{entry: l, level: level}
}

func (l *Logger) Level() Level {
	return l.level
}

func (l *Logger) SetOutput(w io.Writer) {
	l.entry.SetOutput(w)
}

// SetFormat switches between "json" (default) and "text" output.
func (l *Logger) SetFormat(format string) {
	if strings.EqualFold(format, "text") {
		l.entry.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		return
	}
	l.entry.SetFormatter(&logrus.JSONFormatter{})
}

func (l *Logger) Debug(msg string, fields ...Fields) {
	l.with(fields).Debug(msg)
}

func (l *Logger) Info(msg string, fields ...Fields) {
	l.with(fields).Info(msg)
}

func (l *Logger) Warn(msg string, fields ...Fields) {
	l.with(fields).Warn(msg)
}

func (l *Logger) Error(msg string, fields ...Fields) {
	l.with(fields).Error(msg)
}

func (l *Logger) with(fields []Fields) *logrus.Entry {
	merged := logrus.Fields{}
	for _, f := range fields {
		for k, v := range f {
			merged[k] = v
		}
	}
	return l.entry.WithFields(merged)
}

func toLogrus(level Level) logrus.Level {
	switch level {
	case LevelDebug:
		return logrus.DebugLevel
	case LevelWarn:
		return logrus.WarnLevel
	case LevelError:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

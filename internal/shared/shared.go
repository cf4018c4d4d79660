// package shared defines shared helpers
package shared

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger creates a new [log.Logger] instance with the specified [io.Writer], with timestamps and caller reporting enabled.
//
// The writer defaults to [os.Stderr]
func NewLogger(w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := log.Options{ReportTimestamp: true, ReportCaller: true}
	return log.NewWithOptions(w, opts)
}

// NewFileLogger creates a [log.Logger] that writes to a size-rotated file.
func NewFileLogger(conf LogConfig) *log.Logger {
	w := &lumberjack.Logger{
		Filename:   conf.File,
		MaxSize:    conf.MaxSizeMB,
		MaxBackups: conf.MaxBackups,
		Compress:   true,
	}
	l := log.NewWithOptions(w, log.Options{ReportTimestamp: true, Formatter: log.LogfmtFormatter})
	SetLogLevelString(l, conf.Level)
	return l
}

// LoggerFromConfig builds the application logger.
//
// Logs go to a rotating file when [LogConfig.File] is set, otherwise to w.
func LoggerFromConfig(conf LogConfig, w io.Writer) *log.Logger {
	if conf.File != "" {
		return NewFileLogger(conf)
	}
	l := NewLogger(w)
	SetLogLevelString(l, conf.Level)
	return l
}

// WithLogger creates a child [log.Logger] with the specified key-value pairs added to all log entries.
func WithLogger(l *log.Logger, kv ...any) *log.Logger {
	return l.With(kv...)
}

// SetLogLevelString parses level and applies it. Unknown or empty levels leave the logger unchanged.
func SetLogLevelString(l *log.Logger, level string) {
	if level == "" {
		return
	}
	if ll, err := log.ParseLevel(level); err == nil {
		l.SetLevel(ll)
	}
}

// GenerateID generates a new v4 [uuid.UUID] as a string
func GenerateID() string {
	return uuid.New().String()
}

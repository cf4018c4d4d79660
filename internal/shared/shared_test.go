package shared

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestLoggers(t *testing.T) {
	t.Run("SetLogLevelString", func(t *testing.T) {
		tc := []struct {
			name  string
			level string
			want  log.Level
		}{
			{name: "debug", level: "debug", want: log.DebugLevel},
			{name: "warn", level: "warn", want: log.WarnLevel},
			{name: "empty keeps level", level: "", want: log.InfoLevel},
			{name: "unknown keeps level", level: "loud", want: log.InfoLevel},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				l := NewLogger(&bytes.Buffer{})
				SetLogLevelString(l, tt.level)
				if got := l.GetLevel(); got != tt.want {
					t.Errorf("SetLogLevelString(%q) = %v, want %v", tt.level, got, tt.want)
				}
			})
		}
	})

	t.Run("LoggerFromConfig writes to writer", func(t *testing.T) {
		var buf bytes.Buffer
		l := LoggerFromConfig(LogConfig{Level: "warn"}, &buf)

		l.Info("hidden")
		WithLogger(l, "request_id", "abc").Warn("shown")

		out := buf.String()
		if strings.Contains(out, "hidden") {
			t.Errorf("expected info to be filtered, got %q", out)
		}
		if !strings.Contains(out, "shown") || !strings.Contains(out, "request_id=abc") {
			t.Errorf("expected warn with fields, got %q", out)
		}
	})

	t.Run("LoggerFromConfig uses file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "spotq.log")
		l := LoggerFromConfig(LogConfig{Level: "debug", File: path, MaxSizeMB: 1, MaxBackups: 1}, nil)
		if l.GetLevel() != log.DebugLevel {
			t.Errorf("expected debug level, got %v", l.GetLevel())
		}
	})
}

func TestIDs(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if a == b || len(a) != 36 {
		t.Errorf("unexpected ids %q %q", a, b)
	}

	state := GenerateState()
	if len(state) != 32 || strings.Contains(state, "-") {
		t.Errorf("unexpected state %q", state)
	}
}

func TestOpenBrowser(t *testing.T) {
	prev := getRuntime
	t.Cleanup(func() { getRuntime = prev })

	getRuntime = func() string { return "plan9" }
	if err := OpenBrowser("https://example.com"); !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}

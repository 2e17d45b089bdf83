package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		debug   bool
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, false, true},
		{"debug at info level", log.InfoLevel, true, false},
		{"debug at debug level", log.DebugLevel, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.level)
			if tt.debug {
				logger.Debug("parsed row", "line", 2)
			} else {
				logger.Info("imported statement", "file", "sept.csv")
			}

			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	prog.start = prog.start.Add(-1500 * time.Millisecond)

	prog.done("Imported 2 statements")

	out := buf.String()
	if !strings.Contains(out, "Imported 2 statements") {
		t.Errorf("progress output should contain the message, got %q", out)
	}
	if !strings.Contains(out, "(1.5") {
		t.Errorf("progress output should contain the elapsed time, got %q", out)
	}
}

func TestLoggerContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("loggerFromContext should fall back to log.Default()")
	}

	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)
	ctx := withLogger(context.Background(), custom)
	if loggerFromContext(ctx) != custom {
		t.Error("loggerFromContext should return the attached logger")
	}
}

func TestDebugHooksLogThroughContext(t *testing.T) {
	var buf bytes.Buffer
	ctx := withLogger(context.Background(), newLogger(&buf, log.DebugLevel))

	h := debugHooks{}
	h.OnImportComplete(ctx, "statement.csv", 3, 1, time.Millisecond, nil)
	h.OnCacheHit(ctx, "flow")

	out := buf.String()
	for _, want := range []string{"import finished", "statement.csv", "cache hit"} {
		if !strings.Contains(out, want) {
			t.Errorf("debug hooks output should contain %q, got %q", want, out)
		}
	}
}

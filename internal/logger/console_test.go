package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsoleLoggerLevels(t *testing.T) {
	tests := []struct {
		name       string
		level      string
		logFn      func(*ConsoleLogger)
		wantOutput bool
		wantTag    string
	}{
		{"info passes at info", "info", func(cl *ConsoleLogger) { cl.LogInfo("hello") }, true, "[INFO]"},
		{"debug dropped at info", "info", func(cl *ConsoleLogger) { cl.LogDebug("hidden") }, false, ""},
		{"debug passes at debug", "debug", func(cl *ConsoleLogger) { cl.LogDebug("shown") }, true, "[DEBUG]"},
		{"trace passes at trace", "trace", func(cl *ConsoleLogger) { cl.LogTrace("deep") }, true, "[TRACE]"},
		{"warn passes at error filter only when error", "error", func(cl *ConsoleLogger) { cl.LogWarn("nope") }, false, ""},
		{"error always passes", "error", func(cl *ConsoleLogger) { cl.LogError("boom") }, true, "[ERROR]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			cl := NewConsoleLogger(&buf, tt.level)
			tt.logFn(cl)

			if !tt.wantOutput {
				assert.Empty(t, buf.String())
				return
			}
			assert.Contains(t, buf.String(), tt.wantTag)
			assert.True(t, strings.HasPrefix(buf.String(), "["), "expected timestamp prefix")
		})
	}
}

func TestConsoleLoggerNilWriter(t *testing.T) {
	cl := NewConsoleLogger(nil, "info")
	// Must not panic.
	cl.LogInfo("into the void")
}

func TestConsoleLoggerInvalidLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	cl := NewConsoleLogger(&buf, "extremely-verbose")

	cl.LogDebug("hidden")
	assert.Empty(t, buf.String())

	cl.LogInfo("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestLogCommand(t *testing.T) {
	var buf bytes.Buffer
	cl := NewConsoleLogger(&buf, "debug")

	cl.LogCommand([]string{"dmenu", "-l", "5"})
	assert.Contains(t, buf.String(), "exec: dmenu -l 5")
}

func TestNonTerminalWriterHasNoColor(t *testing.T) {
	var buf bytes.Buffer
	cl := NewConsoleLogger(&buf, "info")
	cl.LogError("plain")

	assert.NotContains(t, buf.String(), "\x1b[")
}

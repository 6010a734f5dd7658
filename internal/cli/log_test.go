package cli

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("rendered") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("wave") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("wave") }, true},
		{"warn at info level", log.InfoLevel, func(l *log.Logger) { l.Warn("skipped") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))

			if gotLog := buf.Len() > 0; gotLog != tt.wantLog {
				t.Errorf("got log output = %v, want %v", gotLog, tt.wantLog)
			}
		})
	}
}

func TestNewLoggerTimestamp(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, log.InfoLevel).Info("build started", "target", "web")

	if !regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{2} `).MatchString(buf.String()) {
		t.Errorf("log line %q should start with a 15:04:05.00 timestamp", buf.String())
	}
	if !strings.Contains(buf.String(), "target=web") {
		t.Errorf("log line %q should carry key/value pairs", buf.String())
	}
}

func TestProgressDone(t *testing.T) {
	tests := []struct {
		name    string
		msg     string
		keyvals []any
		want    string
	}{
		{"elapsed only", "Loaded project", nil, `Loaded project elapsed=\d+(ms|s|µs|ns)?`},
		{"with fields", "Wrote artifacts", []any{"assets", 4}, `Wrote artifacts assets=4 elapsed=\d+(ms|s|µs|ns)?`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			newProgress(newLogger(&buf, log.InfoLevel)).done(tt.msg, tt.keyvals...)

			if !regexp.MustCompile(tt.want).MatchString(buf.String()) {
				t.Errorf("done() output = %q, want match for %q", buf.String(), tt.want)
			}
		})
	}
}

func TestLoggerFromContext(t *testing.T) {
	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)

	if got := loggerFromContext(withLogger(context.Background(), custom)); got != custom {
		t.Error("loggerFromContext should return the attached logger")
	}
	if loggerFromContext(context.Background()) == nil {
		t.Error("loggerFromContext should fall back to the default logger")
	}
	//nolint:staticcheck // nil context is handled explicitly
	if loggerFromContext(nil) == nil {
		t.Error("loggerFromContext(nil) should not return nil")
	}
}

func TestLoadProjectLogsToContextLogger(t *testing.T) {
	var cliBuf, ctxBuf bytes.Buffer
	c := New(&cliBuf, LogInfo, testConfig(t))
	ctx := withLogger(context.Background(), newLogger(&ctxBuf, log.InfoLevel))

	if _, err := c.loadProject(ctx, []string{writeProject(t, townProject)}); err != nil {
		t.Fatalf("loadProject() error = %v", err)
	}
	if !strings.Contains(ctxBuf.String(), "Loaded project") {
		t.Errorf("context logger output = %q, want load progress", ctxBuf.String())
	}
	if cliBuf.Len() != 0 {
		t.Errorf("CLI logger should be unused when the context carries one, got %q", cliBuf.String())
	}
}

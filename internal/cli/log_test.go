package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
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
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("test") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("test") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("test") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestNewLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, log.DebugLevel).Error("no name found", "index", 3)

	line := buf.String()
	if !regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\.\d{2} `).MatchString(line) {
		t.Errorf("missing timestamp: %q", line)
	}
	if !strings.Contains(line, "log_test.go:") {
		t.Errorf("missing caller: %q", line)
	}
	if !strings.Contains(line, "ERRO") || !strings.Contains(line, "index=3") {
		t.Errorf("missing level or fields: %q", line)
	}
}

func TestOpenLogAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipviz.log")

	for _, msg := range []string{"first", "second"} {
		logger, closer, err := openLog(path, nil)
		if err != nil {
			t.Fatalf("openLog() error: %v", err)
		}
		logger.Debug(msg)
		closer.Close()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("log has %d lines, want 2:\n%s", len(lines), data)
	}
	runID := regexp.MustCompile(`run=([0-9a-f-]{36})`)
	a, b := runID.FindStringSubmatch(lines[0]), runID.FindStringSubmatch(lines[1])
	if a == nil || b == nil {
		t.Fatalf("records missing run id:\n%s", data)
	}
	if a[1] == b[1] {
		t.Error("each run should get its own id")
	}
}

func TestOpenLogMirror(t *testing.T) {
	var mirror bytes.Buffer
	logger, closer, err := openLog(filepath.Join(t.TempDir(), "pipviz.log"), &mirror)
	if err != nil {
		t.Fatal(err)
	}
	defer closer.Close()
	logger.Info("mirrored")
	if !strings.Contains(mirror.String(), "mirrored") {
		t.Error("verbose mirror should receive records")
	}
}

func TestOpenLogBadPath(t *testing.T) {
	if _, _, err := openLog(filepath.Join(t.TempDir(), "missing", "dir", "x.log"), nil); err == nil {
		t.Error("openLog() should fail for a missing directory")
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	newProgress(newLogger(&buf, log.InfoLevel)).done("built registry", "packages", 4)
	out := buf.String()
	if !strings.Contains(out, "built registry") || !strings.Contains(out, "packages=4") || !strings.Contains(out, "elapsed=") {
		t.Errorf("progress.done() output = %q", out)
	}
}

func TestLoggerFromContext(t *testing.T) {
	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)
	if loggerFromContext(withLogger(context.Background(), custom)) != custom {
		t.Error("loggerFromContext should return the attached logger")
	}
	if loggerFromContext(context.Background()) == nil {
		t.Error("loggerFromContext should never return nil")
	}
}

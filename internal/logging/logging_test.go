package logging

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func useTempLog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "gallery.log")
	Configure(path)
	t.Cleanup(func() {
		Configure("")
		SetTraceEnabled(false)
	})
	return path
}

func TestErrorWritesStructuredRecord(t *testing.T) {
	path := useTempLog(t)
	Error(errors.New("boom"))
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(data))), &entry); err != nil {
		t.Fatalf("expected JSON entry, got %q: %v", data, err)
	}
	if entry["level"] != "ERROR" || entry["error"] != "boom" {
		t.Fatalf("unexpected entry %#v", entry)
	}
}

func TestTraceRespectsToggle(t *testing.T) {
	path := useTempLog(t)
	Trace("catalog.load", map[string]interface{}{"n": 1})
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no log file while tracing disabled")
	}
	SetTraceEnabled(true)
	Trace("catalog.load", map[string]interface{}{"n": 1})
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"event":"catalog.load"`) {
		t.Fatalf("expected trace event in log, got %s", data)
	}
}

func TestConfigureEmptyFallsBackToDefault(t *testing.T) {
	Configure("  ")
	if Path() != defaultLogFile {
		t.Fatalf("expected %s, got %s", defaultLogFile, Path())
	}
}

package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]string{"": "info", "DEBUG": "debug", " warn ": "warn", "error": "error"}
	for in, want := range cases {
		lvl, err := ParseLevel(in)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if lvl.String() != want {
			t.Fatalf("parse %q: expected %s, got %s", in, want, lvl)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "kiril.log")
	log, closeFn, err := New(Options{Path: path, Level: "info"})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	log.Debug("hidden")
	log.Info("progress saved", zap.Int("streak", 3))
	closeFn()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d: %s", len(lines), data)
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("decode entry: %v", err)
	}
	if entry["msg"] != "progress saved" || entry["level"] != "INFO" || entry["streak"] != float64(3) {
		t.Fatalf("unexpected entry %v", entry)
	}
}

func TestNewOff(t *testing.T) {
	dir := t.TempDir()
	log, closeFn, err := New(Options{Path: filepath.Join(dir, "kiril.log"), Level: "off"})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	log.Error("dropped")
	closeFn()
	if _, err := os.Stat(filepath.Join(dir, "kiril.log")); !os.IsNotExist(err) {
		t.Fatalf("expected no log file, got %v", err)
	}
}

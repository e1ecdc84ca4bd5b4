package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verte-zerg/kiril/internal/alphabet"
	"github.com/verte-zerg/kiril/internal/config"
)

func TestDefaultConfigTemplateParses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	fc, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("template must be valid TOML: %v", err)
	}
	if fc.Reflex.DwellSeconds != nil || fc.Audio.Enabled != nil {
		t.Fatalf("template values must be commented out")
	}
	for _, section := range []string{"[reflex]", "[rain]", "[blitz]", "[matching]", "[audio]", "[log]"} {
		if !strings.Contains(defaultConfigTemplate(), section) {
			t.Fatalf("template missing %s", section)
		}
	}
}

func TestTranslitCommand(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"translit", "çay", "şeker"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	want := alphabet.Transliterate("çay şeker") + "\n"
	if out.String() != want {
		t.Fatalf("got %q want %q", out.String(), want)
	}
}

func TestFlagsOverrideConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv(config.EnvDB, "")
	t.Setenv(config.EnvAudio, "")
	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--dwell", "9", "--no-audio", "--pairs", "4"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	s, err := loadSettings(cmd)
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if s.DwellSeconds != 9 || s.MatchPairs != 4 || s.AudioEnabled {
		t.Fatalf("flags not applied: %+v", s)
	}
	if s.LockStreak != config.Defaults().LockStreak {
		t.Fatalf("untouched flags must keep config values: %+v", s)
	}
}

func TestFlagsOverrideEnv(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv(config.EnvDB, "/tmp/from-env.db")
	t.Setenv(config.EnvLogLevel, "debug")
	t.Setenv(config.EnvAudio, "")
	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--log-level", "warn"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	s, err := loadSettings(cmd)
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if s.LogLevel != "warn" {
		t.Fatalf("flag must win over %s, got %q", config.EnvLogLevel, s.LogLevel)
	}
	if s.DBPath != "/tmp/from-env.db" {
		t.Fatalf("env must win over defaults, got %q", s.DBPath)
	}
	if !strings.Contains(defaultConfigTemplate(), "CLI flags override both") {
		t.Fatalf("template must describe flag precedence")
	}
}

func TestRejectsInvalidFlag(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--lives", "0"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if _, err := loadSettings(cmd); err == nil {
		t.Fatalf("expected validation error")
	}
}

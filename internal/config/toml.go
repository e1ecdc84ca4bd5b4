// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/kiril/internal/matching"
	"github.com/verte-zerg/kiril/internal/model"
)

// Environment overrides.
const (
	EnvDB       = "KIRIL_DB"
	EnvLogLevel = "KIRIL_LOG_LEVEL"
	EnvLogFile  = "KIRIL_LOG"
	EnvAudio    = "KIRIL_AUDIO"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Reflex   ReflexConfig   `toml:"reflex"`
	Rain     RainConfig     `toml:"rain"`
	Blitz    BlitzConfig    `toml:"blitz"`
	Matching MatchingConfig `toml:"matching"`
	Hunt     HuntConfig     `toml:"hunt"`
	Audio    AudioConfig    `toml:"audio"`
	Log      LogConfig      `toml:"log"`
}

// ReflexConfig maps letter acquisition settings.
type ReflexConfig struct {
	DwellSeconds *int `toml:"dwell-seconds"`
	LockStreak   *int `toml:"lock-streak"`
}

// RainConfig maps falling-letters settings.
type RainConfig struct {
	Lives *int `toml:"lives"`
}

// BlitzConfig maps timed quiz settings.
type BlitzConfig struct {
	Seconds *int `toml:"seconds"`
	Deck    *int `toml:"deck"`
}

// MatchingConfig maps rope puzzle settings.
type MatchingConfig struct {
	Pairs *int `toml:"pairs"`
}

// HuntConfig maps word search settings.
type HuntConfig struct {
	Seconds *int `toml:"seconds"`
}

// AudioConfig maps speech and tone settings.
type AudioConfig struct {
	Enabled *bool    `toml:"enabled"`
	Volume  *float64 `toml:"volume"`
	Speech  *string  `toml:"speech"`
	Locale  *string  `toml:"locale"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
	File  *string `toml:"file"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Defaults returns the built-in settings.
func Defaults() model.Settings {
	return model.Settings{
		DwellSeconds: 5,
		LockStreak:   3,
		RainLives:    3,
		BlitzSeconds: 60,
		BlitzDeck:    40,
		MatchPairs:   5,
		HuntSeconds:  180,
		AudioEnabled: true,
		Volume:       0.6,
		SpeechCmd:    "espeak-ng -v {locale} {text}",
		SpeechLocale: "ru",
		LogLevel:     "info",
		DBPath:       DefaultDBPath(),
		LogPath:      DefaultLogPath(),
	}
}

// Resolve layers the file config and then environment overrides over the
// defaults, and validates the result.
func Resolve(fc FileConfig, env Env) (model.Settings, error) {
	s := Defaults()
	setInt(&s.DwellSeconds, fc.Reflex.DwellSeconds)
	setInt(&s.LockStreak, fc.Reflex.LockStreak)
	setInt(&s.RainLives, fc.Rain.Lives)
	setInt(&s.BlitzSeconds, fc.Blitz.Seconds)
	setInt(&s.BlitzDeck, fc.Blitz.Deck)
	setInt(&s.MatchPairs, fc.Matching.Pairs)
	setInt(&s.HuntSeconds, fc.Hunt.Seconds)
	if fc.Audio.Enabled != nil {
		s.AudioEnabled = *fc.Audio.Enabled
	}
	if fc.Audio.Volume != nil {
		s.Volume = *fc.Audio.Volume
	}
	if fc.Audio.Speech != nil {
		s.SpeechCmd = *fc.Audio.Speech
	}
	if fc.Audio.Locale != nil {
		s.SpeechLocale = *fc.Audio.Locale
	}
	if fc.Log.Level != nil {
		s.LogLevel = *fc.Log.Level
	}
	if fc.Log.File != nil {
		s.LogPath = *fc.Log.File
	}

	if v, ok := env.Lookup(EnvDB); ok && v != "" {
		s.DBPath = v
	}
	if v, ok := env.Lookup(EnvLogLevel); ok && v != "" {
		s.LogLevel = v
	}
	if v, ok := env.Lookup(EnvLogFile); ok && v != "" {
		s.LogPath = v
	}
	if v, ok := env.Lookup(EnvAudio); ok && v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return model.Settings{}, fmt.Errorf("invalid %s: %w", EnvAudio, err)
		}
		s.AudioEnabled = enabled
	}

	if err := Validate(s); err != nil {
		return model.Settings{}, err
	}
	return s, nil
}

// Validate checks value ranges.
func Validate(s model.Settings) error {
	checks := []struct {
		name string
		v    int
		min  int
	}{
		{"reflex.dwell-seconds", s.DwellSeconds, 0},
		{"reflex.lock-streak", s.LockStreak, 1},
		{"rain.lives", s.RainLives, 1},
		{"blitz.seconds", s.BlitzSeconds, 1},
		{"blitz.deck", s.BlitzDeck, 1},
		{"matching.pairs", s.MatchPairs, 2},
		{"hunt.seconds", s.HuntSeconds, 1},
	}
	for _, c := range checks {
		if c.v < c.min {
			return fmt.Errorf("%s must be >= %d", c.name, c.min)
		}
	}
	if s.MatchPairs > matching.MaxPairs {
		return fmt.Errorf("matching.pairs must be <= %d", matching.MaxPairs)
	}
	if s.Volume < 0 || s.Volume > 1 {
		return fmt.Errorf("audio.volume must be between 0 and 1")
	}
	if strings.TrimSpace(s.DBPath) == "" {
		return fmt.Errorf("database path is empty")
	}
	return nil
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

// Package model defines shared data structures.
package model

import "time"

// SchemaVersion is the current ProgressRecord layout version.
const SchemaVersion = 1

// HistoryLimit caps the number of daily history entries kept.
const HistoryLimit = 30

// DateLayout is the calendar date format used in the progress record.
const DateLayout = "2006-01-02"

// ReflexStatus is the persisted acquisition state of one letter.
type ReflexStatus struct {
	Coded  bool `json:"coded"`
	Locked bool `json:"locked"`
}

// ReflexPatch is a partial ReflexStatus update; nil fields are left as-is.
type ReflexPatch struct {
	Coded  *bool
	Locked *bool
}

// HistoryEntry aggregates one calendar day of practice.
type HistoryEntry struct {
	Date    string `json:"date"`
	Words   int    `json:"words"`
	Correct int    `json:"correct"`
	Time    int64  `json:"time"`
}

// ProgressRecord is the single persisted learner aggregate.
type ProgressRecord struct {
	SchemaVersion    int                     `json:"schemaVersion"`
	Streak           int                     `json:"streak"`
	LastPracticeDate *string                 `json:"lastPracticeDate"`
	TodayWords       int                     `json:"todayWords"`
	TodayCorrect     int                     `json:"todayCorrect"`
	TodayTime        int64                   `json:"todayTime"`
	TotalWords       int                     `json:"totalWords"`
	TotalCorrect     int                     `json:"totalCorrect"`
	TotalTime        int64                   `json:"totalTime"`
	LearnedLetters   []string                `json:"learnedLetters"`
	History          []HistoryEntry          `json:"history"`
	ReflexStatus     map[string]ReflexStatus `json:"reflexStatus"`
}

// DefaultProgress returns a zeroed record for a fresh install.
func DefaultProgress() ProgressRecord {
	return ProgressRecord{
		SchemaVersion:  SchemaVersion,
		LearnedLetters: []string{},
		History:        []HistoryEntry{},
		ReflexStatus:   map[string]ReflexStatus{},
	}
}

// Clone returns a deep copy of the record.
func (p ProgressRecord) Clone() ProgressRecord {
	out := p
	if p.LastPracticeDate != nil {
		d := *p.LastPracticeDate
		out.LastPracticeDate = &d
	}
	out.LearnedLetters = append([]string{}, p.LearnedLetters...)
	out.History = append([]HistoryEntry{}, p.History...)
	out.ReflexStatus = make(map[string]ReflexStatus, len(p.ReflexStatus))
	for k, v := range p.ReflexStatus {
		out.ReflexStatus[k] = v
	}
	return out
}

// Game identifies an arcade game in stored results.
type Game string

const (
	GameRain  Game = "rain"
	GameBlitz Game = "blitz"
	GameHunt  Game = "hunt"
)

// Games lists every arcade game in display order.
func Games() []Game {
	return []Game{GameRain, GameBlitz, GameHunt}
}

// GameResult captures one finished arcade session.
type GameResult struct {
	ID        int64
	Game      Game
	Score     int
	Level     int
	Hits      int
	Misses    int
	StartedAt time.Time
	EndedAt   time.Time
}

// Settings holds the effective runtime configuration.
type Settings struct {
	DwellSeconds int
	LockStreak   int
	RainLives    int
	BlitzSeconds int
	BlitzDeck    int
	HuntSeconds  int
	MatchPairs   int
	AudioEnabled bool
	Volume       float64
	SpeechCmd    string
	SpeechLocale string
	LogLevel     string
	DBPath       string
	LogPath      string
}

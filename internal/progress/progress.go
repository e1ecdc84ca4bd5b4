// Package progress owns the persisted learner record: practice statistics,
// daily streak bookkeeping, foreground time and per-letter reflex status.
package progress

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/verte-zerg/kiril/internal/clock"
	"github.com/verte-zerg/kiril/internal/model"
)

// StorageKey is the fixed key the record is stored under.
const StorageKey = "kiril-progress"

// FlushEvery is the number of accumulated foreground seconds that triggers a write.
const FlushEvery = 30

// KV is the durable key-value backend.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
}

// Store is the single source of truth for the progress record. All
// mutations persist immediately; storage failures are logged and the
// in-memory record stays authoritative.
type Store struct {
	mu     sync.Mutex
	kv     KV
	clock  clock.Clock
	log    *zap.Logger
	record model.ProgressRecord

	pending    int64
	foreground bool
	closed     bool
}

// New creates a store and loads the persisted record.
func New(kv KV, clk clock.Clock, log *zap.Logger) *Store {
	if clk == nil {
		clk = clock.Real{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{
		kv:         kv,
		clock:      clk,
		log:        log,
		record:     model.DefaultProgress(),
		foreground: true,
	}
	s.Load(context.Background())
	return s
}

// Load reads the record from storage. Missing or corrupt data yields defaults.
func (s *Store) Load(ctx context.Context) model.ProgressRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record = s.read(ctx)
	return s.record.Clone()
}

func (s *Store) read(ctx context.Context) model.ProgressRecord {
	blob, ok, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		s.log.Error("failed to read progress", zap.Error(err))
		return model.DefaultProgress()
	}
	if !ok {
		return model.DefaultProgress()
	}
	rec, err := decode(blob)
	if err != nil {
		s.log.Warn("discarding unreadable progress", zap.Error(err))
		return model.DefaultProgress()
	}
	return rec
}

// save persists the record. Caller holds mu.
func (s *Store) save() {
	blob, err := encode(s.record)
	if err != nil {
		s.log.Error("failed to encode progress", zap.Error(err))
		return
	}
	if err := s.kv.Put(context.Background(), StorageKey, blob); err != nil {
		s.log.Error("failed to save progress", zap.Error(err))
	}
}

// Snapshot returns a copy of the current record.
func (s *Store) Snapshot() model.ProgressRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record.Clone()
}

// RecordPractice registers one graded attempt.
func (s *Store) RecordPractice(isCorrect bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := dateOf(s.clock.Now())
	elapsed := s.pending
	s.pending = 0

	prev := s.record
	isNewDay := prev.LastPracticeDate == nil || *prev.LastPracticeDate != today

	candidate := prev.Streak
	switch {
	case !isNewDay:
		if candidate == 0 {
			candidate = 1
		}
	case prev.LastPracticeDate != nil && daysBetween(*prev.LastPracticeDate, today) == 1:
		candidate = prev.Streak + 1
	default:
		// A gap restarts the candidate, but the stored streak never drops
		// below its previous value.
		candidate = 1
	}

	correct := 0
	if isCorrect {
		correct = 1
	}

	rec := prev.Clone()
	rec.LastPracticeDate = &today
	rec.Streak = maxInt(candidate, prev.Streak)
	if isNewDay {
		rec.TodayWords, rec.TodayCorrect, rec.TodayTime = 0, 0, 0
	}
	rec.TodayWords++
	rec.TodayCorrect += correct
	rec.TodayTime += elapsed
	rec.TotalWords++
	rec.TotalCorrect += correct
	rec.TotalTime += elapsed
	rec.History = upsertHistory(rec.History, today, 1, correct, elapsed)

	s.record = rec
	s.save()
}

// UpdateReflexStatus merges patch into the letter's status. Flags only move
// forward; locking a letter also marks it coded.
func (s *Store) UpdateReflexStatus(id string, patch model.ReflexPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.record.ReflexStatus[id]
	if patch.Coded != nil && *patch.Coded {
		st.Coded = true
	}
	if patch.Locked != nil && *patch.Locked {
		st.Locked = true
		st.Coded = true
		s.learnLocked(id)
	}
	if s.record.ReflexStatus == nil {
		s.record.ReflexStatus = map[string]model.ReflexStatus{}
	}
	s.record.ReflexStatus[id] = st
	s.save()
}

// ReflexStatus returns the status of one letter.
func (s *Store) ReflexStatus(id string) model.ReflexStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record.ReflexStatus[id]
}

// LockedLetters returns the locked ids following the given canonical order.
func (s *Store) LockedLetters(order []string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	locked := make([]string, 0, len(order))
	for _, id := range order {
		if s.record.ReflexStatus[id].Locked {
			locked = append(locked, id)
		}
	}
	return locked
}

// ResetReflexProgress clears every letter status, leaving statistics intact.
func (s *Store) ResetReflexProgress() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record.ReflexStatus = map[string]model.ReflexStatus{}
	s.save()
}

// ResetProgress restores complete defaults.
func (s *Store) ResetProgress() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record = model.DefaultProgress()
	s.pending = 0
	s.save()
}

// AddLearnedLetter inserts id into the learned set. Locking a letter
// through UpdateReflexStatus does the same; the set outlives
// ResetReflexProgress.
func (s *Store) AddLearnedLetter(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.learnLocked(id) {
		s.save()
	}
}

func (s *Store) learnLocked(id string) bool {
	for _, l := range s.record.LearnedLetters {
		if l == id {
			return false
		}
	}
	s.record.LearnedLetters = append(s.record.LearnedLetters, id)
	return true
}

// Rollover zeroes the daily counters when the last practice was on an
// earlier day. The streak itself is left for RecordPractice to settle.
func (s *Store) Rollover() {
	s.mu.Lock()
	defer s.mu.Unlock()
	last := s.record.LastPracticeDate
	if last == nil || *last == dateOf(s.clock.Now()) {
		return
	}
	if s.record.TodayWords == 0 && s.record.TodayCorrect == 0 && s.record.TodayTime == 0 {
		return
	}
	s.record.TodayWords, s.record.TodayCorrect, s.record.TodayTime = 0, 0, 0
	s.save()
}

// EffectiveStreak is the streak to display: zero once a full day was missed.
func (s *Store) EffectiveStreak() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	last := s.record.LastPracticeDate
	if last == nil {
		return 0
	}
	if daysBetween(*last, dateOf(s.clock.Now())) > 1 {
		return 0
	}
	return s.record.Streak
}

func upsertHistory(history []model.HistoryEntry, date string, words, correct int, elapsed int64) []model.HistoryEntry {
	for i := range history {
		if history[i].Date == date {
			history[i].Words += words
			history[i].Correct += correct
			history[i].Time += elapsed
			return history
		}
	}
	history = append(history, model.HistoryEntry{Date: date, Words: words, Correct: correct, Time: elapsed})
	if len(history) > model.HistoryLimit {
		history = history[len(history)-model.HistoryLimit:]
	}
	return history
}

func dateOf(t time.Time) string {
	return t.Format(model.DateLayout)
}

// daysBetween counts calendar days from a to b; unparsable dates count as a gap.
func daysBetween(a, b string) int {
	ta, err := time.Parse(model.DateLayout, a)
	if err != nil {
		return 2
	}
	tb, err := time.Parse(model.DateLayout, b)
	if err != nil {
		return 2
	}
	return int(tb.Sub(ta).Hours() / 24)
}

// SortedHistory returns history ordered by date, newest last.
func SortedHistory(rec model.ProgressRecord) []model.HistoryEntry {
	out := append([]model.HistoryEntry{}, rec.History...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

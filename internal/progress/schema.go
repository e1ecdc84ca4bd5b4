package progress

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/verte-zerg/kiril/internal/model"
)

// Date layout written by the first release (JavaScript Date.toDateString).
const legacyDateLayout = "Mon Jan 02 2006"

// decode parses a stored blob over defaults and migrates it to the current
// schema. Fields missing from the blob keep their default values.
func decode(blob []byte) (model.ProgressRecord, error) {
	rec := model.DefaultProgress()
	rec.SchemaVersion = 0
	if err := json.Unmarshal(blob, &rec); err != nil {
		return model.DefaultProgress(), fmt.Errorf("failed to decode progress: %w", err)
	}
	if rec.SchemaVersion > model.SchemaVersion {
		return model.DefaultProgress(), fmt.Errorf("progress schema %d is newer than supported %d", rec.SchemaVersion, model.SchemaVersion)
	}
	if rec.SchemaVersion < 1 {
		migrateV0(&rec)
	}
	normalize(&rec)
	return rec, nil
}

func encode(rec model.ProgressRecord) ([]byte, error) {
	return json.Marshal(rec)
}

// migrateV0 rewrites legacy dates to ISO calendar dates.
func migrateV0(rec *model.ProgressRecord) {
	if rec.LastPracticeDate != nil {
		if d, ok := canonicalDate(*rec.LastPracticeDate); ok {
			rec.LastPracticeDate = &d
		} else {
			rec.LastPracticeDate = nil
		}
	}
	kept := rec.History[:0]
	for _, h := range rec.History {
		d, ok := canonicalDate(h.Date)
		if !ok {
			continue
		}
		h.Date = d
		kept = append(kept, h)
	}
	rec.History = kept
	rec.SchemaVersion = 1
}

func canonicalDate(s string) (string, bool) {
	if t, err := time.Parse(model.DateLayout, s); err == nil {
		return t.Format(model.DateLayout), true
	}
	if t, err := time.Parse(legacyDateLayout, s); err == nil {
		return t.Format(model.DateLayout), true
	}
	return "", false
}

// normalize restores the record invariants after decoding.
func normalize(rec *model.ProgressRecord) {
	if rec.LearnedLetters == nil {
		rec.LearnedLetters = []string{}
	}
	if rec.History == nil {
		rec.History = []model.HistoryEntry{}
	}
	if rec.ReflexStatus == nil {
		rec.ReflexStatus = map[string]model.ReflexStatus{}
	}

	rec.Streak = maxInt(rec.Streak, 0)
	rec.TodayWords = maxInt(rec.TodayWords, 0)
	rec.TodayCorrect = clampInt(rec.TodayCorrect, 0, rec.TodayWords)
	rec.TotalWords = maxInt(rec.TotalWords, rec.TodayWords)
	rec.TotalCorrect = clampInt(rec.TotalCorrect, 0, rec.TotalWords)
	if rec.TodayTime < 0 {
		rec.TodayTime = 0
	}
	if rec.TotalTime < rec.TodayTime {
		rec.TotalTime = rec.TodayTime
	}

	seen := make(map[string]struct{}, len(rec.LearnedLetters))
	letters := rec.LearnedLetters[:0]
	for _, l := range rec.LearnedLetters {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		letters = append(letters, l)
	}
	rec.LearnedLetters = letters

	for id, st := range rec.ReflexStatus {
		if st.Locked && !st.Coded {
			st.Coded = true
			rec.ReflexStatus[id] = st
		}
	}

	rec.History = mergeHistory(rec.History)
}

func mergeHistory(history []model.HistoryEntry) []model.HistoryEntry {
	byDate := make(map[string]int, len(history))
	merged := make([]model.HistoryEntry, 0, len(history))
	for _, h := range history {
		h.Words = maxInt(h.Words, 0)
		h.Correct = clampInt(h.Correct, 0, h.Words)
		if h.Time < 0 {
			h.Time = 0
		}
		if idx, ok := byDate[h.Date]; ok {
			merged[idx].Words += h.Words
			merged[idx].Correct += h.Correct
			merged[idx].Time += h.Time
			continue
		}
		byDate[h.Date] = len(merged)
		merged = append(merged, h)
	}
	sort.SliceStable(merged, func(i, j int) bool { return merged[i].Date < merged[j].Date })
	if len(merged) > model.HistoryLimit {
		merged = merged[len(merged)-model.HistoryLimit:]
	}
	return merged
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

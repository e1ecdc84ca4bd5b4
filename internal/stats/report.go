package stats

import (
	"context"
	"fmt"
	"io"

	"github.com/verte-zerg/kiril/internal/alphabet"
	"github.com/verte-zerg/kiril/internal/model"
)

// GameSource reads stored arcade results.
type GameSource interface {
	ListGameResults(ctx context.Context, game model.Game, limit int) ([]model.GameResult, error)
	BestScore(ctx context.Context, game model.Game) (int, error)
}

// LetterRow is the per-letter view of the progress record.
type LetterRow struct {
	Cyrillic string
	Turkish  string
	Coded    bool
	Locked   bool
	Learned  bool
}

// Report contains precomputed data for stats rendering.
type Report struct {
	Progress model.ProgressRecord
	Streak   int
	History  []model.HistoryEntry
	Letters  []LetterRow
	Games    []model.GameResult
	Best     map[model.Game]int
}

// BuildReport combines a progress snapshot with stored game results.
// History must already be ordered oldest first.
func BuildReport(ctx context.Context, src GameSource, rec model.ProgressRecord, history []model.HistoryEntry, streak, lastGames int) (Report, error) {
	r := Report{
		Progress: rec,
		Streak:   streak,
		History:  history,
		Letters:  LetterRows(rec),
		Best:     map[model.Game]int{},
	}
	if src == nil {
		return r, nil
	}
	games, err := src.ListGameResults(ctx, "", lastGames)
	if err != nil {
		return Report{}, fmt.Errorf("list game results: %w", err)
	}
	r.Games = games
	for _, g := range model.Games() {
		best, err := src.BestScore(ctx, g)
		if err != nil {
			return Report{}, fmt.Errorf("best score for %s: %w", g, err)
		}
		r.Best[g] = best
	}
	return r, nil
}

// LetterRows lists every letter in alphabet order with its stored state.
func LetterRows(rec model.ProgressRecord) []LetterRow {
	learned := make(map[string]bool, len(rec.LearnedLetters))
	for _, id := range rec.LearnedLetters {
		learned[id] = true
	}
	letters := alphabet.Letters()
	rows := make([]LetterRow, 0, len(letters))
	for _, l := range letters {
		st := rec.ReflexStatus[l.ID()]
		rows = append(rows, LetterRow{
			Cyrillic: l.Cyrillic,
			Turkish:  l.Turkish,
			Coded:    st.Coded,
			Locked:   st.Locked,
			Learned:  learned[l.ID()],
		})
	}
	return rows
}

// Render writes the full text report.
func (r Report) Render(w io.Writer, totalWidth int, useColor bool) error {
	if err := RenderSummary(w, r.Progress, r.Streak); err != nil {
		return err
	}
	if err := RenderHistory(w, r.History); err != nil {
		return err
	}
	if err := RenderCurves(w, r.History, 3, totalWidth, 8, useColor); err != nil {
		return err
	}
	if err := RenderLetters(w, r.Letters); err != nil {
		return err
	}
	return RenderGames(w, r.Games, r.Best)
}

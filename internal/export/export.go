// Package export writes progress reports to xlsx workbooks.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/verte-zerg/kiril/internal/model"
	"github.com/verte-zerg/kiril/internal/stats"
)

// Sheet names in workbook order.
const (
	SheetSummary = "Summary"
	SheetHistory = "History"
	SheetLetters = "Letters"
	SheetGames   = "Games"
)

type sheet struct {
	name   string
	header []any
	rows   [][]any
	widths []float64
}

// Workbook builds an xlsx file from a report. The caller closes it.
func Workbook(r stats.Report) (*excelize.File, error) {
	f := excelize.NewFile()
	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#DDEBF7"}},
	})
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}
	for i, s := range sheets(r) {
		if i == 0 {
			err = f.SetSheetName("Sheet1", s.name)
		} else {
			_, err = f.NewSheet(s.name)
		}
		if err == nil {
			err = fill(f, s, bold)
		}
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("write sheet %s: %w", s.name, err)
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

// Write encodes the report as xlsx into w.
func Write(w io.Writer, r stats.Report) error {
	f, err := Workbook(r)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// Save writes the report to path.
func Save(path string, r stats.Report) error {
	f, err := Workbook(r)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func fill(f *excelize.File, s sheet, headerStyle int) error {
	rows := append([][]any{s.header}, s.rows...)
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(s.name, cell, &rows[i]); err != nil {
			return err
		}
	}
	if err := f.SetRowStyle(s.name, 1, 1, headerStyle); err != nil {
		return err
	}
	for i, width := range s.widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(s.name, col, col, width); err != nil {
			return err
		}
	}
	return f.SetPanes(s.name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func sheets(r stats.Report) []sheet {
	p := r.Progress
	last := ""
	if p.LastPracticeDate != nil {
		last = *p.LastPracticeDate
	}
	summary := sheet{
		name:   SheetSummary,
		header: []any{"Metric", "Value"},
		rows: [][]any{
			{"Streak", r.Streak},
			{"Last practice", last},
			{"Today answers", p.TodayWords},
			{"Today correct", p.TodayCorrect},
			{"Today seconds", p.TodayTime},
			{"Total answers", p.TotalWords},
			{"Total correct", p.TotalCorrect},
			{"Total seconds", p.TotalTime},
			{"Accuracy %", round1(stats.Accuracy(p.TotalCorrect, p.TotalWords))},
			{"Learned letters", len(p.LearnedLetters)},
		},
		widths: []float64{18, 14},
	}

	history := sheet{
		name:   SheetHistory,
		header: []any{"Date", "Answers", "Correct", "Accuracy %", "Seconds"},
		widths: []float64{12, 10, 10, 12, 10},
	}
	for _, h := range r.History {
		history.rows = append(history.rows, []any{h.Date, h.Words, h.Correct, round1(stats.Accuracy(h.Correct, h.Words)), h.Time})
	}

	letters := sheet{
		name:   SheetLetters,
		header: []any{"Letter", "Turkish", "Coded", "Locked", "Learned"},
		widths: []float64{8, 9, 8, 8, 9},
	}
	for _, l := range r.Letters {
		letters.rows = append(letters.rows, []any{l.Cyrillic, l.Turkish, l.Coded, l.Locked, l.Learned})
	}

	games := sheet{
		name:   SheetGames,
		header: []any{"Ended", "Game", "Score", "Level", "Hits", "Misses", "Seconds"},
		widths: []float64{20, 8, 8, 8, 8, 8, 9},
	}
	for _, g := range r.Games {
		games.rows = append(games.rows, []any{
			g.EndedAt.UTC().Format("2006-01-02 15:04:05"),
			string(g.Game), g.Score, g.Level, g.Hits, g.Misses,
			int(g.EndedAt.Sub(g.StartedAt).Seconds()),
		})
	}
	for _, game := range model.Games() {
		games.rows = append(games.rows, []any{"best", string(game), r.Best[game]})
	}
	return []sheet{summary, history, letters, games}
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}

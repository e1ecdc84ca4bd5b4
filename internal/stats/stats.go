// Package stats contains progress calculations and text reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/verte-zerg/kiril/internal/alphabet"
	"github.com/verte-zerg/kiril/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Accuracy returns correct/total as a percentage, or zero for no attempts.
func Accuracy(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(correct) / float64(total) * 100
}

// FormatSeconds renders a practice duration as h/m/s.
func FormatSeconds(secs int64) string {
	if secs < 0 {
		secs = 0
	}
	return (time.Duration(secs) * time.Second).String()
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 {
		copy(out, values)
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		n := i + 1
		if i >= window {
			sum -= values[i-window]
			n = window
		}
		out[i] = sum / float64(n)
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := minMax(values)
	if math.Abs(hi-lo) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	last := len(sparkChars) - 1
	for _, v := range values {
		idx := int(math.Round((v - lo) / (hi - lo) * float64(last)))
		b.WriteByte(sparkChars[clamp(idx, 0, last)])
	}
	return b.String()
}

// RenderSummary prints today's counters, totals and the streak.
func RenderSummary(w io.Writer, rec model.ProgressRecord, streak int) error {
	last := "never"
	if rec.LastPracticeDate != nil {
		last = *rec.LastPracticeDate
	}
	lines := []string{
		"Summary",
		fmt.Sprintf("Streak: %d day(s) (last practice %s)", streak, last),
		fmt.Sprintf("Today: %d answers, %.1f%% correct, %s",
			rec.TodayWords, Accuracy(rec.TodayCorrect, rec.TodayWords), FormatSeconds(rec.TodayTime)),
		fmt.Sprintf("Total: %d answers, %.1f%% correct, %s",
			rec.TotalWords, Accuracy(rec.TotalCorrect, rec.TotalWords), FormatSeconds(rec.TotalTime)),
		fmt.Sprintf("Learned letters: %d/%d", len(rec.LearnedLetters), len(alphabet.Letters())),
		"",
	}
	return writeLines(w, lines)
}

// RenderHistory prints one row per practiced day, oldest first.
func RenderHistory(w io.Writer, history []model.HistoryEntry) error {
	if len(history) == 0 {
		return writeLines(w, []string{"No practice history yet.", ""})
	}
	rows := make([][]string, 0, len(history))
	acc := make([]float64, 0, len(history))
	for _, h := range history {
		a := Accuracy(h.Correct, h.Words)
		acc = append(acc, a)
		rows = append(rows, []string{
			h.Date,
			fmt.Sprintf("%d", h.Words),
			fmt.Sprintf("%d", h.Correct),
			fmt.Sprintf("%.1f%%", a),
			FormatSeconds(h.Time),
		})
	}
	lines := []string{"History"}
	lines = append(lines, formatTable(
		[]string{"Date", "Answers", "Correct", "Accuracy", "Time"},
		rows,
		map[int]bool{1: true, 2: true, 3: true, 4: true},
	)...)
	lines = append(lines, "Accuracy trend: "+Sparkline(acc), "")
	return writeLines(w, lines)
}

// RenderCurves plots smoothed daily accuracy and answer counts.
func RenderCurves(w io.Writer, history []model.HistoryEntry, window, totalWidth, height int, useColor bool) error {
	if len(history) < 2 {
		return nil
	}
	acc := make([]float64, len(history))
	words := make([]float64, len(history))
	for i, h := range history {
		acc[i] = Accuracy(h.Correct, h.Words)
		words[i] = float64(h.Words)
	}
	width := 0
	if totalWidth > 0 {
		width = PlotWidthFor(totalWidth)
	}
	return PlotSeriesWithColor(w, "Daily Curves", []Series{
		{Name: "Accuracy", Values: MovingAverage(acc, window)},
		{Name: "Answers", Values: MovingAverage(words, window)},
	}, width, height, useColor)
}

// RenderLetters prints the acquisition state of every letter.
func RenderLetters(w io.Writer, rows []LetterRow) error {
	table := make([][]string, 0, len(rows))
	for _, r := range rows {
		table = append(table, []string{r.Cyrillic, r.Turkish, mark(r.Coded), mark(r.Locked), mark(r.Learned)})
	}
	lines := []string{"Letters"}
	lines = append(lines, formatTable([]string{"Letter", "Turkish", "Coded", "Locked", "Learned"}, table, nil)...)
	lines = append(lines, "")
	return writeLines(w, lines)
}

// RenderGames prints best scores and the most recent arcade results.
func RenderGames(w io.Writer, results []model.GameResult, best map[model.Game]int) error {
	lines := []string{"Arcade"}
	for _, g := range model.Games() {
		lines = append(lines, fmt.Sprintf("Best %s: %d", g, best[g]))
	}
	if len(results) == 0 {
		lines = append(lines, "No games played yet.", "")
		return writeLines(w, lines)
	}
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			r.EndedAt.Local().Format("2006-01-02 15:04"),
			string(r.Game),
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d", r.Level),
			fmt.Sprintf("%d", r.Hits),
			fmt.Sprintf("%d", r.Misses),
		})
	}
	lines = append(lines, formatTable(
		[]string{"Ended", "Game", "Score", "Level", "Hits", "Misses"},
		rows,
		map[int]bool{2: true, 3: true, 4: true, 5: true},
	)...)
	lines = append(lines, "")
	return writeLines(w, lines)
}

func mark(ok bool) string {
	if ok {
		return "yes"
	}
	return "-"
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func minMax(values []float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if len(values) == 0 {
		return 0, 0
	}
	return lo, hi
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

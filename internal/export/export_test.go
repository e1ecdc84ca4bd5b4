package export

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/verte-zerg/kiril/internal/model"
	"github.com/verte-zerg/kiril/internal/stats"
)

func sampleReport() stats.Report {
	rec := model.DefaultProgress()
	date := "2024-03-02"
	rec.LastPracticeDate = &date
	rec.TotalWords, rec.TotalCorrect = 3, 1
	rec.ReflexStatus["Б"] = model.ReflexStatus{Coded: true}
	rec.History = []model.HistoryEntry{
		{Date: "2024-03-01", Words: 2, Correct: 1, Time: 40},
		{Date: "2024-03-02", Words: 1, Correct: 0, Time: 5},
	}
	end := time.Date(2024, 3, 2, 10, 1, 0, 0, time.UTC)
	return stats.Report{
		Progress: rec,
		Streak:   2,
		History:  rec.History,
		Letters:  stats.LetterRows(rec),
		Games: []model.GameResult{
			{Game: model.GameBlitz, Score: 42, Hits: 5, Misses: 1, StartedAt: end.Add(-time.Minute), EndedAt: end},
		},
		Best: map[model.Game]int{model.GameBlitz: 42},
	}
}

func TestWriteProducesAllSheets(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleReport()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	require.Equal(t, []string{SheetSummary, SheetHistory, SheetLetters, SheetGames}, f.GetSheetList())

	summary, err := f.GetRows(SheetSummary)
	require.NoError(t, err)
	require.Equal(t, []string{"Metric", "Value"}, summary[0])
	require.Equal(t, []string{"Streak", "2"}, summary[1])
	require.Equal(t, []string{"Last practice", "2024-03-02"}, summary[2])
	require.Equal(t, []string{"Accuracy %", "33.3"}, summary[9])

	history, err := f.GetRows(SheetHistory)
	require.NoError(t, err)
	require.Len(t, history, 3)
	require.Equal(t, []string{"2024-03-01", "2", "1", "50", "40"}, history[1])

	letters, err := f.GetRows(SheetLetters)
	require.NoError(t, err)
	require.Len(t, letters, 30)
	require.Equal(t, []string{"Б", "B", "TRUE", "FALSE", "FALSE"}, letters[2])

	games, err := f.GetRows(SheetGames)
	require.NoError(t, err)
	require.Equal(t, []string{"2024-03-02 10:01:00", "blitz", "42", "0", "5", "1", "60"}, games[1])
	require.Equal(t, []string{"best", "rain", "0"}, games[2])
	require.Equal(t, []string{"best", "blitz", "42"}, games[3])
	require.Equal(t, []string{"best", "hunt", "0"}, games[4])
}

func TestSaveWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kiril.xlsx")
	require.NoError(t, Save(path, sampleReport()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	rows, err := f.GetRows(SheetHistory)
	require.NoError(t, err)
	require.Equal(t, "Date", rows[0][0])
}

func TestRound1(t *testing.T) {
	require.Equal(t, 33.3, round1(100.0/3))
	require.Equal(t, 66.7, round1(200.0/3))
	require.Equal(t, 0.0, round1(0))
}

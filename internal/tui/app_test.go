package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/kiril/internal/clock"
	"github.com/verte-zerg/kiril/internal/config"
	"github.com/verte-zerg/kiril/internal/generator"
	"github.com/verte-zerg/kiril/internal/model"
	"github.com/verte-zerg/kiril/internal/progress"
)

type memKV struct {
	data map[string][]byte
}

func (m *memKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Put(_ context.Context, key string, value []byte) error {
	m.data[key] = append([]byte(nil), value...)
	return nil
}

type fakeGames struct {
	inserted []model.GameResult
}

func (f *fakeGames) InsertGameResult(_ context.Context, r model.GameResult) (int64, error) {
	f.inserted = append(f.inserted, r)
	return int64(len(f.inserted)), nil
}

func (f *fakeGames) ListGameResults(context.Context, model.Game, int) ([]model.GameResult, error) {
	return f.inserted, nil
}

func (f *fakeGames) BestScore(_ context.Context, g model.Game) (int, error) {
	best := 0
	for _, r := range f.inserted {
		if r.Game == g && r.Score > best {
			best = r.Score
		}
	}
	return best, nil
}

func testDeps(t *testing.T) Deps {
	t.Helper()
	clk := clock.NewManual(time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC))
	return Deps{
		Progress: progress.New(&memKV{data: map[string][]byte{}}, clk, nil),
		Games:    &fakeGames{},
		Settings: config.Defaults(),
		Clock:    clk,
		Rand:     generator.NewSeeded(7),
	}
}

func sized(t *testing.T) *Model {
	t.Helper()
	m := NewModel(testDeps(t))
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

func TestNavigationOpensScreens(t *testing.T) {
	m := sized(t)
	views := []ViewID{ViewReflex, ViewRain, ViewBlitz, ViewHunt, ViewMatching, ViewWords, ViewTranslit, ViewStats, ViewMenu}
	for _, v := range views {
		m.Update(navigateMsg{to: v})
		if m.Active() != v {
			t.Fatalf("expected view %d, got %d", v, m.Active())
		}
		if m.View() == "" {
			t.Fatalf("empty view for %d", v)
		}
	}
}

func TestEscReturnsToMenu(t *testing.T) {
	m := sized(t)
	m.Update(navigateMsg{to: ViewTranslit})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatalf("expected navigation command")
	}
	msg, ok := cmd().(navigateMsg)
	if !ok || msg.to != ViewMenu {
		t.Fatalf("expected navigate to menu, got %#v", msg)
	}
}

func TestFocusControlsTracker(t *testing.T) {
	m := sized(t)
	m.Init()
	m.Update(trackerTickMsg{})
	if got := m.deps.Progress.PendingSeconds(); got != 1 {
		t.Fatalf("expected 1 pending second, got %d", got)
	}
	m.Update(tea.BlurMsg{})
	if m.deps.Progress.Foreground() {
		t.Fatalf("expected background after blur")
	}
	if got := m.deps.Progress.PendingSeconds(); got != 0 {
		t.Fatalf("blur must flush pending time, got %d", got)
	}
	m.Update(trackerTickMsg{})
	if got := m.deps.Progress.PendingSeconds(); got != 0 {
		t.Fatalf("time must not accrue in background, got %d", got)
	}
	m.Update(tea.FocusMsg{})
	if !m.deps.Progress.Foreground() {
		t.Fatalf("expected foreground after focus")
	}
}

func TestHeaderShowsProgress(t *testing.T) {
	m := sized(t)
	m.game.RecordPractice(true)
	m.game.RecordPractice(false)
	header := strings.SplitN(m.View(), "\n", 2)[0]
	for _, want := range []string{"Streak 1", "Today 1/2", "Locked 0/29"} {
		if !strings.Contains(header, want) {
			t.Fatalf("header %q missing %q", header, want)
		}
	}
}

func TestMouseIsShiftedBelowHeader(t *testing.T) {
	m := sized(t)
	m.Update(navigateMsg{to: ViewMatching})
	s := m.screen.(*matchingScreen)
	layout := s.layout()
	box := layout.left[0]
	m.Update(tea.MouseMsg{X: box.x + 1, Y: box.y + 1 + headerHeight, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if _, ok := s.puzzle.Dragging(); !ok {
		t.Fatalf("expected drag to start on the first left card")
	}
}

func TestInitClearsYesterdayCounters(t *testing.T) {
	deps := testDeps(t)
	m := NewModel(deps)
	m.game.RecordPractice(true)
	m.game.RecordPractice(true)
	m.game.RecordPractice(false)

	deps.Clock.(*clock.Manual).Advance(24 * time.Hour)
	next := NewModel(deps)
	next.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	next.Init()

	header := strings.SplitN(next.View(), "\n", 2)[0]
	for _, want := range []string{"Streak 1", "Today 0/0"} {
		if !strings.Contains(header, want) {
			t.Fatalf("header %q missing %q", header, want)
		}
	}
	rec := deps.Progress.Snapshot()
	if rec.TodayWords != 0 || rec.TodayCorrect != 0 || rec.TotalWords != 3 {
		t.Fatalf("unexpected counters after rollover %+v", rec)
	}
}

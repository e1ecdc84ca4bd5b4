// Package tui provides the Bubble Tea alphabet trainer.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/verte-zerg/kiril/internal/alphabet"
	"github.com/verte-zerg/kiril/internal/audio"
	"github.com/verte-zerg/kiril/internal/clock"
	"github.com/verte-zerg/kiril/internal/generator"
	"github.com/verte-zerg/kiril/internal/model"
	"github.com/verte-zerg/kiril/internal/progress"
	"github.com/verte-zerg/kiril/internal/stats"
)

// ViewID names a screen of the app.
type ViewID int

const (
	ViewMenu ViewID = iota
	ViewReflex
	ViewRain
	ViewBlitz
	ViewHunt
	ViewMatching
	ViewWords
	ViewTranslit
	ViewStats
)

// GameContext is what the host hands to every drill: the letters the
// learner has locked and the sink for practice outcomes.
type GameContext struct {
	AvailableLetters func() []string
	RecordPractice   func(isCorrect bool)
}

// GameStore persists and reads arcade results.
type GameStore interface {
	stats.GameSource
	InsertGameResult(ctx context.Context, result model.GameResult) (int64, error)
}

// Deps are the collaborators of the TUI.
type Deps struct {
	Progress *progress.Store
	Games    GameStore
	Settings model.Settings
	Speaker  audio.Speaker
	Player   *audio.Player
	Clock    clock.Clock
	Rand     *generator.Generator
	Log      *zap.Logger
	// Words is the practice word pool; empty means the built-in list.
	Words []alphabet.Word
}

// screen is one view hosted by Model. Update runs on the Bubble Tea loop;
// Close must cancel every pending timer of the screen.
type screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View(width, height int) string
	SetSize(width, height int)
	Close()
}

type navigateMsg struct{ to ViewID }

func navigate(to ViewID) tea.Cmd {
	return func() tea.Msg { return navigateMsg{to: to} }
}

type trackerTickMsg struct{}

func trackerTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return trackerTickMsg{} })
}

const headerHeight = 2

// Model is the navigation host.
type Model struct {
	deps   Deps
	game   GameContext
	active ViewID
	screen screen

	width  int
	height int
}

// withDefaults fills optional collaborators. A nil Player is silent.
func (d Deps) withDefaults() Deps {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Clock == nil {
		d.Clock = clock.Real{}
	}
	if d.Rand == nil {
		d.Rand = generator.New()
	}
	if d.Speaker == nil {
		d.Speaker = audio.Nop{}
	}
	return d
}

// NewModel constructs the root model showing the menu.
func NewModel(deps Deps) *Model {
	deps = deps.withDefaults()
	m := &Model{deps: deps}
	m.game = GameContext{
		AvailableLetters: func() []string {
			return deps.Progress.LockedLetters(alphabet.LetterIDs())
		},
		RecordPractice: func(isCorrect bool) {
			deps.Progress.RecordPractice(isCorrect)
			if isCorrect {
				deps.Player.Play(audio.ToneCorrect)
			} else {
				deps.Player.Play(audio.ToneWrong)
			}
		},
	}
	m.screen = m.build(ViewMenu)
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	m.deps.Progress.Rollover()
	m.deps.Progress.SetForeground(true)
	return tea.Batch(trackerTick(), m.screen.Init())
}

// Active returns the visible view.
func (m *Model) Active() ViewID {
	return m.active
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.screen.SetSize(m.bodySize())
		return m, nil
	case tea.FocusMsg:
		m.deps.Progress.SetForeground(true)
		return m, nil
	case tea.BlurMsg:
		m.deps.Progress.SetForeground(false)
		return m, nil
	case trackerTickMsg:
		m.deps.Progress.Tick()
		return m, trackerTick()
	case navigateMsg:
		return m, m.open(msg.to)
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.screen.Close()
			return m, tea.Quit
		}
	case tea.MouseMsg:
		msg.Y -= headerHeight
		return m, m.screen.Update(msg)
	}
	return m, m.screen.Update(msg)
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	w, h := m.bodySize()
	return m.renderHeader() + "\n" + fitLines(m.screen.View(w, h), w, h)
}

func (m *Model) bodySize() (int, int) {
	return m.width, max(m.height-headerHeight, 1)
}

func (m *Model) open(to ViewID) tea.Cmd {
	m.screen.Close()
	m.active = to
	m.screen = m.build(to)
	if m.width > 0 {
		m.screen.SetSize(m.bodySize())
	}
	return m.screen.Init()
}

func (m *Model) build(id ViewID) screen {
	switch id {
	case ViewReflex:
		return newReflexScreen(m.deps, m.game)
	case ViewRain:
		return newRainScreen(m.deps, m.game)
	case ViewBlitz:
		return newBlitzScreen(m.deps, m.game)
	case ViewHunt:
		return newHuntScreen(m.deps, m.game)
	case ViewMatching:
		return newMatchingScreen(m.deps, m.game)
	case ViewWords:
		return newWordsScreen(m.deps, m.game)
	case ViewTranslit:
		return newTranslitScreen(m.deps)
	case ViewStats:
		return newStatsScreen(m.deps)
	default:
		return newMenuScreen(m.deps, m.game)
	}
}

func (m *Model) renderHeader() string {
	rec := m.deps.Progress.Snapshot()
	locked := len(m.game.AvailableLetters())
	segments := []string{
		fmt.Sprintf("Streak %d", m.deps.Progress.EffectiveStreak()),
		fmt.Sprintf("Today %d/%d", rec.TodayCorrect, rec.TodayWords),
		fmt.Sprintf("Locked %d/%d", locked, len(alphabet.LetterIDs())),
	}
	title := titleStyle.Render("kiril") + "  " + footerStyle.Render(strings.Join(segments, "  "))
	return padLine(title, m.width) + "\n" + footerStyle.Render(strings.Repeat("─", m.width))
}

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/verte-zerg/kiril/internal/alphabet"
	"github.com/verte-zerg/kiril/internal/arcade"
	"github.com/verte-zerg/kiril/internal/audio"
	"github.com/verte-zerg/kiril/internal/clock"
	"github.com/verte-zerg/kiril/internal/model"
)

type rainFrameMsg struct {
	tok clock.Token
	at  time.Time
}

func rainFrame(tok clock.Token) tea.Cmd {
	return tea.Tick(arcade.FrameInterval, func(t time.Time) tea.Msg { return rainFrameMsg{tok: tok, at: t} })
}

var (
	itemStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	groundStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4A4A"))
)

type rainScreen struct {
	deps   Deps
	game   *arcade.Rain
	saved  bool
	closed bool
	best   int
	cols   int
	rows   int

	sparks map[string]*lipgloss.Style
}

const rainHUDHeight = 2

func newRainScreen(deps Deps, game GameContext) *rainScreen {
	deps = deps.withDefaults()
	r := arcade.NewRain(arcade.RainConfig{
		Pool:  alphabet.MappingFor(game.AvailableLetters()),
		Lives: deps.Settings.RainLives,
		Rand:  deps.Rand,
	})
	return &rainScreen{deps: deps, game: r, sparks: map[string]*lipgloss.Style{}}
}

func (s *rainScreen) Init() tea.Cmd {
	return s.start()
}

func (s *rainScreen) start() tea.Cmd {
	s.saved = false
	s.best = loadBest(s.deps, s.game.Result().Game)
	return rainFrame(s.game.Start(time.Now()))
}

func (s *rainScreen) SetSize(width, height int) {
	s.cols = width
	s.rows = max(height-rainHUDHeight, 1)
	s.game.Resize(float64(s.cols)*cellW, float64(s.rows)*cellH)
}

func (s *rainScreen) Close() {
	s.closed = true
	s.game.Stop()
}

func (s *rainScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case rainFrameMsg:
		if s.game.Frame(msg.tok, msg.at) {
			return rainFrame(msg.tok)
		}
		s.finish()
		return nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc:
			return navigate(ViewMenu)
		case tea.KeyEnter, tea.KeySpace:
			if s.game.Status() == arcade.StatusOver {
				return s.start()
			}
		case tea.KeyRunes:
			if msg.Alt {
				return nil
			}
			for _, r := range msg.Runes {
				if s.game.Press(r) {
					s.deps.Player.Play(audio.ToneCorrect)
				}
			}
		}
	}
	return nil
}

// finish stores the result of a run that ended by itself.
func (s *rainScreen) finish() {
	if s.saved || s.closed || s.game.Status() != arcade.StatusOver {
		return
	}
	s.saved = true
	s.deps.Player.Play(audio.ToneGameOver)
	saveResult(s.deps, s.game.Result())
}

func (s *rainScreen) View(width, height int) string {
	hud := fmt.Sprintf("Score %d  Level %d  %s  Best %d",
		s.game.Score(), s.game.Level(), hearts(s.game.Lives(), s.game.MaxLives()), max(s.best, s.game.Score()))
	if s.game.Status() == arcade.StatusOver {
		over := lipgloss.JoinVertical(lipgloss.Center,
			titleStyle.Render("Game over"),
			"",
			fmt.Sprintf("Score %d  Level %d", s.game.Score(), s.game.Level()),
			"",
			keyHelp("enter: play again  esc: menu"),
		)
		return hud + "\n" + center(over, width, height-1)
	}
	return hud + "\n" + s.field().String() + "\n" + keyHelp("type the Turkish letter of a falling glyph  esc: menu")
}

func (s *rainScreen) field() *canvas {
	c := newCanvas(s.cols, s.rows)
	if s.rows > 0 {
		c.text(0, s.rows-1, strings.Repeat("▁", s.cols), &groundStyle)
	}
	for _, p := range s.game.Particles() {
		x, y := toCell(p.X, p.Y)
		c.put(x, y, sparkGlyph(p.Life), s.spark(p.Color))
	}
	for _, it := range s.game.Items() {
		x, y := toCell(it.X, it.Y)
		c.put(x, y, it.Glyph, &itemStyle)
	}
	return c
}

func (s *rainScreen) spark(color string) *lipgloss.Style {
	st, ok := s.sparks[color]
	if !ok {
		v := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
		st = &v
		s.sparks[color] = st
	}
	return st
}

func sparkGlyph(life float64) string {
	switch {
	case life > 0.66:
		return "*"
	case life > 0.33:
		return "+"
	default:
		return "·"
	}
}

func hearts(lives, maxLives int) string {
	return strings.Repeat("♥", lives) + strings.Repeat("♡", max(maxLives-lives, 0))
}

func loadBest(deps Deps, game model.Game) int {
	if deps.Games == nil {
		return 0
	}
	best, err := deps.Games.BestScore(context.Background(), game)
	if err != nil {
		deps.Log.Warn("failed to load best score", zap.String("game", string(game)), zap.Error(err))
	}
	return best
}

func saveResult(deps Deps, result model.GameResult) {
	if deps.Games == nil {
		return
	}
	if _, err := deps.Games.InsertGameResult(context.Background(), result); err != nil {
		deps.Log.Error("failed to save game result", zap.String("game", string(result.Game)), zap.Error(err))
		return
	}
	deps.Log.Info("game finished", zap.String("game", string(result.Game)), zap.Int("score", result.Score))
}

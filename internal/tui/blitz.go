package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/kiril/internal/alphabet"
	"github.com/verte-zerg/kiril/internal/arcade"
	"github.com/verte-zerg/kiril/internal/audio"
	"github.com/verte-zerg/kiril/internal/clock"
)

type blitzSecondMsg struct {
	tok clock.Token
	at  time.Time
}

type blitzNextMsg struct {
	tok clock.Token
	at  time.Time
}

func blitzSecond(tok clock.Token) tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return blitzSecondMsg{tok: tok, at: t} })
}

func blitzNext(tok clock.Token) tea.Cmd {
	return tea.Tick(arcade.FeedbackDelay, func(t time.Time) tea.Msg { return blitzNextMsg{tok: tok, at: t} })
}

type blitzScreen struct {
	deps   Deps
	game   *arcade.Blitz
	saved  bool
	closed bool
	best   int
}

func newBlitzScreen(deps Deps, game GameContext) *blitzScreen {
	deps = deps.withDefaults()
	b := arcade.NewBlitz(arcade.BlitzConfig{
		Pool:       alphabet.MappingFor(game.AvailableLetters()),
		Seconds:    deps.Settings.BlitzSeconds,
		DeckSize:   deps.Settings.BlitzDeck,
		Rand:       deps.Rand,
		OnPractice: game.RecordPractice,
	})
	return &blitzScreen{deps: deps, game: b}
}

func (s *blitzScreen) Init() tea.Cmd {
	s.saved = false
	s.best = loadBest(s.deps, s.game.Result().Game)
	return blitzSecond(s.game.Start(time.Now()))
}

func (s *blitzScreen) SetSize(int, int) {}

func (s *blitzScreen) Close() {
	s.closed = true
	s.game.Stop(time.Now())
}

func (s *blitzScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case blitzSecondMsg:
		if s.game.Second(msg.tok, msg.at) {
			return blitzSecond(msg.tok)
		}
		s.finish()
	case blitzNextMsg:
		s.game.Next(msg.tok, msg.at)
		s.finish()
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc:
			return navigate(ViewMenu)
		case tea.KeyEnter:
			if s.game.Status() == arcade.StatusOver {
				return s.Init()
			}
		case tea.KeyRunes:
			if msg.Alt || len(msg.Runes) == 0 {
				return nil
			}
			tok, ok := s.game.Press(msg.Runes[0])
			if !ok {
				return nil
			}
			return blitzNext(tok)
		}
	}
	return nil
}

func (s *blitzScreen) finish() {
	if s.saved || s.closed || s.game.Status() != arcade.StatusOver {
		return
	}
	s.saved = true
	s.deps.Player.Play(audio.ToneGameOver)
	saveResult(s.deps, s.game.Result())
}

func (s *blitzScreen) View(width, height int) string {
	if s.game.Status() == arcade.StatusOver {
		return center(s.viewSummary(), width, height)
	}
	hud := fmt.Sprintf("⏱ %ds  Score %d  Combo x%d  Card %d/%d",
		s.game.TimeLeft(), s.game.Score(), s.game.Combo(), s.game.Position()+1, len(s.game.Deck()))
	card, _ := s.game.Card()
	style := glyphStyle
	switch card.Mark {
	case arcade.MarkCorrect:
		style = style.BorderForeground(lipgloss.Color("#4EFF4E"))
	case arcade.MarkIncorrect:
		style = style.BorderForeground(lipgloss.Color("#FF4D4F"))
	}
	body := lipgloss.JoinVertical(lipgloss.Center,
		footerStyle.Render(hud),
		"",
		style.Render(card.Glyph),
		"",
		s.feedback(card),
		"",
		keyHelp("press the Turkish letter  esc: menu"),
	)
	return center(body, width, height)
}

func (s *blitzScreen) feedback(card arcade.Card) string {
	switch card.Mark {
	case arcade.MarkCorrect:
		return okStyle.Render("✓ " + card.Answer)
	case arcade.MarkIncorrect:
		return errorStyle.Render("✗ " + card.Answer)
	}
	return " "
}

func (s *blitzScreen) viewSummary() string {
	rows := []string{
		titleStyle.Render("Time!"),
		"",
		fmt.Sprintf("Score %d (bonus %d)  Best %d", s.game.Score(), s.game.Bonus(), max(s.best, s.game.Score())),
		fmt.Sprintf("Answered %d  Correct %d  Accuracy %d%%", s.game.Answered(), s.game.Correct(), s.game.Accuracy()),
	}
	if mistakes := s.game.Mistakes(); len(mistakes) > 0 {
		parts := make([]string, 0, len(mistakes))
		for _, m := range mistakes {
			parts = append(parts, fmt.Sprintf("%s=%s (you: %s)", m.Glyph, m.Expected, m.Actual))
		}
		rows = append(rows, "", errorStyle.Render("Mistakes"), mutedStyle.Width(64).Render(strings.Join(parts, "  ")))
	}
	rows = append(rows, "", keyHelp("enter: play again  esc: menu"))
	return lipgloss.JoinVertical(lipgloss.Center, rows...)
}

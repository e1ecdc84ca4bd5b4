package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/kiril/internal/arcade"
	"github.com/verte-zerg/kiril/internal/audio"
	"github.com/verte-zerg/kiril/internal/clock"
)

// Grid origin and cell width in terminal cells, relative to the body.
const (
	huntLeft  = 2
	huntTop   = 2
	huntCellW = 3
)

var (
	huntSelectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#101010")).Background(lipgloss.Color("#36C5F0"))
	huntFoundStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#101010")).Background(lipgloss.Color("#4EFF4E"))
	huntHintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#101010")).Background(lipgloss.Color("#C89A3A"))
	huntCursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Underline(true).Bold(true)
)

type huntSecondMsg struct {
	tok clock.Token
	at  time.Time
}

type huntHintMsg struct{ tok clock.Token }

type huntLevelMsg struct{ tok clock.Token }

func huntSecond(tok clock.Token) tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return huntSecondMsg{tok: tok, at: t} })
}

func huntHideHint(tok clock.Token) tea.Cmd {
	return tea.Tick(arcade.HuntHintTime, func(time.Time) tea.Msg { return huntHintMsg{tok: tok} })
}

func huntNextLevel(tok clock.Token) tea.Cmd {
	return tea.Tick(arcade.HuntLevelDelay, func(time.Time) tea.Msg { return huntLevelMsg{tok: tok} })
}

type huntScreen struct {
	deps    Deps
	game    *arcade.Hunt
	cursor  arcade.Cell
	message string
	saved   bool
	closed  bool
	best    int
}

func newHuntScreen(deps Deps, game GameContext) *huntScreen {
	deps = deps.withDefaults()
	h := arcade.NewHunt(arcade.HuntConfig{
		Words:      deps.Words,
		Seconds:    deps.Settings.HuntSeconds,
		Rand:       deps.Rand,
		OnPractice: game.RecordPractice,
	})
	return &huntScreen{deps: deps, game: h}
}

func (s *huntScreen) Init() tea.Cmd {
	s.saved = false
	s.message = ""
	s.cursor = arcade.Cell{}
	s.best = loadBest(s.deps, s.game.Result().Game)
	return huntSecond(s.game.Start(time.Now()))
}

func (s *huntScreen) SetSize(int, int) {}

func (s *huntScreen) Close() {
	s.closed = true
	s.game.Stop(time.Now())
}

func (s *huntScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case huntSecondMsg:
		if s.game.Second(msg.tok, msg.at) {
			return huntSecond(msg.tok)
		}
		s.finish()
	case huntHintMsg:
		s.game.HideHint(msg.tok)
	case huntLevelMsg:
		if s.game.NextLevel(msg.tok) {
			s.message = fmt.Sprintf("Level %d: %d seconds on the clock.", s.game.Level(), s.game.TimeLeft())
		}
	case tea.MouseMsg:
		return s.handleMouse(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return nil
}

// cellAt maps a body position to a grid cell.
func cellAt(x, y int) (arcade.Cell, bool) {
	if x < huntLeft || y < huntTop {
		return arcade.Cell{}, false
	}
	c := arcade.Cell{X: (x - huntLeft) / huntCellW, Y: y - huntTop}
	return c, c.X < arcade.HuntGridSize && c.Y < arcade.HuntGridSize
}

func (s *huntScreen) handleMouse(msg tea.MouseMsg) tea.Cmd {
	c, ok := cellAt(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft && ok && s.game.Begin(c) {
			s.cursor = c
		}
	case tea.MouseActionMotion:
		if ok && s.game.SelectTo(c) {
			s.cursor = c
		}
	case tea.MouseActionRelease:
		return s.release()
	}
	return nil
}

func (s *huntScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	if s.game.Status() == arcade.StatusOver {
		switch msg.String() {
		case "esc":
			return navigate(ViewMenu)
		case "enter":
			return s.Init()
		}
		return nil
	}
	switch msg.String() {
	case "esc":
		if s.game.Selecting() {
			s.game.CancelSelection()
			return nil
		}
		return navigate(ViewMenu)
	case "up":
		s.move(0, -1)
	case "down":
		s.move(0, 1)
	case "left":
		s.move(-1, 0)
	case "right":
		s.move(1, 0)
	case " ", "enter":
		if s.game.Selecting() {
			return s.release()
		}
		s.game.Begin(s.cursor)
	case "h", "?":
		tok, ok := s.game.Hint()
		if !ok {
			return nil
		}
		return huntHideHint(tok)
	}
	return nil
}

// move steps the cursor; while selecting the selection follows it whenever
// the cursor lines up with the first cell.
func (s *huntScreen) move(dx, dy int) {
	next := arcade.Cell{
		X: min(max(s.cursor.X+dx, 0), arcade.HuntGridSize-1),
		Y: min(max(s.cursor.Y+dy, 0), arcade.HuntGridSize-1),
	}
	s.cursor = next
	if s.game.Selecting() {
		s.game.SelectTo(next)
	}
}

func (s *huntScreen) release() tea.Cmd {
	pick := s.game.Release()
	if !pick.Found {
		return nil
	}
	s.message = fmt.Sprintf("Found %s = %s", pick.Word, arcade.HuntForm(pick.Word))
	if !pick.Cleared {
		return nil
	}
	s.message = "Grid cleared! +100"
	s.deps.Player.Play(audio.ToneLocked)
	return huntNextLevel(pick.Advance)
}

func (s *huntScreen) finish() {
	if s.saved || s.closed || s.game.Status() != arcade.StatusOver {
		return
	}
	s.saved = true
	s.deps.Player.Play(audio.ToneGameOver)
	saveResult(s.deps, s.game.Result())
}

func (s *huntScreen) View(width, height int) string {
	if s.game.Status() == arcade.StatusOver {
		return center(s.viewSummary(), width, height)
	}
	left := s.game.TimeLeft()
	hud := fmt.Sprintf("⏱ %d:%02d  Score %d  Level %d  Hints %d  Found %d/%d",
		left/60, left%60, s.game.Score(), s.game.Level(), s.game.Hints(), s.found(), len(s.game.Words()))
	board := lipgloss.JoinHorizontal(lipgloss.Top, s.viewGrid(), "   ", s.viewWords())
	lines := []string{
		strings.Repeat(" ", huntLeft) + footerStyle.Render(hud),
		"",
		board,
		"",
		strings.Repeat(" ", huntLeft) + okStyle.Render(s.message),
		strings.Repeat(" ", huntLeft) + keyHelp("drag or arrows + space to select  h: hint  esc: menu"),
	}
	return strings.Join(lines, "\n")
}

func (s *huntScreen) found() int {
	n := 0
	for _, w := range s.game.Words() {
		if w.Found {
			n++
		}
	}
	return n
}

func (s *huntScreen) viewGrid() string {
	rows := make([]string, arcade.HuntGridSize)
	for y := range rows {
		var b strings.Builder
		b.WriteString(strings.Repeat(" ", huntLeft))
		for x := 0; x < arcade.HuntGridSize; x++ {
			c := arcade.Cell{X: x, Y: y}
			b.WriteString(s.cellStyle(c).Render(" " + string(s.game.At(c)) + " "))
		}
		rows[y] = b.String()
	}
	return strings.Join(rows, "\n")
}

func (s *huntScreen) cellStyle(c arcade.Cell) lipgloss.Style {
	switch {
	case s.game.Selected(c):
		return huntSelectStyle
	case s.game.HintedAt(c):
		return huntHintStyle
	case s.game.FoundAt(c):
		return huntFoundStyle
	case c == s.cursor:
		return huntCursorStyle
	}
	return pendingStyle
}

func (s *huntScreen) viewWords() string {
	lines := []string{labelStyle.Render("Find in Cyrillic")}
	hint := s.game.Hinted()
	for i, w := range s.game.Words() {
		switch {
		case w.Found:
			lines = append(lines, okStyle.Render("✓ "+w.Turkish+" = "+w.Cyrillic))
		case i == hint:
			lines = append(lines, accentStyle.Render("› "+w.Turkish))
		default:
			lines = append(lines, correctStyle.Render("· "+w.Turkish))
		}
	}
	return strings.Join(lines, "\n")
}

func (s *huntScreen) viewSummary() string {
	res := s.game.Result()
	rows := []string{
		titleStyle.Render("Time!"),
		"",
		fmt.Sprintf("Score %d  Best %d", res.Score, max(s.best, res.Score)),
		fmt.Sprintf("Level %d  Words found %d", res.Level, res.Hits),
		"",
		keyHelp("enter: play again  esc: menu"),
	}
	return lipgloss.JoinVertical(lipgloss.Center, rows...)
}

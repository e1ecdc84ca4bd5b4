package tui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/kiril/internal/matching"
)

const (
	matchBoxW   = 9
	matchBoxH   = 3
	matchGap    = 1
	matchTop    = 1
	ropeSamples = 48
)

var (
	ropeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	danglingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	draggingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#36C5F0"))
)

// cellRect is a box in terminal cells.
type cellRect struct{ x, y, w, h int }

func (r cellRect) hit(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

func (r cellRect) units() matching.Rect {
	return matching.Rect{
		Min: matching.Point{X: float64(r.x) * cellW, Y: float64(r.y) * cellH},
		Max: matching.Point{X: float64(r.x+r.w) * cellW, Y: float64(r.y+r.h) * cellH},
	}
}

type matchLayout struct {
	left  []cellRect
	right []cellRect
}

func layoutMatching(n, width int) matchLayout {
	span := min(max(width-2*matchBoxW-8, 16), 48)
	x0 := max((width-2*matchBoxW-span)/2, 0)
	l := matchLayout{left: make([]cellRect, n), right: make([]cellRect, n)}
	for i := 0; i < n; i++ {
		y := matchTop + i*(matchBoxH+matchGap)
		l.left[i] = cellRect{x: x0, y: y, w: matchBoxW, h: matchBoxH}
		l.right[i] = cellRect{x: x0 + matchBoxW + span, y: y, w: matchBoxW, h: matchBoxH}
	}
	return l
}

// anchors returns rope ends: the inner edge middle of every box.
func (l matchLayout) anchors() (left, right []matching.Point) {
	for _, r := range l.left {
		left = append(left, matching.Point{X: float64(r.x+r.w) * cellW, Y: (float64(r.y) + float64(r.h)/2) * cellH})
	}
	for _, r := range l.right {
		right = append(right, matching.Point{X: float64(r.x) * cellW, Y: (float64(r.y) + float64(r.h)/2) * cellH})
	}
	return left, right
}

func (l matchLayout) rightUnits() []matching.Rect {
	out := make([]matching.Rect, len(l.right))
	for i, r := range l.right {
		out[i] = r.units()
	}
	return out
}

func cellCenter(x, y int) matching.Point {
	return matching.Point{X: (float64(x) + 0.5) * cellW, Y: (float64(y) + 0.5) * cellH}
}

type matchingScreen struct {
	deps    Deps
	game    GameContext
	puzzle  *matching.Puzzle
	cursor  int
	message string
	width   int
	height  int
}

func newMatchingScreen(deps Deps, game GameContext) *matchingScreen {
	deps = deps.withDefaults()
	p := matching.New(matching.Options{
		Pairs: deps.Settings.MatchPairs,
		Rand:  deps.Rand,
	})
	return &matchingScreen{deps: deps, game: game, puzzle: p}
}

func (s *matchingScreen) Init() tea.Cmd {
	s.puzzle.Start()
	return nil
}

func (s *matchingScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
}

func (s *matchingScreen) Close() {
	s.puzzle.CancelDrag()
}

func (s *matchingScreen) layout() matchLayout {
	return layoutMatching(len(s.puzzle.Left()), s.width)
}

func (s *matchingScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		s.handleMouse(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return nil
}

func (s *matchingScreen) handleMouse(msg tea.MouseMsg) {
	layout := s.layout()
	at := cellCenter(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		for i, r := range layout.left {
			if r.hit(msg.X, msg.Y) {
				if err := s.puzzle.BeginDrag(i, at); err == nil {
					s.cursor = i
				}
				return
			}
		}
	case tea.MouseActionMotion:
		s.puzzle.MoveDrag(at)
	case tea.MouseActionRelease:
		if _, err := s.puzzle.EndDrag(at, layout.rightUnits()); err != nil && !errors.Is(err, matching.ErrNoDrag) {
			s.message = err.Error()
		}
	}
}

func (s *matchingScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	n := len(s.puzzle.Left())
	switch key {
	case "esc":
		return navigate(ViewMenu)
	case "up":
		if n > 0 {
			s.cursor = (s.cursor + n - 1) % n
		}
		return nil
	case "down":
		if n > 0 {
			s.cursor = (s.cursor + 1) % n
		}
		return nil
	case "backspace", "delete":
		_ = s.puzzle.Disconnect(s.cursor)
		return nil
	case "ctrl+f":
		s.puzzle.Finish()
		s.message = ""
		return nil
	case "enter":
		s.submit()
		return nil
	}
	// Letters and digits only ever pick and tie cards.
	if len(key) == 1 {
		switch c := key[0]; {
		case c >= '1' && int(c-'1') < n:
			s.cursor = int(c - '1')
		case c >= 'a' && int(c-'a') < n:
			if err := s.puzzle.Connect(s.cursor, int(c-'a')); err == nil && s.cursor < n-1 {
				s.cursor++
			}
		}
	}
	return nil
}

func (s *matchingScreen) submit() {
	switch s.puzzle.State() {
	case matching.NotStarted:
		s.puzzle.Start()
		s.message = ""
	case matching.Verified:
		s.puzzle.Restart()
		s.message = ""
	default:
		res, err := s.puzzle.Verify(s.game.RecordPractice)
		if errors.Is(err, matching.ErrNotReady) {
			s.message = "Tie every rope first."
			return
		}
		if err != nil {
			s.message = err.Error()
			return
		}
		s.message = fmt.Sprintf("Correct %d  Wrong %d  Loose %d", res.Correct, res.Incorrect, res.Unconnected)
	}
	s.cursor = 0
}

func (s *matchingScreen) View(width, height int) string {
	if s.puzzle.State() == matching.NotStarted {
		return center(lipgloss.JoinVertical(lipgloss.Center,
			titleStyle.Render("Matching"),
			"",
			"Tie each Cyrillic letter to its Turkish letter.",
			"",
			keyHelp("enter: start  esc: menu"),
		), width, height)
	}
	n := len(s.puzzle.Left())
	footer := keyHelp(fmt.Sprintf("drag ropes with the mouse, or 1-%d pick, a-%c tie, backspace untie  enter: check  ctrl+f: finish  esc: menu",
		n, 'a'+rune(max(n-1, 0))))
	if s.puzzle.State() == matching.Verified {
		footer = keyHelp("enter: new round  ctrl+f: finish  esc: menu")
	}
	status := mutedStyle.Render(s.puzzle.State().String())
	if s.message != "" {
		status += "  " + accentStyle.Render(s.message)
	}
	return s.board(width, max(height-2, 1)).String() + "\n" + status + "\n" + footer
}

func (s *matchingScreen) board(width, height int) *canvas {
	c := newCanvas(width, height)
	layout := layoutMatching(len(s.puzzle.Left()), width)
	leftA, rightA := layout.anchors()
	verified := s.puzzle.State() == matching.Verified

	for _, rope := range s.puzzle.Ropes(leftA, rightA) {
		style := &danglingStyle
		switch {
		case rope.Kind == matching.RopeDragging:
			style = &draggingStyle
		case rope.Kind == matching.RopeLinked && verified && s.puzzle.IsCorrect(rope.Left):
			style = &okStyle
		case rope.Kind == matching.RopeLinked && verified:
			style = &errorStyle
		case rope.Kind == matching.RopeLinked:
			style = &ropeStyle
		}
		for _, p := range rope.Curve.Sample(ropeSamples) {
			x, y := toCell(p.X, p.Y)
			c.put(x, y, "•", style)
		}
	}

	for i, card := range s.puzzle.Left() {
		style := &mutedStyle
		switch {
		case verified && s.puzzle.IsCorrect(i):
			style = &okStyle
		case verified:
			style = &errorStyle
		case i == s.cursor:
			style = &accentStyle
		}
		r := layout.left[i]
		c.box(r.x, r.y, r.w, r.h, fmt.Sprintf("%d %s", i+1, card.Cyrillic), style)
	}
	for i, card := range s.puzzle.Right() {
		r := layout.right[i]
		c.box(r.x, r.y, r.w, r.h, fmt.Sprintf("%c %s", 'a'+i, card.Turkish), &correctStyle)
	}
	return c
}

package tui

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/kiril/internal/alphabet"
	"github.com/verte-zerg/kiril/internal/audio"
	"github.com/verte-zerg/kiril/internal/clock"
	"github.com/verte-zerg/kiril/internal/reflex"
)

type dwellTickMsg struct{ tok clock.Token }

func dwellTick(tok clock.Token) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return dwellTickMsg{tok: tok} })
}

type reflexScreen struct {
	deps    Deps
	engine  *reflex.Engine
	input   textinput.Model
	message string
	failed  bool
	// confirming is set while the reset question is on screen.
	confirming bool
}

func newReflexScreen(deps Deps, game GameContext) *reflexScreen {
	deps = deps.withDefaults()
	engine := reflex.New(deps.Progress, reflex.Options{
		Dwell:      time.Duration(deps.Settings.DwellSeconds) * time.Second,
		LockStreak: deps.Settings.LockStreak,
		Clock:      deps.Clock,
		OnPractice: game.RecordPractice,
	})
	input := textinput.New()
	input.Prompt = "› "
	input.Placeholder = "Turkish letter"
	input.CharLimit = 4
	input.Width = 12
	return &reflexScreen{deps: deps, engine: engine, input: input}
}

func (s *reflexScreen) Init() tea.Cmd {
	return s.enterCoding()
}

func (s *reflexScreen) SetSize(int, int) {}

func (s *reflexScreen) Close() {
	s.engine.Stop()
}

// enterCoding pronounces the current letter and starts the dwell countdown.
func (s *reflexScreen) enterCoding() tea.Cmd {
	s.input.Blur()
	s.input.Reset()
	cur, ok := s.engine.Current()
	if !ok || s.engine.Stage() != reflex.StageCoding {
		return nil
	}
	s.deps.Speaker.Speak(strings.ToLower(cur.Cyrillic), s.deps.Settings.SpeechLocale)
	return dwellTick(s.engine.DwellToken())
}

func (s *reflexScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case dwellTickMsg:
		if !s.engine.DwellValid(msg.tok) || s.engine.CanAdvance() {
			return nil
		}
		return dwellTick(msg.tok)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	if s.engine.Stage() == reflex.StageLocking {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return cmd
	}
	return nil
}

func (s *reflexScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	if s.confirming {
		return s.confirmReset(msg)
	}
	switch msg.String() {
	case "esc":
		return navigate(ViewMenu)
	case "ctrl+r":
		s.confirming = true
		return nil
	}

	switch s.engine.Stage() {
	case reflex.StageCoding:
		switch msg.String() {
		case "enter", " ":
			if err := s.engine.Advance(); err != nil {
				if errors.Is(err, reflex.ErrDwellPending) {
					s.message = "Keep looking at the letter a little longer."
				}
				return nil
			}
			s.message = ""
			s.failed = false
			s.input.Reset()
			return s.input.Focus()
		case "s":
			if cur, ok := s.engine.Current(); ok {
				s.deps.Speaker.Speak(strings.ToLower(cur.Cyrillic), s.deps.Settings.SpeechLocale)
			}
		}
	case reflex.StageLocking:
		if msg.Type != tea.KeyEnter {
			var cmd tea.Cmd
			s.input, cmd = s.input.Update(msg)
			return cmd
		}
		res, err := s.engine.Submit(s.input.Value())
		if err != nil {
			return nil
		}
		s.input.Reset()
		return s.afterSubmit(res)
	case reflex.StageCompleted:
		switch msg.String() {
		case "enter", "c":
			if err := s.engine.Continue(); err != nil {
				return nil
			}
			s.message = ""
			return s.enterCoding()
		}
	}
	return nil
}

// confirmReset answers the reset question: y wipes every letter status,
// any other key keeps them.
func (s *reflexScreen) confirmReset(msg tea.KeyMsg) tea.Cmd {
	s.confirming = false
	if k := msg.String(); k != "y" && k != "Y" {
		return nil
	}
	s.engine.Reset()
	s.message = "Letter progress cleared."
	s.failed = false
	return s.enterCoding()
}

func (s *reflexScreen) afterSubmit(res reflex.Result) tea.Cmd {
	switch {
	case !res.Correct:
		s.failed = true
		s.message = fmt.Sprintf("Wrong! %s is %s. Let's look at it again.", res.Letter.Cyrillic, res.Letter.Turkish)
		return s.enterCoding()
	case res.Locked:
		s.failed = false
		s.deps.Player.Play(audio.ToneLocked)
		s.message = fmt.Sprintf("%s locked.", res.Letter.Cyrillic)
		if res.Stage == reflex.StageCoding {
			return s.enterCoding()
		}
		return nil
	default:
		s.failed = false
		s.message = fmt.Sprintf("Correct %d/%d", res.Streak, s.engine.LockStreak())
		return nil
	}
}

func (s *reflexScreen) View(width, height int) string {
	var body string
	switch s.engine.Stage() {
	case reflex.StageCoding:
		body = s.viewCoding()
	case reflex.StageLocking:
		body = s.viewLocking()
	default:
		body = s.viewCompleted()
	}
	parts := []string{s.viewWindow(), "", body}
	if s.confirming {
		parts = append(parts, "", cardStyle.Render(errorStyle.Render("Reset all letter progress?")+"\n"+
			mutedStyle.Render("Locked letters go back to new. Statistics stay.")+"\n\n"+
			keyHelp("y: reset  any other key: cancel")))
		return center(lipgloss.JoinVertical(lipgloss.Center, parts...), width, height)
	}
	if s.message != "" {
		style := okStyle
		if s.failed {
			style = errorStyle
		}
		parts = append(parts, "", style.Render(s.message))
	}
	parts = append(parts, "", keyHelp(s.help()))
	return center(lipgloss.JoinVertical(lipgloss.Center, parts...), width, height)
}

func (s *reflexScreen) help() string {
	switch s.engine.Stage() {
	case reflex.StageCoding:
		return "enter: continue  s: speak  ctrl+r: reset letters  esc: menu"
	case reflex.StageLocking:
		return "type the Turkish letter, enter: check  ctrl+r: reset letters  esc: menu"
	default:
		return "enter: practice again  ctrl+r: reset letters  esc: menu"
	}
}

// viewWindow shows the working set with the current letter highlighted.
func (s *reflexScreen) viewWindow() string {
	window := s.engine.Window()
	cells := make([]string, 0, len(window))
	for i, l := range window {
		if i == s.engine.Index() {
			cells = append(cells, accentStyle.Render("["+l.Cyrillic+"]"))
		} else {
			cells = append(cells, pendingStyle.Render(" "+l.Cyrillic+" "))
		}
	}
	progress := fmt.Sprintf("Locked %d/%d", s.engine.LockedCount(), s.engine.Total())
	return strings.Join(cells, "") + "   " + footerStyle.Render(progress)
}

func (s *reflexScreen) viewCoding() string {
	cur, ok := s.engine.Current()
	if !ok {
		return ""
	}
	rows := []string{
		titleStyle.Render("Stage 1: Encode"),
		"",
		glyphStyle.Render(cur.Cyrillic + " " + alphabet.Lower(cur.Cyrillic)),
		"",
		cardStyle.Render(letterDetails(cur)),
		"",
	}
	if left := s.engine.DwellRemaining(); left > 0 {
		rows = append(rows, pendingStyle.Render(fmt.Sprintf("Wait (%ds)", int(math.Ceil(left.Seconds())))))
	} else {
		rows = append(rows, okStyle.Render("Ready: press enter"))
	}
	return lipgloss.JoinVertical(lipgloss.Center, rows...)
}

func letterDetails(l alphabet.LetterPair) string {
	rows := [][2]string{
		{"Letter", l.Turkish},
		{"Sound", l.Pronunciation},
		{"Shape", l.Association},
	}
	if l.ExampleWord != "" {
		rows = append(rows,
			[2]string{"Example", l.ExampleWord},
			[2]string{"Reading", l.ExamplePronunciation},
			[2]string{"Meaning", l.ExampleTranslation},
		)
	}
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, labelStyle.Render(fmt.Sprintf("%-8s", r[0]))+" "+valueStyle.Render(r[1]))
	}
	return strings.Join(lines, "\n")
}

func (s *reflexScreen) viewLocking() string {
	cur, ok := s.engine.Current()
	if !ok {
		return ""
	}
	dots := make([]string, s.engine.LockStreak())
	for i := range dots {
		if i < s.engine.Streak() {
			dots[i] = okStyle.Render("●")
		} else {
			dots[i] = pendingStyle.Render("○")
		}
	}
	return lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render("Stage 2: Lock"),
		"",
		glyphStyle.Render(cur.Cyrillic),
		pendingStyle.Render("↓"),
		"?",
		"",
		s.input.View(),
		"",
		strings.Join(dots, " "),
	)
}

func (s *reflexScreen) viewCompleted() string {
	return lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render("All letters locked"),
		"",
		fmt.Sprintf("You locked %d of %d letters.", s.engine.LockedCount(), s.engine.Total()),
	)
}

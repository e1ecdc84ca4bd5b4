package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/kiril/internal/alphabet"
)

type translitScreen struct {
	deps  Deps
	input textinput.Model
	width int
}

func newTranslitScreen(deps Deps) *translitScreen {
	deps = deps.withDefaults()
	input := textinput.New()
	input.Prompt = "tr › "
	input.Placeholder = "Merhaba dünya"
	input.CharLimit = 400
	input.Focus()
	return &translitScreen{deps: deps, input: input}
}

func (s *translitScreen) Init() tea.Cmd {
	return textinput.Blink
}

func (s *translitScreen) SetSize(width, _ int) {
	s.width = width
	s.input.Width = max(width-8, 10)
}

func (s *translitScreen) Close() {}

func (s *translitScreen) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return navigate(ViewMenu)
		case "ctrl+s":
			if out := s.output(); out != "" {
				s.deps.Speaker.Speak(alphabet.Lower(out), s.deps.Settings.SpeechLocale)
			}
			return nil
		case "ctrl+u":
			s.input.Reset()
			return nil
		}
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd
}

func (s *translitScreen) output() string {
	return alphabet.Transliterate(strings.TrimSpace(s.input.Value()))
}

func (s *translitScreen) View(width, height int) string {
	lines := []string{titleStyle.Render("Transliterate"), "", s.input.View(), ""}
	if out := s.output(); out != "" {
		lines = append(lines, wrapCells(textCells("ru › "+out, correctStyle), max(width-2, 10)))
	} else {
		lines = append(lines, mutedStyle.Render("Type Turkish text to see it in Cyrillic."))
	}
	lines = append(lines, "", keyHelp("ctrl+s: speak  ctrl+u: clear  esc: menu"))
	return strings.Join(lines, "\n")
}

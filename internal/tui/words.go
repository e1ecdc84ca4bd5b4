package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/kiril/internal/alphabet"
)

const (
	wordsPerRound = 10
	wordsMaxLevel = 3
)

type wordAnswer struct {
	word    alphabet.Word
	typed   string
	correct bool
}

// wordsScreen shows a word written in Cyrillic and asks for its Turkish
// spelling.
type wordsScreen struct {
	deps    Deps
	game    GameContext
	words   []alphabet.Word
	index   int
	answers []wordAnswer
	input   textinput.Model
	width   int
}

func newWordsScreen(deps Deps, game GameContext) *wordsScreen {
	deps = deps.withDefaults()
	input := textinput.New()
	input.Prompt = "› "
	input.Placeholder = "Turkish spelling"
	input.CharLimit = 32
	input.Width = 24
	s := &wordsScreen{deps: deps, game: game, input: input}
	s.deal()
	return s
}

func (s *wordsScreen) deal() {
	if len(s.deps.Words) > 0 {
		s.words = s.deps.Rand.SampleWordsFrom(s.deps.Words, wordsPerRound, wordsMaxLevel)
	} else {
		s.words = s.deps.Rand.SampleWords(wordsPerRound, wordsMaxLevel)
	}
	s.index = 0
	s.answers = nil
	s.input.Reset()
	s.input.Focus()
}

func (s *wordsScreen) Init() tea.Cmd {
	return textinput.Blink
}

func (s *wordsScreen) SetSize(width, _ int) {
	s.width = width
}

func (s *wordsScreen) Close() {}

func (s *wordsScreen) done() bool {
	return s.index >= len(s.words)
}

func (s *wordsScreen) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return cmd
	}
	switch key.String() {
	case "esc":
		return navigate(ViewMenu)
	case "enter":
		if s.done() {
			s.deal()
			return nil
		}
		s.submit()
		return nil
	case "ctrl+s":
		if !s.done() {
			s.deps.Speaker.Speak(alphabet.Lower(alphabet.Transliterate(s.words[s.index].Turkish)), s.deps.Settings.SpeechLocale)
		}
		return nil
	}
	if s.done() {
		return nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd
}

func (s *wordsScreen) submit() {
	typed := strings.TrimSpace(s.input.Value())
	if typed == "" {
		return
	}
	word := s.words[s.index]
	correct := alphabet.CheckAnswer(alphabet.Transliterate(typed), word.Turkish)
	s.answers = append(s.answers, wordAnswer{word: word, typed: typed, correct: correct})
	s.game.RecordPractice(correct)
	s.index++
	s.input.Reset()
}

func (s *wordsScreen) correctCount() int {
	n := 0
	for _, a := range s.answers {
		if a.correct {
			n++
		}
	}
	return n
}

func (s *wordsScreen) View(width, height int) string {
	if len(s.words) == 0 {
		return center(mutedStyle.Render("No words available."), width, height)
	}
	if s.done() {
		return center(s.viewSummary(), width, height)
	}
	word := s.words[s.index]
	lines := []string{
		titleStyle.Render("Words") + "  " + mutedStyle.Render(fmt.Sprintf("%d/%d  level %d", s.index+1, len(s.words), word.Level)),
		"",
		glyphStyle.Render(alphabet.Transliterate(word.Turkish)),
		"",
		s.input.View(),
	}
	if n := len(s.answers); n > 0 {
		lines = append(lines, "", s.feedback(s.answers[n-1]))
	}
	lines = append(lines, "", keyHelp("enter: check  ctrl+s: speak  esc: menu"))
	return center(lipgloss.JoinVertical(lipgloss.Center, lines...), width, height)
}

// feedback renders the word in Cyrillic, marked by what was typed.
func (s *wordsScreen) feedback(a wordAnswer) string {
	text := wrapCells(spellingCells(a.word.Turkish, a.typed), max(s.width-4, 8))
	if a.correct {
		return okStyle.Render("✓ ") + text + mutedStyle.Render("  "+a.word.Turkish)
	}
	return errorStyle.Render("✗ ") + text + mutedStyle.Render("  "+a.word.Turkish+" (you typed "+a.typed+")")
}

func (s *wordsScreen) viewSummary() string {
	lines := []string{
		titleStyle.Render("Round complete"),
		"",
		fmt.Sprintf("%d of %d correct", s.correctCount(), len(s.answers)),
		"",
	}
	for _, a := range s.answers {
		mark := okStyle.Render("✓")
		if !a.correct {
			mark = errorStyle.Render("✗")
		}
		lines = append(lines, fmt.Sprintf("%s %-14s %s", mark, alphabet.Transliterate(a.word.Turkish), a.word.Turkish))
	}
	lines = append(lines, "", keyHelp("enter: new round  esc: menu"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

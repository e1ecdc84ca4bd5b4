package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type menuItem struct {
	id    ViewID
	key   string
	title string
	desc  string
}

var menuItems = []menuItem{
	{ViewReflex, "1", "Reflex", "Encode each letter, then lock it with three correct answers"},
	{ViewRain, "2", "Rain", "Type falling letters before they hit the ground"},
	{ViewBlitz, "3", "Blitz", "Sixty seconds, one keystroke per letter"},
	{ViewHunt, "4", "Word hunt", "Find Cyrillic words hidden in a letter grid"},
	{ViewMatching, "5", "Matching", "Tie ropes from Cyrillic to Turkish letters"},
	{ViewWords, "6", "Words", "Read whole words written in Cyrillic"},
	{ViewTranslit, "7", "Transliterate", "Write Turkish, see it in Cyrillic"},
	{ViewStats, "8", "Stats", "Streak, history, letters and best scores"},
}

type menuScreen struct {
	game   GameContext
	cursor int
}

func newMenuScreen(_ Deps, game GameContext) *menuScreen {
	return &menuScreen{game: game}
}

func (s *menuScreen) Init() tea.Cmd { return nil }

func (s *menuScreen) SetSize(int, int) {}

func (s *menuScreen) Close() {}

func (s *menuScreen) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "up", "k":
		s.cursor = (s.cursor + len(menuItems) - 1) % len(menuItems)
	case "down", "j", "tab":
		s.cursor = (s.cursor + 1) % len(menuItems)
	case "enter", " ":
		return navigate(menuItems[s.cursor].id)
	case "q", "esc":
		return tea.Quit
	default:
		for _, item := range menuItems {
			if key.String() == item.key {
				return navigate(item.id)
			}
		}
	}
	return nil
}

func (s *menuScreen) View(width, height int) string {
	lines := []string{titleStyle.Render("Cyrillic for Turkish speakers"), ""}
	for i, item := range menuItems {
		label := fmt.Sprintf("%s  %-14s", item.key, item.title)
		if i == s.cursor {
			lines = append(lines, accentStyle.Render("› "+label)+"  "+correctStyle.Render(item.desc))
		} else {
			lines = append(lines, pendingStyle.Render("  "+label)+"  "+mutedStyle.Render(item.desc))
		}
	}
	if len(s.game.AvailableLetters()) == 0 {
		lines = append(lines, "", mutedStyle.Render("No letters locked yet: the games use the whole alphabet."))
	}
	lines = append(lines, "", keyHelp("up/down: move  enter or 1-8: open  q: quit  ctrl+c: quit anywhere"))
	return center(strings.Join(lines, "\n"), width, height)
}

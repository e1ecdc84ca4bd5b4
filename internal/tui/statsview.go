package tui

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/verte-zerg/kiril/internal/model"
	"github.com/verte-zerg/kiril/internal/progress"
	"github.com/verte-zerg/kiril/internal/stats"
)

const (
	tabOverview = iota
	tabLetters
	tabGames
)

const (
	plotHeight   = 8
	curveWindow  = 3
	recentGames  = 50
	statsTimeout = 2 * time.Second
)

var (
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
)

type statsScreen struct {
	deps Deps

	report stats.Report
	errMsg string

	tabs      []string
	activeTab int
	overview  viewport.Model
	letters   table.Model
	games     table.Model

	width  int
	height int
}

func newStatsScreen(deps Deps) *statsScreen {
	deps = deps.withDefaults()
	s := &statsScreen{
		deps:     deps,
		tabs:     []string{"Overview", "Letters", "Games"},
		overview: viewport.New(0, 0),
		letters:  newStatsTable(letterColumns()),
		games:    newStatsTable(gameColumns()),
	}
	s.refresh()
	return s
}

func (s *statsScreen) Init() tea.Cmd { return nil }

func (s *statsScreen) Close() {}

func (s *statsScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	body := s.bodyHeight()
	s.overview.Width = width
	s.overview.Height = body
	s.letters.SetWidth(width)
	s.letters.SetHeight(max(body-1, 1))
	s.games.SetWidth(width)
	s.games.SetHeight(max(body-1, 1))
	s.renderOverview()
}

func (s *statsScreen) bodyHeight() int {
	tabs := lipgloss.Height(activeNavStyle.Render("X"))
	return max(s.height-tabs-2, 1)
}

func (s *statsScreen) refresh() {
	rec := s.deps.Progress.Snapshot()
	ctx, cancel := context.WithTimeout(context.Background(), statsTimeout)
	defer cancel()
	report, err := stats.BuildReport(ctx, s.deps.Games, rec, progress.SortedHistory(rec), s.deps.Progress.EffectiveStreak(), recentGames)
	if err != nil {
		s.deps.Log.Warn("failed to build stats report", zap.Error(err))
		s.errMsg = err.Error()
		report, _ = stats.BuildReport(ctx, nil, rec, progress.SortedHistory(rec), s.deps.Progress.EffectiveStreak(), 0)
	} else {
		s.errMsg = ""
	}
	s.report = report
	s.letters.SetRows(letterRows(report.Letters))
	s.games.SetRows(gameRows(report.Games))
	s.renderOverview()
}

func (s *statsScreen) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "esc", "q":
		return navigate(ViewMenu)
	case "left", "h":
		s.moveTab(-1)
		return nil
	case "right", "l", "tab":
		s.moveTab(1)
		return nil
	case "r":
		s.refresh()
		return nil
	}
	var cmd tea.Cmd
	switch s.activeTab {
	case tabLetters:
		s.letters, cmd = s.letters.Update(msg)
	case tabGames:
		s.games, cmd = s.games.Update(msg)
	default:
		s.overview, cmd = s.overview.Update(msg)
	}
	return cmd
}

func (s *statsScreen) moveTab(delta int) {
	count := len(s.tabs)
	s.activeTab = (s.activeTab + delta + count) % count
	s.letters.Blur()
	s.games.Blur()
	switch s.activeTab {
	case tabLetters:
		s.letters.Focus()
	case tabGames:
		s.games.Focus()
	}
}

func (s *statsScreen) View(width, height int) string {
	var body string
	switch s.activeTab {
	case tabLetters:
		body = s.letters.View()
	case tabGames:
		body = s.games.View()
	default:
		body = s.overview.View()
	}
	footer := keyHelp("Nav: left/right  Scroll: up/down/pgup/pgdn  Refresh: r  Back: esc")
	if s.errMsg != "" {
		footer = errorStyle.Render(truncateLine(s.errMsg, width))
	}
	return s.renderTabs() + "\n" + fitLines(body, width, s.bodyHeight()) + "\n" + footer
}

func (s *statsScreen) renderTabs() string {
	parts := make([]string, 0, len(s.tabs))
	for i, tab := range s.tabs {
		if i == s.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (s *statsScreen) renderOverview() {
	width := s.width
	if width <= 0 {
		width = 80
	}
	s.overview.SetContent(renderOverview(s.report, width))
}

func renderOverview(r stats.Report, width int) string {
	rec := r.Progress
	locked := 0
	for _, l := range r.Letters {
		if l.Locked {
			locked++
		}
	}
	cards := []string{
		metricCard("Streak", fmt.Sprintf("%d", r.Streak)),
		metricCard("Today", fmt.Sprintf("%d/%d", rec.TodayCorrect, rec.TodayWords)),
		metricCard("Accuracy", fmt.Sprintf("%.1f%%", stats.Accuracy(rec.TotalCorrect, rec.TotalWords))),
		metricCard("Time", stats.FormatSeconds(rec.TotalTime)),
		metricCard("Locked", fmt.Sprintf("%d/%d", locked, len(r.Letters))),
	}
	for _, g := range model.Games() {
		cards = append(cards, metricCard("Best "+string(g), fmt.Sprintf("%d", r.Best[g])))
	}
	var summary string
	if width < 80 {
		summary = strings.Join(cards, "\n")
	} else {
		summary = lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.JoinHorizontal(lipgloss.Top, cards[:4]...),
			lipgloss.JoinHorizontal(lipgloss.Top, cards[4:]...),
		)
	}
	var buf bytes.Buffer
	if err := stats.RenderHistory(&buf, r.History); err != nil {
		return summary + "\n\n" + fmt.Sprintf("Failed to render history: %v", err)
	}
	if err := stats.RenderCurves(&buf, r.History, curveWindow, width, plotHeight, true); err != nil {
		return summary + "\n\n" + fmt.Sprintf("Failed to render curves: %v", err)
	}
	return strings.TrimRight(summary+"\n\n"+buf.String(), "\n")
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func letterColumns() []table.Column {
	return []table.Column{
		{Title: "Letter", Width: 7},
		{Title: "Turkish", Width: 8},
		{Title: "Coded", Width: 6},
		{Title: "Locked", Width: 7},
		{Title: "Learned", Width: 8},
	}
}

func gameColumns() []table.Column {
	return []table.Column{
		{Title: "Ended", Width: 17},
		{Title: "Game", Width: 6},
		{Title: "Score", Width: 6},
		{Title: "Level", Width: 6},
		{Title: "Hits", Width: 5},
		{Title: "Misses", Width: 7},
	}
}

func letterRows(letters []stats.LetterRow) []table.Row {
	rows := make([]table.Row, 0, len(letters))
	for _, l := range letters {
		rows = append(rows, table.Row{l.Cyrillic, l.Turkish, check(l.Coded), check(l.Locked), check(l.Learned)})
	}
	return rows
}

func gameRows(results []model.GameResult) []table.Row {
	rows := make([]table.Row, 0, len(results))
	for _, g := range results {
		rows = append(rows, table.Row{
			g.EndedAt.Local().Format("2006-01-02 15:04"),
			string(g.Game),
			fmt.Sprintf("%d", g.Score),
			fmt.Sprintf("%d", g.Level),
			fmt.Sprintf("%d", g.Hits),
			fmt.Sprintf("%d", g.Misses),
		})
	}
	return rows
}

func check(ok bool) string {
	if ok {
		return "✓"
	}
	return "·"
}

func newStatsTable(columns []table.Column) table.Model {
	t := table.New(table.WithColumns(columns), table.WithHeight(1))
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	t.SetStyles(styles)
	return t
}

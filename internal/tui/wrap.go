package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/kiril/internal/alphabet"
)

// textCell is one rendered rune and the columns it occupies.
type textCell struct {
	text  string
	width int
	space bool
}

func newCell(r rune, style lipgloss.Style) textCell {
	return textCell{text: style.Render(string(r)), width: runewidth.RuneWidth(r), space: r == ' '}
}

// textCells styles every rune of text alike.
func textCells(text string, style lipgloss.Style) []textCell {
	out := make([]textCell, 0, len(text))
	for _, r := range text {
		out = append(out, newCell(r, style))
	}
	return out
}

// spellingCells renders want in Cyrillic with every letter marked against
// the Cyrillic form of got. Letters not reached are pending, a filled-in
// space shows as a red dot and surplus letters trail in red.
func spellingCells(want, got string) []textCell {
	target := []rune(alphabet.Transliterate(want))
	typed := []rune(alphabet.Transliterate(got))
	out := make([]textCell, 0, max(len(target), len(typed)))
	for i, r := range target {
		if i >= len(typed) {
			out = append(out, newCell(r, pendingStyle))
			continue
		}
		switch {
		case r == ' ' && typed[i] != ' ':
			out = append(out, newCell('•', incorrectStyle))
		case sameLetter(typed[i], r):
			out = append(out, newCell(r, correctStyle))
		default:
			out = append(out, newCell(r, incorrectStyle))
		}
	}
	for _, r := range typed[min(len(target), len(typed)):] {
		out = append(out, newCell(r, incorrectStyle))
	}
	return out
}

// sameLetter compares two runes ignoring case, with Turkish dotted and
// dotless i kept apart.
func sameLetter(a, b rune) bool {
	return a == b || alphabet.EqualFold(string(a), string(b))
}

// wrapCells lays cells out in lines of at most width columns. Lines break
// between words and drop the spaces at the break; a word wider than a line
// is split.
func wrapCells(cells []textCell, width int) string {
	if width <= 0 {
		return joinCells(cells)
	}
	var (
		lines []string
		line  []textCell
		gap   []textCell
		used  int
	)
	flush := func() {
		lines = append(lines, joinCells(line))
		line, gap, used = nil, nil, 0
	}
	for _, tok := range splitWords(cells) {
		if tok[0].space {
			if len(line) > 0 {
				gap = append(gap, tok...)
			}
			continue
		}
		if len(line) > 0 && used+cellsWidth(gap)+cellsWidth(tok) > width {
			flush()
		}
		line = append(line, gap...)
		used += cellsWidth(gap)
		gap = nil
		for _, c := range tok {
			if len(line) > 0 && used+c.width > width {
				flush()
			}
			line = append(line, c)
			used += c.width
		}
	}
	flush()
	return strings.Join(lines, "\n")
}

// splitWords groups cells into alternating runs of words and spaces.
func splitWords(cells []textCell) [][]textCell {
	var out [][]textCell
	for i := 0; i < len(cells); {
		j := i + 1
		for j < len(cells) && cells[j].space == cells[i].space {
			j++
		}
		out = append(out, cells[i:j])
		i = j
	}
	return out
}

func cellsWidth(cells []textCell) int {
	n := 0
	for _, c := range cells {
		n += c.width
	}
	return n
}

func joinCells(cells []textCell) string {
	var b strings.Builder
	for _, c := range cells {
		b.WriteString(c.text)
	}
	return b.String()
}

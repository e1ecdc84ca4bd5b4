package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Virtual units per terminal cell. Game geometry works in units so a cell
// is roughly twice as tall as it is wide, like a real glyph.
const (
	cellW = 10.0
	cellH = 20.0
)

type cell struct {
	s     string
	style *lipgloss.Style
	// cont marks the right half of a wide glyph.
	cont bool
}

// canvas is a fixed grid of styled cells.
type canvas struct {
	w, h  int
	cells [][]cell
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: max(w, 0), h: max(h, 0)}
	c.cells = make([][]cell, c.h)
	for y := range c.cells {
		c.cells[y] = make([]cell, c.w)
	}
	return c
}

// toCell projects a point in virtual units onto the grid.
func toCell(x, y float64) (int, int) {
	col := int(x / cellW)
	row := int(y / cellH)
	if x < 0 {
		col = -1
	}
	if y < 0 {
		row = -1
	}
	return col, row
}

func (c *canvas) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.w && y < c.h
}

// put writes one glyph. A wide glyph takes two cells and is dropped when
// it does not fit.
func (c *canvas) put(x, y int, s string, style *lipgloss.Style) {
	width := runewidth.StringWidth(s)
	if width < 1 {
		width = 1
	}
	if !c.inside(x, y) || !c.inside(x+width-1, y) {
		return
	}
	if c.cells[y][x].cont && x > 0 {
		c.cells[y][x-1] = cell{}
	}
	c.cells[y][x] = cell{s: s, style: style}
	for i := 1; i < width; i++ {
		c.cells[y][x+i] = cell{cont: true}
	}
}

// text writes s left to right starting at x.
func (c *canvas) text(x, y int, s string, style *lipgloss.Style) {
	for _, r := range s {
		ch := string(r)
		c.put(x, y, ch, style)
		x += max(runewidth.RuneWidth(r), 1)
	}
}

// box draws a single-line frame with label centered inside.
func (c *canvas) box(x, y, w, h int, label string, style *lipgloss.Style) {
	if w < 2 || h < 2 {
		return
	}
	for i := 1; i < w-1; i++ {
		c.put(x+i, y, "─", style)
		c.put(x+i, y+h-1, "─", style)
		for j := 1; j < h-1; j++ {
			c.put(x+i, y+j, " ", style)
		}
	}
	for j := 1; j < h-1; j++ {
		c.put(x, y+j, "│", style)
		c.put(x+w-1, y+j, "│", style)
	}
	c.put(x, y, "┌", style)
	c.put(x+w-1, y, "┐", style)
	c.put(x, y+h-1, "└", style)
	c.put(x+w-1, y+h-1, "┘", style)
	lw := runewidth.StringWidth(label)
	c.text(x+(w-lw)/2, y+(h-1)/2, label, style)
}

func (c *canvas) String() string {
	lines := make([]string, c.h)
	for y, row := range c.cells {
		var b strings.Builder
		for _, cl := range row {
			switch {
			case cl.cont:
			case cl.s == "":
				b.WriteByte(' ')
			case cl.style != nil:
				b.WriteString(cl.style.Render(cl.s))
			default:
				b.WriteString(cl.s)
			}
		}
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}

package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// Series represents a named data series for plotting.
type Series struct {
	Name   string
	Values []float64
}

const (
	defaultPlotHeight = 10
	minPlotWidth      = 10
	axisWidth         = 4
	axisSeparator     = " │ "
	scaleNote         = "Scaled per series; see min/max below."
	colorReset        = "\x1b[0m"
	fallbackWidth     = 80
)

var palette = []string{"\x1b[36m", "\x1b[35m", "\x1b[33m", "\x1b[32m", "\x1b[34m"}

// dash patterns per series index: a dot is drawn when x%period < on.
var dashes = []struct {
	name       string
	period, on int
}{
	{"solid", 1, 1},
	{"dashed", 6, 3},
	{"dotted", 4, 1},
}

// canvas is a braille grid: each cell holds 2x4 dots.
type canvas struct {
	w, h  int
	cells [][]uint8
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: w, h: h, cells: make([][]uint8, h)}
	for y := range c.cells {
		c.cells[y] = make([]uint8, w)
	}
	return c
}

var dotBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

func (c *canvas) dot(x, y int) {
	if x < 0 || y < 0 || x >= c.w*2 || y >= c.h*4 {
		return
	}
	c.cells[y/4][x/2] |= dotBits[x%2][y%4]
}

// line draws with Bresenham, skipping dots the dash pattern hides.
func (c *canvas) line(x0, y0, x1, y1, period, on int) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := sign(x1-x0), sign(y1-y0)
	e := dx + dy
	for {
		if x0%period < on {
			c.dot(x0, y0)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			if x0 == x1 {
				return
			}
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			if y0 == y1 {
				return
			}
			e += dx
			y0 += sy
		}
	}
}

// PlotSeries renders a multi-line braille plot for the provided series.
func PlotSeries(w io.Writer, title string, series []Series, width, height int) error {
	return PlotSeriesWithColor(w, title, series, width, height, false)
}

// PlotSeriesWithColor renders a plot with optional forced color output.
func PlotSeriesWithColor(w io.Writer, title string, series []Series, width, height int, forceColor bool) error {
	kept := series[:0:0]
	for _, s := range series {
		if len(s.Values) > 0 {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	if height <= 0 {
		height = defaultPlotHeight
	}
	if width <= 0 {
		width = PlotWidthFor(terminalWidth())
	}
	width = max(width, minPlotWidth)

	layers := make([]*canvas, len(kept))
	lines := []string{}
	if title != "" {
		lines = append(lines, title)
	}
	lines = append(lines, scaleNote)
	for i, s := range kept {
		values := resample(s.Values, width)
		lo, hi := minMax(values)
		lines = append(lines, fmt.Sprintf("%s: min=%.2f max=%.2f", s.Name, lo, hi))
		if math.Abs(hi-lo) < 1e-9 {
			lo--
			hi++
		}
		layers[i] = newCanvas(width, height)
		d := dashes[i%len(dashes)]
		px, py := -1, -1
		for x, v := range values {
			y := int(math.Round((1 - (v-lo)/(hi-lo)) * float64(height*4-1)))
			if px < 0 {
				px, py = x*2, y
			}
			layers[i].line(px, py, x*2, y, d.period, d.on)
			px, py = x*2, y
		}
	}

	color := shouldUseColor(w, forceColor)
	for y := 0; y < height; y++ {
		var b strings.Builder
		b.WriteString(runewidth.FillLeft(axisLabel(y, height), axisWidth))
		b.WriteString(axisSeparator)
		for x := 0; x < width; x++ {
			var mask uint8
			owner := -1
			for i, l := range layers {
				if m := l.cells[y][x]; m != 0 {
					mask |= m
					if owner < 0 {
						owner = i
					}
				}
			}
			ch := rune(0x2800 + int(mask))
			if color && owner >= 0 {
				b.WriteString(palette[owner%len(palette)] + string(ch) + colorReset)
			} else {
				b.WriteRune(ch)
			}
		}
		lines = append(lines, b.String())
	}
	lines = append(lines, legend(kept, color), "")
	return writeLines(w, lines)
}

// PlotWidthFor computes a plot width that fits within the total available width.
func PlotWidthFor(totalWidth int) int {
	if totalWidth <= 0 {
		return minPlotWidth
	}
	return max(totalWidth-axisWidth-runewidth.StringWidth(axisSeparator), minPlotWidth)
}

func axisLabel(y, height int) string {
	switch {
	case y == 0:
		return "max"
	case y == height-1:
		return "min"
	}
	return ""
}

func legend(series []Series, color bool) string {
	parts := make([]string, 0, len(series))
	for i, s := range series {
		label := fmt.Sprintf("%c %s (%s)", rune(0x2801), s.Name, dashes[i%len(dashes)].name)
		if color {
			label = palette[i%len(palette)] + label + colorReset
		}
		parts = append(parts, label)
	}
	return "Legend: " + strings.Join(parts, "  ")
}

// resample stretches or averages values onto width columns.
func resample(values []float64, width int) []float64 {
	out := make([]float64, width)
	n := len(values)
	switch {
	case n == width:
		copy(out, values)
	case n > width:
		for i := range out {
			start := i * n / width
			end := max((i+1)*n/width, start+1)
			var sum float64
			for _, v := range values[start:end] {
				sum += v
			}
			out[i] = sum / float64(end-start)
		}
	case n == 1 || width == 1:
		for i := range out {
			out[i] = values[0]
		}
	default:
		for i := range out {
			pos := float64(i) * float64(n-1) / float64(width-1)
			idx := int(pos)
			if idx >= n-1 {
				out[i] = values[n-1]
				continue
			}
			frac := pos - float64(idx)
			out[i] = values[idx]*(1-frac) + values[idx+1]*frac
		}
	}
	return out
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return fallbackWidth
	}
	return width
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

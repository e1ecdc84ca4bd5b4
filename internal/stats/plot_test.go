package stats

import (
	"bytes"
	"strings"
	"testing"
)

func TestPlotSeries(t *testing.T) {
	var buf bytes.Buffer
	err := PlotSeries(&buf, "Test Plot", []Series{
		{Name: "A", Values: []float64{1, 2, 3, 2, 1}},
		{Name: "B", Values: []float64{1, 1, 2, 3, 4}},
	}, 10, 4)
	if err != nil {
		t.Fatalf("PlotSeries failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Test Plot", "Scaled per series", "A: min=1.00", "Legend:"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	// title, note, two ranges, four rows, legend
	if len(lines) != 9 {
		t.Fatalf("expected 9 lines, got %d:\n%s", len(lines), out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no color codes for a buffer")
	}
}

func TestPlotSeriesSkipsEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := PlotSeries(&buf, "x", []Series{{Name: "A"}}, 10, 4); err != nil {
		t.Fatalf("PlotSeries failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestPlotWidthFor(t *testing.T) {
	if got := PlotWidthFor(80); got != 80-axisWidth-3 {
		t.Fatalf("unexpected width %d", got)
	}
	if got := PlotWidthFor(0); got != minPlotWidth {
		t.Fatalf("expected min width %d, got %d", minPlotWidth, got)
	}
	if got := PlotWidthFor(5); got != minPlotWidth {
		t.Fatalf("expected min width %d, got %d", minPlotWidth, got)
	}
}

func TestResample(t *testing.T) {
	got := resample([]float64{0, 10}, 3)
	if got[0] != 0 || got[1] != 5 || got[2] != 10 {
		t.Fatalf("unexpected stretch %v", got)
	}
	got = resample([]float64{1, 3, 5, 7}, 2)
	if got[0] != 2 || got[1] != 6 {
		t.Fatalf("unexpected average %v", got)
	}
}

func TestCanvasLineEndpoints(t *testing.T) {
	c := newCanvas(2, 1)
	c.line(0, 0, 3, 3, 1, 1)
	if c.cells[0][0]&0x01 == 0 || c.cells[0][1]&0x80 == 0 {
		t.Fatalf("expected both endpoints set, got %v", c.cells)
	}
}

package tui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func rendered(style lipgloss.Style, text string) string {
	out := ""
	for _, r := range text {
		out += style.Render(string(r))
	}
	return out
}

func texts(cells []textCell) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = c.text
	}
	return out
}

func TestSpellingCellsMarksCyrillic(t *testing.T) {
	got := texts(spellingCells("çay", "Ça"))
	want := []string{correctStyle.Render("ч"), correctStyle.Render("а"), pendingStyle.Render("й")}
	if len(got) != len(want) {
		t.Fatalf("expected %d cells, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("cell %d: got %q want %q", i, got[i], want[i])
		}
	}
}

func TestSpellingCellsMistakes(t *testing.T) {
	got := texts(spellingCells("ev", "ex"))
	if got[0] != correctStyle.Render("е") || got[1] != incorrectStyle.Render("в") {
		t.Fatalf("expected the target letter in red on a mistake, got %q", got)
	}

	got = texts(spellingCells("ev", "evi"))
	if len(got) != 3 || got[2] != incorrectStyle.Render("и") {
		t.Fatalf("expected surplus letter in red, got %q", got)
	}

	got = texts(spellingCells("a b", "axb"))
	if got[1] != incorrectStyle.Render("•") {
		t.Fatalf("expected red dot for a filled-in space, got %q", got[1])
	}
}

func TestSpellingCellsKeepsDottedAndDotlessApart(t *testing.T) {
	got := texts(spellingCells("ıi", "Iİ"))
	if got[0] != correctStyle.Render("ы") || got[1] != correctStyle.Render("и") {
		t.Fatalf("expected Turkish case folding to accept I and İ, got %q", got)
	}
	got = texts(spellingCells("i", "I"))
	if got[0] != incorrectStyle.Render("и") {
		t.Fatalf("expected dotless I to differ from dotted i, got %q", got)
	}
}

func TestWrapCellsBreaksBetweenWords(t *testing.T) {
	got := wrapCells(textCells("ая бю вэ", pendingStyle), 5)
	want := rendered(pendingStyle, "ая бю") + "\n" + rendered(pendingStyle, "вэ")
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}

	got = wrapCells(textCells("аа  бб", pendingStyle), 3)
	want = rendered(pendingStyle, "аа") + "\n" + rendered(pendingStyle, "бб")
	if got != want {
		t.Fatalf("spaces at a break must be dropped, got %q", got)
	}
}

func TestWrapCellsSplitsLongWords(t *testing.T) {
	got := wrapCells(textCells("абвгд", pendingStyle), 2)
	want := rendered(pendingStyle, "аб") + "\n" + rendered(pendingStyle, "вг") + "\n" + rendered(pendingStyle, "д")
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
	if got := wrapCells(textCells("аб вг", pendingStyle), 0); got != rendered(pendingStyle, "аб вг") {
		t.Fatalf("zero width must not wrap, got %q", got)
	}
}

func TestWrapCellsWideGlyphs(t *testing.T) {
	got := wrapCells(textCells("漢字漢", pendingStyle), 4)
	want := rendered(pendingStyle, "漢字") + "\n" + rendered(pendingStyle, "漢")
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

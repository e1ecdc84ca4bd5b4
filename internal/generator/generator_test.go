package generator

import (
	"testing"

	"github.com/verte-zerg/kiril/internal/alphabet"
)

func TestDeckFillsWithReshuffledPool(t *testing.T) {
	g := NewSeeded(1)
	pool := []int{1, 2, 3, 4}
	deck := Deck(g, pool, 7)
	if len(deck) != 7 {
		t.Fatalf("expected 7 cards, got %d", len(deck))
	}
	counts := map[int]int{}
	for _, c := range deck[:4] {
		counts[c]++
	}
	for _, v := range pool {
		if counts[v] != 1 {
			t.Fatalf("first pass must contain each item once: %v", deck)
		}
	}
}

func TestDeckStopsAtTwoCopies(t *testing.T) {
	g := NewSeeded(3)
	pool := []int{1, 2, 3}
	deck := Deck(g, pool, 40)
	if len(deck) != 6 {
		t.Fatalf("expected two copies of the pool, got %d cards", len(deck))
	}
	counts := map[int]int{}
	for _, c := range deck {
		counts[c]++
	}
	for _, v := range pool {
		if counts[v] != 2 {
			t.Fatalf("expected each item twice: %v", deck)
		}
	}
	if got := Deck(g, pool, 2); len(got) != 2 {
		t.Fatalf("expected deck trimmed to size, got %v", got)
	}
}

func TestSampleIsDistinct(t *testing.T) {
	g := NewSeeded(7)
	items := []string{"a", "b", "c", "d", "e", "f"}
	got := Sample(g, items, 5)
	if len(got) != 5 {
		t.Fatalf("expected 5 items, got %d", len(got))
	}
	seen := map[string]bool{}
	for _, s := range got {
		if seen[s] {
			t.Fatalf("duplicate item %q in %v", s, got)
		}
		seen[s] = true
	}
	if len(Sample(g, items, 10)) != len(items) {
		t.Fatalf("sample larger than input must be clamped")
	}
}

func TestSampleWordsRespectsLevel(t *testing.T) {
	g := NewSeeded(3)
	for _, w := range g.SampleWords(10, 1) {
		if w.Level > 1 {
			t.Fatalf("word %q above max level", w.Turkish)
		}
	}
}

func TestSampleWordsFromCustomPool(t *testing.T) {
	g := NewSeeded(5)
	pool := []alphabet.Word{{Turkish: "kedi", Level: 1}, {Turkish: "köpek", Level: 2}, {Turkish: "kuş", Level: 4}}
	got := g.SampleWordsFrom(pool, 5, 2)
	if len(got) != 2 {
		t.Fatalf("expected the two eligible words, got %v", got)
	}
	for _, w := range got {
		if w.Level > 2 {
			t.Fatalf("word %q above max level", w.Turkish)
		}
	}
}

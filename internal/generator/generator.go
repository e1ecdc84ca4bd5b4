// Package generator builds randomized drill content.
package generator

import (
	"math/rand"
	"time"

	"github.com/verte-zerg/kiril/internal/alphabet"
)

// Generator produces shuffled decks and samples.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a deterministic Generator.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Intn returns a uniform int in [0, n).
func (g *Generator) Intn(n int) int {
	return g.rnd.Intn(n)
}

// Float64 returns a uniform float in [0, 1).
func (g *Generator) Float64() float64 {
	return g.rnd.Float64()
}

// Shuffle returns a Fisher-Yates shuffled copy of items.
func Shuffle[T any](g *Generator, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := g.rnd.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Sample picks up to n distinct items.
func Sample[T any](g *Generator, items []T, n int) []T {
	shuffled := Shuffle(g, items)
	if n > len(shuffled) {
		n = len(shuffled)
	}
	if n < 0 {
		n = 0
	}
	return shuffled[:n]
}

// DeckCopies is the most shuffled copies of a pool one deck may hold.
const DeckCopies = 2

// Deck builds a deck of up to size cards from pool. A short pool is topped
// up with one more reshuffled copy, so a deck holds at most
// min(size, DeckCopies*len(pool)) cards.
func Deck[T any](g *Generator, pool []T, size int) []T {
	if len(pool) == 0 || size <= 0 {
		return nil
	}
	deck := make([]T, 0, DeckCopies*len(pool))
	for copies := 0; copies < DeckCopies && len(deck) < size; copies++ {
		deck = append(deck, Shuffle(g, pool)...)
	}
	return deck[:min(size, len(deck))]
}

// SampleWords selects count words at or below maxLevel.
func (g *Generator) SampleWords(count, maxLevel int) []alphabet.Word {
	return Sample(g, alphabet.WordsUpTo(maxLevel), count)
}

// SampleWordsFrom is SampleWords over a caller supplied list.
func (g *Generator) SampleWordsFrom(pool []alphabet.Word, count, maxLevel int) []alphabet.Word {
	return Sample(g, alphabet.FilterLevel(pool, maxLevel), count)
}

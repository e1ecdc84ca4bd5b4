package arcade

import (
	"time"

	"github.com/verte-zerg/kiril/internal/alphabet"
	"github.com/verte-zerg/kiril/internal/clock"
	"github.com/verte-zerg/kiril/internal/generator"
	"github.com/verte-zerg/kiril/internal/model"
)

const (
	DefaultBlitzSeconds = 60
	DefaultBlitzDeck    = 40
	// FeedbackDelay is how long an answered card stays on screen.
	FeedbackDelay = 300 * time.Millisecond

	comboBonus = 2
	maxBonus   = 100
)

// Mark is the grading state of a card.
type Mark int

const (
	MarkPending Mark = iota
	MarkCorrect
	MarkIncorrect
)

// Card is one deck entry.
type Card struct {
	Glyph  string
	Answer string
	Mark   Mark
}

// Mistake records a wrong answer.
type Mistake struct {
	Glyph    string
	Expected string
	Actual   string
}

// BlitzConfig configures a Blitz session.
type BlitzConfig struct {
	Pool       []alphabet.MappingPair
	Seconds    int
	DeckSize   int
	Rand       *generator.Generator
	OnPractice func(isCorrect bool)
}

// Blitz is the timed reflex quiz: one card at a time, one keystroke per
// card, scored with a growing combo.
type Blitz struct {
	pool       []alphabet.MappingPair
	seconds    int
	deckSize   int
	rnd        *generator.Generator
	onPractice func(bool)

	status   Status
	deck     []Card
	active   int
	timeLeft int
	score    int
	combo    int
	answered int
	correct  int
	bonus    int
	mistakes []Mistake
	started  time.Time
	ended    time.Time

	countdown clock.Guard
	feedback  clock.Guard
}

// NewBlitz creates a session in the ready state.
func NewBlitz(cfg BlitzConfig) *Blitz {
	b := &Blitz{
		pool:       cfg.Pool,
		seconds:    cfg.Seconds,
		deckSize:   cfg.DeckSize,
		rnd:        cfg.Rand,
		onPractice: cfg.OnPractice,
	}
	if len(b.pool) == 0 {
		b.pool = alphabet.LetterMapping()
	}
	if b.seconds <= 0 {
		b.seconds = DefaultBlitzSeconds
	}
	if b.deckSize <= 0 {
		b.deckSize = DefaultBlitzDeck
	}
	if b.rnd == nil {
		b.rnd = generator.New()
	}
	if b.onPractice == nil {
		b.onPractice = func(bool) {}
	}
	b.timeLeft = b.seconds
	return b
}

// Start deals a fresh deck and returns the countdown token. The host
// delivers one Second call per elapsed second with that token.
func (b *Blitz) Start(now time.Time) clock.Token {
	b.feedback.Cancel()
	pairs := generator.Deck(b.rnd, b.pool, b.deckSize)
	b.deck = make([]Card, 0, len(pairs))
	for _, p := range pairs {
		b.deck = append(b.deck, Card{Glyph: p.Glyph(), Answer: p.Answer()})
	}
	b.status = StatusPlaying
	b.active = 0
	b.timeLeft = b.seconds
	b.score = 0
	b.combo = 0
	b.answered = 0
	b.correct = 0
	b.bonus = 0
	b.mistakes = nil
	b.started = now
	b.ended = time.Time{}
	return b.countdown.Arm()
}

// Second consumes one countdown tick and reports whether the countdown
// continues. Stale tokens are ignored.
func (b *Blitz) Second(tok clock.Token, now time.Time) bool {
	if !b.countdown.Valid(tok) || b.status != StatusPlaying {
		return false
	}
	b.timeLeft--
	if b.timeLeft <= 0 {
		b.timeLeft = 0
		b.finish(now)
		return false
	}
	return true
}

// Press grades one keystroke against the active card. While the previous
// answer is still showing, input is ignored. On success it returns the
// token the host must hand back to Next after FeedbackDelay.
func (b *Blitz) Press(ch rune) (clock.Token, bool) {
	if b.status != StatusPlaying || b.feedback.Armed() || b.active >= len(b.deck) {
		return 0, false
	}
	card := &b.deck[b.active]
	input := alphabet.Lower(string(ch))
	if input == card.Answer {
		b.score += hitScore + b.combo*comboBonus
		b.combo++
		b.correct++
		card.Mark = MarkCorrect
		b.onPractice(true)
	} else {
		b.combo = 0
		card.Mark = MarkIncorrect
		b.mistakes = append(b.mistakes, Mistake{Glyph: card.Glyph, Expected: card.Answer, Actual: input})
		b.onPractice(false)
	}
	b.answered++
	return b.feedback.Arm(), true
}

// Next moves past the answered card once the feedback delay elapsed.
func (b *Blitz) Next(tok clock.Token, now time.Time) {
	if !b.feedback.Valid(tok) {
		return
	}
	b.feedback.Cancel()
	if b.active < len(b.deck)-1 {
		b.active++
		return
	}
	if b.correct > 0 {
		b.bonus = b.rnd.Intn(maxBonus + 1)
		b.score += b.bonus
	}
	b.finish(now)
}

// Stop abandons the session and cancels its timers.
func (b *Blitz) Stop(now time.Time) {
	if b.status == StatusPlaying {
		b.finish(now)
	}
	b.countdown.Cancel()
	b.feedback.Cancel()
}

func (b *Blitz) finish(now time.Time) {
	b.status = StatusOver
	b.ended = now
	b.countdown.Cancel()
	b.feedback.Cancel()
}

func (b *Blitz) Status() Status {
	return b.status
}

// Card returns the active card.
func (b *Blitz) Card() (Card, bool) {
	if b.active >= len(b.deck) {
		return Card{}, false
	}
	return b.deck[b.active], true
}

// Deck returns a copy of the dealt cards.
func (b *Blitz) Deck() []Card {
	return append([]Card(nil), b.deck...)
}

func (b *Blitz) Position() int {
	return b.active
}

func (b *Blitz) TimeLeft() int {
	return b.timeLeft
}

func (b *Blitz) Score() int {
	return b.score
}

func (b *Blitz) Combo() int {
	return b.combo
}

func (b *Blitz) Bonus() int {
	return b.bonus
}

func (b *Blitz) Answered() int {
	return b.answered
}

func (b *Blitz) Correct() int {
	return b.correct
}

// Mistakes returns the wrong answers in order.
func (b *Blitz) Mistakes() []Mistake {
	return append([]Mistake(nil), b.mistakes...)
}

// ShowingFeedback reports whether the last answer is still on screen.
func (b *Blitz) ShowingFeedback() bool {
	return b.feedback.Armed()
}

// Accuracy returns the percentage of correct answers, rounded.
func (b *Blitz) Accuracy() int {
	if b.answered == 0 {
		return 0
	}
	return (b.correct*200 + b.answered) / (b.answered * 2)
}

// Result summarizes the session for storage.
func (b *Blitz) Result() model.GameResult {
	return model.GameResult{
		Game:      model.GameBlitz,
		Score:     b.score,
		Hits:      b.correct,
		Misses:    len(b.mistakes),
		StartedAt: b.started,
		EndedAt:   b.ended,
	}
}

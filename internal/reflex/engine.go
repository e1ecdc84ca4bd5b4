// Package reflex drives two-stage letter acquisition: a timed exposure
// (coding) followed by active recall (locking) over a bounded working set.
package reflex

import (
	"errors"
	"strings"
	"time"

	"github.com/verte-zerg/kiril/internal/alphabet"
	"github.com/verte-zerg/kiril/internal/clock"
	"github.com/verte-zerg/kiril/internal/model"
)

// WindowSize bounds the number of unlocked letters presented at once.
const WindowSize = 6

const (
	DefaultDwell      = 5 * time.Second
	DefaultLockStreak = 3
)

var (
	ErrDwellPending = errors.New("reflex: dwell time has not elapsed")
	ErrWrongStage   = errors.New("reflex: operation not allowed in current stage")
	ErrNoLetter     = errors.New("reflex: no letter available")
)

// Stage is the session-local acquisition stage.
type Stage int

const (
	StageCoding Stage = iota
	StageLocking
	StageCompleted
)

func (s Stage) String() string {
	switch s {
	case StageCoding:
		return "coding"
	case StageLocking:
		return "locking"
	case StageCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// StatusStore is the subset of the progress store the engine needs.
type StatusStore interface {
	ReflexStatus(id string) model.ReflexStatus
	UpdateReflexStatus(id string, patch model.ReflexPatch)
	ResetReflexProgress()
}

// Options tunes the engine; zero fields take defaults.
type Options struct {
	Letters    []alphabet.LetterPair
	Dwell      time.Duration
	LockStreak int
	Clock      clock.Clock
	// OnPractice receives one outcome per graded submission.
	OnPractice func(isCorrect bool)
}

// Result describes the outcome of a Submit call.
type Result struct {
	Letter  alphabet.LetterPair
	Correct bool
	Streak  int
	Locked  bool
	Stage   Stage
}

// Engine is the acquisition state machine. It is not safe for concurrent
// use; the TUI drives it from its update loop.
type Engine struct {
	store      StatusStore
	letters    []alphabet.LetterPair
	dwell      time.Duration
	lockStreak int
	clock      clock.Clock
	onPractice func(bool)

	index    int
	stage    Stage
	streak   int
	deadline time.Time
	guard    clock.Guard
}

// New creates an engine positioned on the first letter of the window.
func New(store StatusStore, opts Options) *Engine {
	e := &Engine{
		store:      store,
		letters:    opts.Letters,
		dwell:      opts.Dwell,
		lockStreak: opts.LockStreak,
		clock:      opts.Clock,
		onPractice: opts.OnPractice,
	}
	if e.letters == nil {
		e.letters = alphabet.Letters()
	}
	if e.dwell <= 0 {
		e.dwell = DefaultDwell
	}
	if e.lockStreak <= 0 {
		e.lockStreak = DefaultLockStreak
	}
	if e.clock == nil {
		e.clock = clock.Real{}
	}
	if e.onPractice == nil {
		e.onPractice = func(bool) {}
	}
	e.enterCoding()
	return e
}

// Window returns the first WindowSize letters that are not locked.
func (e *Engine) Window() []alphabet.LetterPair {
	out := make([]alphabet.LetterPair, 0, WindowSize)
	for _, l := range e.letters {
		if e.store.ReflexStatus(l.ID()).Locked {
			continue
		}
		out = append(out, l)
		if len(out) == WindowSize {
			break
		}
	}
	return out
}

// LockedCount returns how many letters are locked.
func (e *Engine) LockedCount() int {
	n := 0
	for _, l := range e.letters {
		if e.store.ReflexStatus(l.ID()).Locked {
			n++
		}
	}
	return n
}

// Total returns the number of letters taught.
func (e *Engine) Total() int {
	return len(e.letters)
}

// AllLocked reports whether every letter is locked.
func (e *Engine) AllLocked() bool {
	return e.LockedCount() == len(e.letters)
}

// Stage returns the current stage.
func (e *Engine) Stage() Stage {
	return e.stage
}

// Index returns the position of the current letter in the window.
func (e *Engine) Index() int {
	e.clamp(len(e.Window()))
	return e.index
}

// Streak returns the local locking streak.
func (e *Engine) Streak() int {
	return e.streak
}

// LockStreak returns the number of consecutive answers needed to lock.
func (e *Engine) LockStreak() int {
	return e.lockStreak
}

// Current returns the letter being taught.
func (e *Engine) Current() (alphabet.LetterPair, bool) {
	window := e.Window()
	e.clamp(len(window))
	if len(window) == 0 {
		return alphabet.LetterPair{}, false
	}
	return window[e.index], true
}

// Status returns the persisted status of the current letter.
func (e *Engine) Status() model.ReflexStatus {
	cur, ok := e.Current()
	if !ok {
		return model.ReflexStatus{}
	}
	return e.store.ReflexStatus(cur.ID())
}

// DwellRemaining returns the time left before the coding stage may advance.
func (e *Engine) DwellRemaining() time.Duration {
	if e.stage != StageCoding {
		return 0
	}
	left := e.deadline.Sub(e.clock.Now())
	if left < 0 {
		return 0
	}
	return left
}

// CanAdvance reports whether Advance would succeed.
func (e *Engine) CanAdvance() bool {
	if e.stage != StageCoding {
		return false
	}
	if _, ok := e.Current(); !ok {
		return false
	}
	return e.DwellRemaining() == 0
}

// DwellToken identifies the running dwell countdown. Ticks carrying any
// other token belong to an abandoned countdown.
func (e *Engine) DwellToken() clock.Token {
	return e.guard.Current()
}

// DwellValid reports whether tok belongs to the running dwell countdown.
func (e *Engine) DwellValid(tok clock.Token) bool {
	return e.guard.Valid(tok)
}

// Advance moves the current letter from coding to locking.
func (e *Engine) Advance() error {
	if e.stage != StageCoding {
		return ErrWrongStage
	}
	cur, ok := e.Current()
	if !ok {
		return ErrNoLetter
	}
	if e.DwellRemaining() > 0 {
		return ErrDwellPending
	}
	e.guard.Cancel()
	e.store.UpdateReflexStatus(cur.ID(), model.ReflexPatch{Coded: ptr(true)})
	e.stage = StageLocking
	e.streak = 0
	return nil
}

// Submit grades one answer in the locking stage.
func (e *Engine) Submit(answer string) (Result, error) {
	if e.stage != StageLocking {
		return Result{}, ErrWrongStage
	}
	window := e.Window()
	e.clamp(len(window))
	if len(window) == 0 {
		return Result{}, ErrNoLetter
	}
	cur := window[e.index]

	correct := alphabet.EqualFold(strings.TrimSpace(answer), cur.Turkish)
	e.onPractice(correct)
	if !correct {
		e.streak = 0
		e.enterCoding()
		return Result{Letter: cur, Stage: e.stage}, nil
	}

	e.streak++
	res := Result{Letter: cur, Correct: true, Streak: e.streak}
	if e.streak < e.lockStreak {
		res.Stage = e.stage
		return res, nil
	}

	wasLast := e.index >= len(window)-1
	e.store.UpdateReflexStatus(cur.ID(), model.ReflexPatch{Coded: ptr(true), Locked: ptr(true)})
	res.Locked = true
	e.streak = 0

	// The locked letter leaves the window, so the following letter now
	// occupies the current index.
	next := e.Window()
	switch {
	case len(next) == 0:
		e.complete()
	case wasLast:
		e.index = 0
		e.enterCoding()
	default:
		e.clamp(len(next))
		e.enterCoding()
	}
	res.Stage = e.stage
	return res, nil
}

// Continue leaves the completed screen and restarts at the window start.
func (e *Engine) Continue() error {
	if e.stage != StageCompleted {
		return ErrWrongStage
	}
	if len(e.Window()) == 0 {
		return ErrNoLetter
	}
	e.index = 0
	e.enterCoding()
	return nil
}

// Reset clears all letter statuses and restarts the session.
func (e *Engine) Reset() {
	e.store.ResetReflexProgress()
	e.index = 0
	e.enterCoding()
}

// Stop cancels the dwell countdown.
func (e *Engine) Stop() {
	e.guard.Cancel()
}

func (e *Engine) enterCoding() {
	e.streak = 0
	if len(e.Window()) == 0 {
		e.complete()
		return
	}
	e.stage = StageCoding
	e.deadline = e.clock.Now().Add(e.dwell)
	e.guard.Arm()
}

func (e *Engine) complete() {
	e.index = 0
	e.stage = StageCompleted
	e.guard.Cancel()
}

func (e *Engine) clamp(n int) {
	if e.index >= n {
		e.index = n - 1
	}
	if e.index < 0 {
		e.index = 0
	}
}

func ptr(v bool) *bool {
	return &v
}

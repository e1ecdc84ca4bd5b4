package reflex

import (
	"errors"
	"testing"
	"time"

	"github.com/verte-zerg/kiril/internal/alphabet"
	"github.com/verte-zerg/kiril/internal/clock"
	"github.com/verte-zerg/kiril/internal/model"
)

type memStatus struct {
	statuses map[string]model.ReflexStatus
	resets   int
}

func newMemStatus() *memStatus {
	return &memStatus{statuses: map[string]model.ReflexStatus{}}
}

func (m *memStatus) ReflexStatus(id string) model.ReflexStatus {
	return m.statuses[id]
}

func (m *memStatus) UpdateReflexStatus(id string, patch model.ReflexPatch) {
	st := m.statuses[id]
	if patch.Coded != nil && *patch.Coded {
		st.Coded = true
	}
	if patch.Locked != nil && *patch.Locked {
		st.Locked = true
		st.Coded = true
	}
	m.statuses[id] = st
}

func (m *memStatus) ResetReflexProgress() {
	m.statuses = map[string]model.ReflexStatus{}
	m.resets++
}

type harness struct {
	engine   *Engine
	store    *memStatus
	clock    *clock.Manual
	outcomes []bool
}

func newHarness(t *testing.T, letters []alphabet.LetterPair) *harness {
	t.Helper()
	h := &harness{
		store: newMemStatus(),
		clock: clock.NewManual(time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)),
	}
	h.engine = New(h.store, Options{
		Letters:    letters,
		Clock:      h.clock,
		OnPractice: func(ok bool) { h.outcomes = append(h.outcomes, ok) },
	})
	return h
}

func (h *harness) advance(t *testing.T) {
	t.Helper()
	h.clock.Advance(DefaultDwell)
	if err := h.engine.Advance(); err != nil {
		t.Fatalf("advance: %v", err)
	}
}

func (h *harness) submit(t *testing.T, answer string) Result {
	t.Helper()
	res, err := h.engine.Submit(answer)
	if err != nil {
		t.Fatalf("submit %q: %v", answer, err)
	}
	return res
}

func (h *harness) lockCurrent(t *testing.T) alphabet.LetterPair {
	t.Helper()
	cur, ok := h.engine.Current()
	if !ok {
		t.Fatalf("expected a current letter")
	}
	h.advance(t)
	for i := 0; i < DefaultLockStreak; i++ {
		h.submit(t, cur.Turkish)
	}
	return cur
}

func TestWindowBoundedBySix(t *testing.T) {
	h := newHarness(t, nil)
	all := alphabet.Letters()

	for locked := 0; locked <= len(all); locked++ {
		want := len(all) - locked
		if want > WindowSize {
			want = WindowSize
		}
		if got := len(h.engine.Window()); got != want {
			t.Fatalf("with %d locked expected window %d, got %d", locked, want, got)
		}
		if locked < len(all) {
			h.store.UpdateReflexStatus(all[locked].ID(), model.ReflexPatch{Locked: ptr(true)})
		}
	}
	if !h.engine.AllLocked() {
		t.Fatalf("expected every letter locked")
	}
}

func TestDwellGatesAdvance(t *testing.T) {
	h := newHarness(t, nil)
	if h.engine.Stage() != StageCoding {
		t.Fatalf("expected coding stage, got %s", h.engine.Stage())
	}
	if h.engine.CanAdvance() {
		t.Fatalf("advance must wait for the dwell")
	}
	if err := h.engine.Advance(); !errors.Is(err, ErrDwellPending) {
		t.Fatalf("expected ErrDwellPending, got %v", err)
	}
	h.clock.Advance(3 * time.Second)
	if got := h.engine.DwellRemaining(); got != 2*time.Second {
		t.Fatalf("expected 2s remaining, got %v", got)
	}
	tok := h.engine.DwellToken()
	if !h.engine.DwellValid(tok) {
		t.Fatalf("dwell token must be live during coding")
	}

	h.clock.Advance(2 * time.Second)
	if err := h.engine.Advance(); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if h.engine.Stage() != StageLocking {
		t.Fatalf("expected locking stage, got %s", h.engine.Stage())
	}
	if h.engine.DwellValid(tok) {
		t.Fatalf("dwell token must be invalid after leaving coding")
	}
	if !h.engine.Status().Coded {
		t.Fatalf("advance must mark the letter coded")
	}
	if err := h.engine.Advance(); !errors.Is(err, ErrWrongStage) {
		t.Fatalf("expected ErrWrongStage, got %v", err)
	}
}

func TestSubmitOutsideLocking(t *testing.T) {
	h := newHarness(t, nil)
	if _, err := h.engine.Submit("A"); !errors.Is(err, ErrWrongStage) {
		t.Fatalf("expected ErrWrongStage, got %v", err)
	}
	if len(h.outcomes) != 0 {
		t.Fatalf("rejected submissions must not be graded")
	}
}

func TestWrongAnswerRestartsCoding(t *testing.T) {
	h := newHarness(t, nil)
	first, _ := h.engine.Current()
	h.advance(t)

	steps := []struct {
		answer string
		stage  Stage
	}{
		{"a", StageLocking},
		{" A ", StageLocking},
		{"B", StageCoding},
	}
	for _, step := range steps {
		res := h.submit(t, step.answer)
		if res.Stage != step.stage {
			t.Fatalf("answer %q: expected stage %s, got %s", step.answer, step.stage, res.Stage)
		}
	}
	if h.engine.Streak() != 0 {
		t.Fatalf("wrong answer must reset the streak")
	}
	cur, _ := h.engine.Current()
	if cur.ID() != first.ID() {
		t.Fatalf("wrong answer must re-teach %s, got %s", first.ID(), cur.ID())
	}
	if h.engine.CanAdvance() {
		t.Fatalf("re-teaching must start a fresh dwell")
	}

	h.advance(t)
	for i := 0; i < 3; i++ {
		res := h.submit(t, "A")
		if res.Locked != (i == 2) {
			t.Fatalf("submission %d: unexpected locked=%v", i, res.Locked)
		}
	}
	if !h.store.ReflexStatus(first.ID()).Locked {
		t.Fatalf("expected %s locked after six submissions", first.ID())
	}
	want := []bool{true, true, false, true, true, true}
	if len(h.outcomes) != len(want) {
		t.Fatalf("expected %d practice outcomes, got %d", len(want), len(h.outcomes))
	}
	for i := range want {
		if h.outcomes[i] != want[i] {
			t.Fatalf("outcome %d: expected %v, got %v", i, want[i], h.outcomes[i])
		}
	}
}

func TestLockMovesToFollowingLetter(t *testing.T) {
	h := newHarness(t, nil)
	all := alphabet.Letters()

	locked := h.lockCurrent(t)
	if locked.ID() != all[0].ID() {
		t.Fatalf("expected to lock %s first, got %s", all[0].ID(), locked.ID())
	}
	cur, _ := h.engine.Current()
	if cur.ID() != all[1].ID() {
		t.Fatalf("expected next letter %s, got %s", all[1].ID(), cur.ID())
	}
	if h.engine.Stage() != StageCoding {
		t.Fatalf("expected coding stage for the next letter")
	}
	window := h.engine.Window()
	if window[len(window)-1].ID() != all[WindowSize].ID() {
		t.Fatalf("expected %s to enter the window", all[WindowSize].ID())
	}
}

func TestTurkishDottedAnswer(t *testing.T) {
	letters := []alphabet.LetterPair{}
	for _, id := range []string{"И", "Ы"} {
		l, ok := alphabet.Lookup(id)
		if !ok {
			t.Fatalf("missing letter %s", id)
		}
		letters = append(letters, l)
	}
	h := newHarness(t, letters)
	h.advance(t)
	if res := h.submit(t, "i"); !res.Correct {
		t.Fatalf("expected i to match İ")
	}
	if res := h.submit(t, "ı"); res.Correct {
		t.Fatalf("expected dotless ı to be rejected for İ")
	}
}

func TestLastLetterRestartsAndCompletes(t *testing.T) {
	letters := alphabet.Letters()[:3]
	h := newHarness(t, letters)

	// Start on the last slot of the window.
	h.engine.index = 2
	h.lockCurrent(t)
	if h.engine.Index() != 0 || h.engine.Stage() != StageCoding {
		t.Fatalf("expected restart at index 0, got %d %s", h.engine.Index(), h.engine.Stage())
	}

	h.lockCurrent(t)
	h.lockCurrent(t)
	if h.engine.Stage() != StageCompleted {
		t.Fatalf("expected completed stage, got %s", h.engine.Stage())
	}
	if !h.engine.AllLocked() {
		t.Fatalf("expected all letters locked")
	}
	if err := h.engine.Continue(); !errors.Is(err, ErrNoLetter) {
		t.Fatalf("expected ErrNoLetter when nothing is left, got %v", err)
	}
	if h.engine.DwellToken() != 0 {
		t.Fatalf("completed stage must not keep a dwell running")
	}

	h.engine.Reset()
	if h.store.resets != 1 || h.engine.Stage() != StageCoding || h.engine.LockedCount() != 0 {
		t.Fatalf("reset must clear statuses and restart coding")
	}
}

func TestContinueAfterCompleted(t *testing.T) {
	h := newHarness(t, alphabet.Letters()[:2])
	h.engine.complete()
	if err := h.engine.Continue(); err != nil {
		t.Fatalf("continue: %v", err)
	}
	if h.engine.Stage() != StageCoding || h.engine.Index() != 0 {
		t.Fatalf("continue must restart coding at index 0")
	}
	if err := h.engine.Continue(); !errors.Is(err, ErrWrongStage) {
		t.Fatalf("expected ErrWrongStage, got %v", err)
	}
}

func TestIndexClampedWhenWindowShrinks(t *testing.T) {
	h := newHarness(t, alphabet.Letters()[:4])
	h.engine.index = 3
	for _, l := range alphabet.Letters()[:3] {
		h.store.UpdateReflexStatus(l.ID(), model.ReflexPatch{Locked: ptr(true)})
	}
	cur, ok := h.engine.Current()
	if !ok || cur.ID() != alphabet.Letters()[3].ID() {
		t.Fatalf("expected clamp to the only remaining letter, got %v %v", cur.ID(), ok)
	}
	if h.engine.Index() != 0 {
		t.Fatalf("expected index clamped to 0, got %d", h.engine.Index())
	}
}

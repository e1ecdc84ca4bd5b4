package clock

import (
	"testing"
	"time"
)

func TestGuardRejectsStaleTokens(t *testing.T) {
	var g Guard
	if g.Valid(0) {
		t.Fatalf("zero token must never be valid")
	}
	first := g.Arm()
	if !g.Valid(first) {
		t.Fatalf("freshly armed token must be valid")
	}
	second := g.Arm()
	if g.Valid(first) {
		t.Fatalf("re-arming must invalidate the previous token")
	}
	g.Cancel()
	g.Cancel()
	if g.Valid(second) {
		t.Fatalf("cancelled token must be invalid")
	}
	if g.Current() != 0 || g.Armed() {
		t.Fatalf("cancelled guard must report no live token")
	}
	third := g.Arm()
	if third == second || !g.Valid(third) {
		t.Fatalf("re-armed guard must issue a new valid token")
	}
}

func TestManualClock(t *testing.T) {
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	c := NewManual(start)
	c.Advance(90 * time.Second)
	if got := c.Now().Sub(start); got != 90*time.Second {
		t.Fatalf("expected 90s advance, got %v", got)
	}
	c.Set(start)
	if !c.Now().Equal(start) {
		t.Fatalf("expected clock reset to start")
	}
}

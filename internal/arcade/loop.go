// Package arcade implements the real-time letter games.
package arcade

import (
	"time"

	"github.com/verte-zerg/kiril/internal/clock"
)

// FrameInterval is the nominal frame period; movement is normalized to it.
const FrameInterval = 16 * time.Millisecond

// Loop schedules frames for one game run. Every run gets a token; a frame
// carrying a token from an earlier or stopped run is rejected and must not
// be rescheduled.
type Loop struct {
	guard clock.Guard
	last  time.Time
}

// Start begins a run at now and returns its token.
func (l *Loop) Start(now time.Time) clock.Token {
	l.last = now
	return l.guard.Arm()
}

// Stop ends the current run. Calling it twice is harmless.
func (l *Loop) Stop() {
	l.guard.Cancel()
}

// Running reports whether a run is live.
func (l *Loop) Running() bool {
	return l.guard.Armed()
}

// Token returns the live run token, or zero when stopped.
func (l *Loop) Token() clock.Token {
	return l.guard.Current()
}

// Step accepts a frame for tok at now and returns the time elapsed since
// the previous frame.
func (l *Loop) Step(tok clock.Token, now time.Time) (time.Duration, bool) {
	if !l.guard.Valid(tok) {
		return 0, false
	}
	dt := now.Sub(l.last)
	if dt < 0 {
		dt = 0
	}
	l.last = now
	return dt, true
}

// frames converts dt into 16 ms frame units.
func frames(dt time.Duration) float64 {
	return float64(dt) / float64(FrameInterval)
}

package clock

// Token identifies one armed timer or loop run.
type Token uint64

// Guard hands out tokens and invalidates them on Cancel. A timer message
// carrying a token is acted upon only while Valid reports true for it.
// The zero value is ready to use; the zero Token is never valid.
type Guard struct {
	current Token
	armed   bool
}

// Arm invalidates any previous token and returns a fresh one.
func (g *Guard) Arm() Token {
	g.current++
	g.armed = true
	return g.current
}

// Cancel invalidates the current token. Calling it twice is harmless.
func (g *Guard) Cancel() {
	if !g.armed {
		return
	}
	g.armed = false
	g.current++
}

// Valid reports whether tok is the live token.
func (g *Guard) Valid(tok Token) bool {
	return g.armed && tok != 0 && tok == g.current
}

// Armed reports whether a token is live.
func (g *Guard) Armed() bool {
	return g.armed
}

// Current returns the live token, or zero when cancelled.
func (g *Guard) Current() Token {
	if !g.armed {
		return 0
	}
	return g.current
}

package progress

// Foreground time accounting. The host calls Tick once per second; seconds
// accrue only while the terminal has focus and are written in batches.

// Tick accounts one second of activity.
func (s *Store) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || !s.foreground {
		return
	}
	s.pending++
	if s.pending >= FlushEvery {
		s.flushLocked()
	}
}

// SetForeground records focus changes; losing focus flushes pending time.
func (s *Store) SetForeground(foreground bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.foreground = foreground
	if !foreground {
		s.flushLocked()
	}
}

// Foreground reports whether time is currently accruing.
func (s *Store) Foreground() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.foreground && !s.closed
}

// PendingSeconds returns the unflushed foreground seconds.
func (s *Store) PendingSeconds() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Flush writes pending foreground time immediately.
func (s *Store) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flushLocked()
}

// Close flushes pending time and stops further accrual.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.flushLocked()
	s.closed = true
}

func (s *Store) flushLocked() {
	if s.pending == 0 {
		return
	}
	elapsed := s.pending
	s.pending = 0
	today := dateOf(s.clock.Now())
	s.record.TodayTime += elapsed
	s.record.TotalTime += elapsed
	s.record.History = upsertHistory(s.record.History, today, 0, 0, elapsed)
	s.save()
}

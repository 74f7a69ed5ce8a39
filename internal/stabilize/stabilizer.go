// Package stabilize converts a noisy per-frame category signal into a
// stable value via majority voting over a sliding window plus a
// hold-time/debounce state machine.
package stabilize

import "time"

// Config holds the timing knobs of a Stabilizer.
type Config struct {
	// HistoryLength is the size of the majority-vote window, in frames.
	HistoryLength int `mapstructure:"history_length"`
	// HoldTime is how long a candidate must stay the majority before the
	// stable value switches to it.
	HoldTime time.Duration `mapstructure:"hold_time"`
	// Debounce is the minimum spacing between two committed switches.
	Debounce time.Duration `mapstructure:"debounce"`
}

// DefaultConfig returns the stock timing: a 10-frame window, 300ms hold,
// 500ms debounce.
func DefaultConfig() Config {
	return Config{
		HistoryLength: 10,
		HoldTime:      300 * time.Millisecond,
		Debounce:      500 * time.Millisecond,
	}
}

// Stabilizer smooths one classifier's output. Each instance owns its history
// and must be confined to a single logical owner; nothing here is
// synchronized.
type Stabilizer[T comparable] struct {
	cfg Config
	def T

	history []T

	current    T
	pending    T
	hasPending bool
	holdStart  time.Time
	lastSwitch time.Time

	now func() time.Time
}

// New creates a Stabilizer that emits def until sustained evidence for
// another category accumulates.
func New[T comparable](def T, cfg Config) *Stabilizer[T] {
	if cfg.HistoryLength <= 0 {
		cfg.HistoryLength = DefaultConfig().HistoryLength
	}
	return &Stabilizer[T]{
		cfg:     cfg,
		def:     def,
		current: def,
		history: make([]T, 0, cfg.HistoryLength),
		now:     time.Now,
	}
}

// SetClock replaces the time source. Tests use this to drive the hold and
// debounce timers deterministically.
func (s *Stabilizer[T]) SetClock(now func() time.Time) {
	s.now = now
}

// Observe feeds one frame's raw classification and returns the stable
// category paired with the raw per-frame confidence. The confidence is
// deliberately not tied to the stable category: it reflects instantaneous
// detection strength even while the displayed category lags.
func (s *Stabilizer[T]) Observe(raw T, confidence float64) (T, float64) {
	if len(s.history) >= s.cfg.HistoryLength {
		s.history = s.history[1:]
	}
	s.history = append(s.history, raw)

	now := s.now()
	smoothed := s.smoothed()

	switch {
	case smoothed == s.current:
		// The vote agrees with the stable value; cancel any in-flight
		// switch attempt.
		s.hasPending = false

	case !s.hasPending || smoothed != s.pending:
		// New candidate: restart the hold timer. A flapping signal keeps
		// landing here and never accumulates hold time.
		s.pending = smoothed
		s.hasPending = true
		s.holdStart = now

	default:
		if now.Sub(s.holdStart) >= s.cfg.HoldTime && now.Sub(s.lastSwitch) >= s.cfg.Debounce {
			s.current = smoothed
			s.lastSwitch = now
			s.hasPending = false
		}
	}

	return s.current, confidence
}

// smoothed returns the window's majority value. On a tied count the current
// stable category wins if it is among the tied values (bias toward
// stability); otherwise the tied value whose first occurrence in the window
// is earliest wins. Both halves are deterministic for a given window.
func (s *Stabilizer[T]) smoothed() T {
	counts := make(map[T]int, len(s.history))
	for _, v := range s.history {
		counts[v]++
	}

	best := s.history[0]
	bestCount := 0
	bestIsCurrent := false
	for _, v := range s.history {
		c := counts[v]
		isCurrent := v == s.current
		switch {
		case c > bestCount:
			best, bestCount, bestIsCurrent = v, c, isCurrent
		case c == bestCount && isCurrent && !bestIsCurrent:
			best, bestIsCurrent = v, true
		}
	}
	return best
}

// Current returns the stable category without feeding a frame.
func (s *Stabilizer[T]) Current() T {
	return s.current
}

// Reset clears the history and state machine and returns the stable value
// to the default. Called when a detection session stops or starts.
func (s *Stabilizer[T]) Reset() {
	s.history = s.history[:0]
	s.current = s.def
	s.hasPending = false
	s.holdStart = time.Time{}
	s.lastSwitch = time.Time{}
}

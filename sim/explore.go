package sim

// ExplorationSchedule produces the current exploration probability for all
// agents: 1.0 during the explore-first window, Epsilon after it. It is an
// explicit value passed into each policy evaluation, not a process-wide
// singleton, so independent simulations never share schedule state.
type ExplorationSchedule struct {
	// ExploreFirst is the simulated time (ticks) during which exploration
	// probability is unconditionally 1.0.
	ExploreFirst int64
	// Epsilon is the steady-state exploration probability after the window.
	Epsilon float64

	over bool
}

// Rate returns the exploration probability at the given simulated time.
// Monotone non-increasing with exactly one transition at ExploreFirst.
// The transition latches: once past the window the schedule never reverts,
// even if a caller supplies a non-monotonic time.
func (s *ExplorationSchedule) Rate(now int64) float64 {
	if s.over || now >= s.ExploreFirst {
		s.over = true
		return s.Epsilon
	}
	return 1.0
}

// Over reports whether the explore-first window has ended. Used only for
// diagnostic counters, never by the learning rule itself.
func (s *ExplorationSchedule) Over() bool {
	return s.over
}

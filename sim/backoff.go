package sim

// BackoffTimer is an agent's self-imposed cool-down: while active, the
// agent declines new associations. The zero value is never active for any
// non-negative check time.
type BackoffTimer struct {
	start    int64
	duration int64
}

// Arm activates the timer, overwriting any previous arming. Durations do
// not stack: re-arming restarts the window. The duration is chosen by the
// caller as the agent's average historical serving duration, giving a
// self-calibrated cool-down rather than a fixed constant.
func (b *BackoffTimer) Arm(start, duration int64) {
	b.start = start
	b.duration = duration
}

// Active reports whether the timer is still running at the given time.
func (b BackoffTimer) Active(now int64) bool {
	return now-b.start < b.duration
}

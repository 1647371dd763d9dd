package sim

import "fmt"

// SimConfig groups the epoch engine parameters. Times are in ticks
// (milliseconds of simulated time).
type SimConfig struct {
	Horizon     int64 // total simulation time
	Step        int64 // decision epoch length (must be > 0)
	StatsPeriod int64 // periodic statistics interval (0 = disabled)
}

// Validate checks engine parameter ranges.
func (c SimConfig) Validate() error {
	if c.Step <= 0 {
		return fmt.Errorf("step must be positive, got %d", c.Step)
	}
	if c.Horizon < 0 {
		return fmt.Errorf("horizon must be non-negative, got %d", c.Horizon)
	}
	if c.StatsPeriod < 0 {
		return fmt.Errorf("stats period must be non-negative, got %d", c.StatsPeriod)
	}
	return nil
}

// PolicyConfig groups association policy selection and the exploration
// schedule, the only externally configurable learning inputs. Supplied
// once at construction time.
type PolicyConfig struct {
	Algo         string  // "macol" (default) or "best-signal"
	ExploreFirst int64   // explore-first window in ticks
	Epsilon      float64 // steady-state exploration probability
}

// Validate checks policy names and parameter ranges.
func (c PolicyConfig) Validate() error {
	if !ValidAlgorithms[c.Algo] {
		return fmt.Errorf("unknown association algorithm %q", c.Algo)
	}
	if c.Epsilon < 0 || c.Epsilon > 1 {
		return fmt.Errorf("epsilon must be in [0,1], got %g", c.Epsilon)
	}
	if c.ExploreFirst < 0 {
		return fmt.Errorf("explore-first must be non-negative, got %d", c.ExploreFirst)
	}
	return nil
}

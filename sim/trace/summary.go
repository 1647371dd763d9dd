package trace

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalDecisions int
	ServeCount     int
	BackoffCount   int
	ExploreCount   int

	TotalDrops      int
	AttributedDrops int

	// Statistics over attributed rewards (interference-free fractions).
	MeanReward   float64
	StddevReward float64
	MedianReward float64

	// Statistics over attributed connection durations, in ticks.
	MeanDuration float64
	P90Duration  float64

	// Agent ID → number of serve decisions.
	ServesPerAgent map[string]int
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		ServesPerAgent: make(map[string]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalDecisions = len(st.Decisions)
	for _, d := range st.Decisions {
		if d.Serve {
			summary.ServeCount++
			summary.ServesPerAgent[d.AgentID]++
		} else {
			summary.BackoffCount++
		}
		if d.Explore {
			summary.ExploreCount++
		}
	}

	summary.TotalDrops = len(st.Drops)
	rewards := make([]float64, 0, len(st.Drops))
	durations := make([]float64, 0, len(st.Drops))
	for _, d := range st.Drops {
		if !d.Attributed {
			continue
		}
		summary.AttributedDrops++
		rewards = append(rewards, d.Reward)
		durations = append(durations, float64(d.Duration))
	}

	if len(rewards) > 0 {
		summary.MeanReward = stat.Mean(rewards, nil)
		summary.StddevReward = stat.StdDev(rewards, nil)
		sort.Float64s(rewards)
		summary.MedianReward = stat.Quantile(0.5, stat.Empirical, rewards, nil)
	}
	if len(durations) > 0 {
		summary.MeanDuration = stat.Mean(durations, nil)
		sort.Float64s(durations)
		summary.P90Duration = stat.Quantile(0.9, stat.Empirical, durations, nil)
	}

	return summary
}

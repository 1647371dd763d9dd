package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarizeNilAndEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0, s.TotalDecisions)
	assert.NotNil(t, s.ServesPerAgent)

	s = Summarize(NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions}, "run"))
	assert.Equal(t, 0, s.TotalDrops)
	assert.Equal(t, 0.0, s.MeanReward)
}

func TestSummarizeCounts(t *testing.T) {
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions}, "run")
	st.RecordDecision(DecisionRecord{AgentID: "bs-0", Serve: true, Explore: true})
	st.RecordDecision(DecisionRecord{AgentID: "bs-0", Serve: true})
	st.RecordDecision(DecisionRecord{AgentID: "bs-1", Serve: false})
	st.RecordDecision(DecisionRecord{AgentID: "bs-1", Serve: true, Explore: true})

	s := Summarize(st)
	assert.Equal(t, 4, s.TotalDecisions)
	assert.Equal(t, 3, s.ServeCount)
	assert.Equal(t, 1, s.BackoffCount)
	assert.Equal(t, 2, s.ExploreCount)
	assert.Equal(t, map[string]int{"bs-0": 2, "bs-1": 1}, s.ServesPerAgent)
}

func TestSummarizeRewardStatistics(t *testing.T) {
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions}, "run")
	st.RecordDrop(DropRecord{Reward: 0.2, Duration: 100, Attributed: true})
	st.RecordDrop(DropRecord{Reward: 0.4, Duration: 200, Attributed: true})
	st.RecordDrop(DropRecord{Reward: 0.9, Duration: 300, Attributed: true})
	st.RecordDrop(DropRecord{Duration: 0}) // unattributed, excluded

	s := Summarize(st)
	assert.Equal(t, 4, s.TotalDrops)
	assert.Equal(t, 3, s.AttributedDrops)
	assert.InDelta(t, 0.5, s.MeanReward, 1e-12)
	assert.InDelta(t, 0.360555, s.StddevReward, 1e-5)
	assert.InDelta(t, 0.4, s.MedianReward, 1e-12)
	assert.InDelta(t, 200, s.MeanDuration, 1e-12)
	assert.InDelta(t, 300, s.P90Duration, 1e-12)
}

package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExplorationSchedule_StepFunction(t *testing.T) {
	s := &ExplorationSchedule{ExploreFirst: 100, Epsilon: 0.05}

	assert.Equal(t, 1.0, s.Rate(0))
	assert.Equal(t, 1.0, s.Rate(50))
	assert.Equal(t, 1.0, s.Rate(99))
	assert.False(t, s.Over())

	assert.Equal(t, 0.05, s.Rate(100), "transition happens exactly at the window end")
	assert.Equal(t, 0.05, s.Rate(101))
	assert.Equal(t, 0.05, s.Rate(1_000_000))
	assert.True(t, s.Over())
}

func TestExplorationSchedule_TransitionLatches(t *testing.T) {
	s := &ExplorationSchedule{ExploreFirst: 100, Epsilon: 0.1}
	assert.Equal(t, 0.1, s.Rate(150))
	// A non-monotonic caller cannot revert the transition.
	assert.Equal(t, 0.1, s.Rate(50))
	assert.Equal(t, 0.1, s.Rate(0))
}

func TestExplorationSchedule_ZeroWindow(t *testing.T) {
	s := &ExplorationSchedule{ExploreFirst: 0, Epsilon: 0.2}
	assert.Equal(t, 0.2, s.Rate(0), "empty window goes straight to epsilon")
}

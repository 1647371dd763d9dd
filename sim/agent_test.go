package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgentAssociateAndDrop(t *testing.T) {
	a := NewAgent("bs-0")
	c := &Client{ID: "veh-1"}
	require.False(t, a.IsServing())
	require.True(t, c.Unclaimed())

	a.Associate(c)
	assert.True(t, a.IsServing())
	assert.True(t, c.ServedBy(a))
	assert.Equal(t, int64(1), a.ConnCount)

	a.AccrueServing(100, true)
	a.AccrueServing(50, false)
	duration, interferenceFree := a.Drop()
	assert.Equal(t, int64(150), duration)
	assert.Equal(t, int64(100), interferenceFree)
	assert.False(t, a.IsServing())
	assert.True(t, c.Unclaimed())
}

func TestAgentAssociateResetsConnectionCounters(t *testing.T) {
	a := NewAgent("bs-0")
	a.Associate(&Client{ID: "veh-1"})
	a.AccrueServing(100, true)
	a.Drop()

	a.Associate(&Client{ID: "veh-2"})
	assert.Equal(t, int64(0), a.ServingDuration)
	assert.Equal(t, int64(0), a.ServingInterferenceFree)
	assert.Equal(t, int64(100), a.TotalDuration, "cumulative counters survive reassociation")
	assert.Equal(t, int64(2), a.ConnCount)
}

func TestAgentAvgServingDuration(t *testing.T) {
	a := NewAgent("bs-0")
	assert.Equal(t, int64(0), a.AvgServingDuration(), "no history yet")

	a.Associate(&Client{ID: "veh-1"})
	a.AccrueServing(100, true)
	a.Drop()
	a.Associate(&Client{ID: "veh-2"})
	a.AccrueServing(40, true)
	a.Drop()

	assert.Equal(t, int64(70), a.AvgServingDuration())
}

func TestAgentStateTransitions(t *testing.T) {
	a := NewAgent("bs-0")
	assert.Equal(t, AgentIdle, a.State(0))

	a.Backoff.Arm(0, 100)
	assert.Equal(t, AgentBackoff, a.State(50))
	assert.Equal(t, AgentIdle, a.State(100))

	c := &Client{ID: "veh-1"}
	a.Backoff.Arm(200, 100)
	a.Associate(c)
	assert.Equal(t, AgentServing, a.State(250), "serving overrides an armed backoff")

	a.Drop()
	assert.Equal(t, AgentBackoff, a.State(250))
}

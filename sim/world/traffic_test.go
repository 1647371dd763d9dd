package world

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrafficSpawnsFullPopulation(t *testing.T) {
	spec := DefaultScenario()
	tr := NewTraffic(spec, rand.New(rand.NewSource(42)))

	assert.Len(t, tr.vehicles, spec.NumVehicles)
	assert.Len(t, tr.Clients(), spec.NumVehicles)

	seen := make(map[string]bool)
	for _, c := range tr.Clients() {
		assert.False(t, seen[c.ID], "client IDs must be unique")
		seen[c.ID] = true
	}
}

func TestTrafficLanesRoundRobin(t *testing.T) {
	spec := DefaultScenario()
	tr := NewTraffic(spec, rand.New(rand.NewSource(42)))
	for i, v := range tr.vehicles {
		assert.Equal(t, spec.Lanes[i%len(spec.Lanes)], v.lane)
	}
}

func TestTrafficCohortStaggeredSpawns(t *testing.T) {
	spec := DefaultScenario() // 5 s stagger, 6 vehicles per cohort
	tr := NewTraffic(spec, rand.New(rand.NewSource(42)))
	for i, v := range tr.vehicles {
		cohort := int64(i / spec.CohortVehicles)
		assert.GreaterOrEqual(t, v.waitDur, cohort*5000, "vehicle %d", i)
		assert.Less(t, v.waitDur, (cohort+1)*5000, "vehicle %d", i)
	}
}

func TestTrafficSpeedsWithinRange(t *testing.T) {
	spec := DefaultScenario()
	tr := NewTraffic(spec, rand.New(rand.NewSource(42)))
	for _, v := range tr.vehicles {
		assert.GreaterOrEqual(t, v.speed, spec.SpeedMinMps)
		assert.LessOrEqual(t, v.speed, spec.SpeedMaxMps)
	}
}

func TestTrafficAdvanceMovesVehicles(t *testing.T) {
	spec := flatSpec() // fixed 10 m/s, eastbound lane, no spawn delay
	tr := NewTraffic(spec, rand.New(rand.NewSource(1)))
	v := tr.vehicles[0]
	require.Equal(t, 0.0, v.x, "eastbound vehicles enter at x=0")

	tr.Advance(1000)
	assert.InDelta(t, 10.0, v.x, 1e-9)
	tr.Advance(500)
	assert.InDelta(t, 15.0, v.x, 1e-9)
}

func TestTrafficAdvanceConsumesSpawnDelay(t *testing.T) {
	spec := flatSpec()
	tr := NewTraffic(spec, rand.New(rand.NewSource(1)))
	v := tr.vehicles[0]
	v.waitDur = 1500

	tr.Advance(1000)
	assert.Equal(t, 0.0, v.x, "waiting vehicles do not move")
	assert.False(t, v.onRoad())

	tr.Advance(1000)
	assert.True(t, v.onRoad())
	tr.Advance(1000)
	assert.InDelta(t, 10.0, v.x, 1e-9)
}

func TestTrafficWestboundEntersAtRoadEnd(t *testing.T) {
	spec := flatSpec()
	spec.Lanes[0].Direction = -1
	tr := NewTraffic(spec, rand.New(rand.NewSource(1)))
	v := tr.vehicles[0]
	require.Equal(t, spec.RoadLengthM, v.x)

	tr.Advance(1000)
	assert.InDelta(t, spec.RoadLengthM-10, v.x, 1e-9)
}

func TestTrafficRespawnRetiresIdentity(t *testing.T) {
	spec := flatSpec()
	tr := NewTraffic(spec, rand.New(rand.NewSource(1)))
	old := tr.vehicles[0]
	oldClient := old.client
	old.x = spec.RoadLengthM - 1 // one second from the end at 10 m/s

	tr.Advance(1000)

	replacement := tr.vehicles[0]
	assert.NotSame(t, old, replacement)
	assert.NotEqual(t, oldClient.ID, replacement.client.ID, "respawns get a fresh identity")
	assert.Equal(t, 0.0, replacement.x)

	_, ok := tr.lookup(oldClient)
	assert.False(t, ok, "the departed client is no longer reachable")
	_, ok = tr.lookup(replacement.client)
	assert.True(t, ok)

	require.Len(t, tr.Clients(), 1)
	assert.Same(t, replacement.client, tr.Clients()[0])
}

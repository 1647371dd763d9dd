package world

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	sim "github.com/macol-sim/macol-sim/sim"
)

// vehicle is one moving receiver. The client is the identity the core
// sees; the rest is mobility state the core never touches.
type vehicle struct {
	client  *sim.Client
	lane    LaneSpec
	x       float64
	speed   float64 // m/s
	waitDur int64   // ticks until the vehicle enters the road
}

// onRoad reports whether the vehicle has finished its spawn delay.
func (v *vehicle) onRoad() bool {
	return v.waitDur <= 0
}

// Traffic owns the vehicle population: spawning with staggered delays,
// movement along lanes, and respawning as a fresh client identity once a
// vehicle leaves the road — matching how a departed receiver never comes
// back, only new ones arrive.
type Traffic struct {
	spec     *ScenarioSpec
	rng      *rand.Rand
	vehicles []*vehicle
	byClient map[*sim.Client]*vehicle
	clients  []*sim.Client // cached roster, rebuilt on membership change
}

// NewTraffic creates the initial vehicle population. Vehicles spawn in
// cohorts: each cohort's entry is delayed by a further stagger window so
// the road fills gradually instead of all at once.
func NewTraffic(spec *ScenarioSpec, rng *rand.Rand) *Traffic {
	t := &Traffic{
		spec:     spec,
		rng:      rng,
		byClient: make(map[*sim.Client]*vehicle),
	}
	staggerTicks := int64(spec.SpawnStaggerS * 1000)
	cohortSize := spec.CohortVehicles
	if cohortSize <= 0 {
		cohortSize = spec.NumVehicles
	}
	for i := 0; i < spec.NumVehicles; i++ {
		cohort := int64(i / cohortSize)
		delay := cohort*staggerTicks + int64(rng.Float64()*float64(staggerTicks))
		lane := spec.Lanes[i%len(spec.Lanes)]
		t.add(t.newVehicle(lane, delay))
	}
	return t
}

// newVehicle spawns at the lane's entry edge with a fresh client identity
// and a uniformly drawn speed.
func (t *Traffic) newVehicle(lane LaneSpec, waitDur int64) *vehicle {
	x := 0.0
	if lane.Direction < 0 {
		x = t.spec.RoadLengthM
	}
	speed := t.spec.SpeedMinMps + t.rng.Float64()*(t.spec.SpeedMaxMps-t.spec.SpeedMinMps)
	return &vehicle{
		client:  &sim.Client{ID: fmt.Sprintf("veh-%s", uuid.NewString()[:8])},
		lane:    lane,
		x:       x,
		speed:   speed,
		waitDur: waitDur,
	}
}

// add registers a vehicle and invalidates the cached roster.
func (t *Traffic) add(v *vehicle) {
	t.vehicles = append(t.vehicles, v)
	t.byClient[v.client] = v
	t.clients = nil
}

// Clients returns the live client roster.
func (t *Traffic) Clients() []*sim.Client {
	if t.clients == nil {
		t.clients = make([]*sim.Client, 0, len(t.vehicles))
		for _, v := range t.vehicles {
			t.clients = append(t.clients, v.client)
		}
	}
	return t.clients
}

// lookup resolves a client back to its vehicle. Returns false for clients
// that have already left the road: their identity is retired, and any
// reachability query about them answers "unreachable".
func (t *Traffic) lookup(c *sim.Client) (*vehicle, bool) {
	v, ok := t.byClient[c]
	return v, ok
}

// Advance moves every vehicle by dt ticks; vehicles that cross the road
// end are replaced in place by a fresh spawn on the same lane.
func (t *Traffic) Advance(dt int64) {
	for i, v := range t.vehicles {
		if !v.onRoad() {
			v.waitDur -= dt
			continue
		}
		v.x += v.speed * float64(v.lane.Direction) * float64(dt) / 1000

		departed := (v.lane.Direction > 0 && v.x > t.spec.RoadLengthM) ||
			(v.lane.Direction < 0 && v.x < 0)
		if departed {
			logrus.Debugf("vehicle %s left the road", v.client.ID)
			delete(t.byClient, v.client)
			replacement := t.newVehicle(v.lane, 0)
			t.vehicles[i] = replacement
			t.byClient[replacement.client] = replacement
			t.clients = nil
		}
	}
}

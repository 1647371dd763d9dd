package world

import (
	"fmt"
	"math"
	"math/rand"

	sim "github.com/macol-sim/macol-sim/sim"
)

// Highway is the propagation and mobility collaborator: directional beams
// with disc coverage over a moving vehicle population. It implements
// sim.Environment.
type Highway struct {
	spec    *ScenarioSpec
	beams   map[string]BeamSpec
	traffic *Traffic
}

// NewHighway builds the world from a validated scenario. The rng drives
// all traffic randomness (spawn delays, speeds, respawns).
func NewHighway(spec *ScenarioSpec, rng *rand.Rand) (*Highway, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	beams := make(map[string]BeamSpec, len(spec.Beams))
	for _, b := range spec.Beams {
		beams[b.ID] = b
	}
	return &Highway{
		spec:    spec,
		beams:   beams,
		traffic: NewTraffic(spec, rng),
	}, nil
}

// Discover returns every on-road client within the agent's beam coverage,
// independent of association state, with a distance-derived quality score.
func (h *Highway) Discover(a *sim.Agent) []sim.Detection {
	beam, ok := h.beams[a.ID]
	if !ok {
		return nil
	}
	var detections []sim.Detection
	for _, v := range h.traffic.vehicles {
		if !v.onRoad() {
			continue
		}
		if q, reachable := h.coverage(beam, v.x, v.lane.Y); reachable {
			detections = append(detections, sim.Detection{Client: v.client, Quality: q})
		}
	}
	return detections
}

// Probe reports whether the pair is still mutually reachable. A client
// whose vehicle already left the road resolves to unreachable, which the
// core models as a drop.
func (h *Highway) Probe(a *sim.Agent, c *sim.Client) bool {
	beam, ok := h.beams[a.ID]
	if !ok {
		return false
	}
	v, ok := h.traffic.lookup(c)
	if !ok || !v.onRoad() {
		return false
	}
	_, reachable := h.coverage(beam, v.x, v.lane.Y)
	return reachable
}

// Clients returns the live client roster.
func (h *Highway) Clients() []*sim.Client {
	return h.traffic.Clients()
}

// Advance moves the vehicle population forward by dt ticks.
func (h *Highway) Advance(_, dt int64) {
	h.traffic.Advance(dt)
}

// coverage tests whether (x, y) lies inside the beam's sector disc and
// returns a quality score that decays linearly with distance. Azimuth is
// measured clockwise from north; the screen y axis grows southward.
func (h *Highway) coverage(b BeamSpec, x, y float64) (quality float64, reachable bool) {
	dx := x - b.X
	dy := y - b.Y
	dist := math.Hypot(dx, dy)
	if dist > h.spec.BeamRadiusM {
		return 0, false
	}
	if h.spec.BeamWidthDeg < 360 {
		bearing := math.Atan2(dx, -dy) * 180 / math.Pi
		diff := angularDiff(bearing, b.AzimuthDeg)
		if diff > h.spec.BeamWidthDeg/2 {
			return 0, false
		}
	}
	return 1 - dist/h.spec.BeamRadiusM, true
}

// angularDiff returns the absolute angular separation in [0, 180].
func angularDiff(a, b float64) float64 {
	diff := math.Mod(a-b, 360)
	if diff < -180 {
		diff += 360
	}
	if diff > 180 {
		diff -= 360
	}
	return math.Abs(diff)
}

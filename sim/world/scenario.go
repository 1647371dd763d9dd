package world

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	sim "github.com/macol-sim/macol-sim/sim"
)

// ScenarioSpec is the top-level scenario configuration: beam sites with
// their neighbor relationships, highway lanes, and traffic parameters.
// Loaded from YAML via LoadScenario(path); DefaultScenario() returns the
// built-in busy-highway layout. Distances are in meters, speeds in m/s.
type ScenarioSpec struct {
	Name         string     `yaml:"name"`
	RoadLengthM  float64    `yaml:"road_length_m"`
	BeamRadiusM  float64    `yaml:"beam_radius_m"`
	BeamWidthDeg float64    `yaml:"beam_width_deg"` // >= 360 means omnidirectional
	Beams        []BeamSpec `yaml:"beams"`
	Lanes        []LaneSpec `yaml:"lanes"`

	NumVehicles    int     `yaml:"num_vehicles"`
	SpeedMinMps    float64 `yaml:"speed_min_mps"`
	SpeedMaxMps    float64 `yaml:"speed_max_mps"`
	SpawnStaggerS  float64 `yaml:"spawn_stagger_s"`  // extra delay window per spawn cohort
	CohortVehicles int     `yaml:"cohort_vehicles"`  // vehicles per spawn cohort
}

// BeamSpec places one directional beam. AzimuthDeg is clockwise from
// north; Neighbors lists the beam IDs whose occupancy forms this beam's
// learning context, in a fixed order.
type BeamSpec struct {
	ID         string   `yaml:"id"`
	X          float64  `yaml:"x"`
	Y          float64  `yaml:"y"`
	AzimuthDeg float64  `yaml:"azimuth_deg"`
	Neighbors  []string `yaml:"neighbors"`
}

// LaneSpec is one highway lane. Direction +1 moves toward increasing x,
// -1 toward decreasing x.
type LaneSpec struct {
	Y         float64 `yaml:"y"`
	Direction int     `yaml:"direction"`
}

// LoadScenario reads and parses a YAML scenario file with strict field
// checking, so a typo in a field name is an error rather than a silently
// ignored setting.
func LoadScenario(path string) (*ScenarioSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	var spec ScenarioSpec
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing scenario file: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario %q: %w", spec.Name, err)
	}
	return &spec, nil
}

// Dump renders the scenario as YAML.
func (s *ScenarioSpec) Dump() ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encoding scenario: %w", err)
	}
	return data, nil
}

// Validate checks structural consistency: unique beam IDs, resolvable
// neighbor references, encodable neighbor counts, sane geometry and
// traffic parameters.
func (s *ScenarioSpec) Validate() error {
	if len(s.Beams) == 0 {
		return fmt.Errorf("no beams defined")
	}
	if len(s.Lanes) == 0 {
		return fmt.Errorf("no lanes defined")
	}
	if s.RoadLengthM <= 0 {
		return fmt.Errorf("road length must be positive, got %g", s.RoadLengthM)
	}
	if s.BeamRadiusM <= 0 {
		return fmt.Errorf("beam radius must be positive, got %g", s.BeamRadiusM)
	}
	if s.NumVehicles <= 0 {
		return fmt.Errorf("num_vehicles must be positive, got %d", s.NumVehicles)
	}
	if s.SpeedMinMps <= 0 || s.SpeedMaxMps < s.SpeedMinMps {
		return fmt.Errorf("speed range [%g, %g] invalid", s.SpeedMinMps, s.SpeedMaxMps)
	}

	ids := make(map[string]bool, len(s.Beams))
	for _, b := range s.Beams {
		if ids[b.ID] {
			return fmt.Errorf("duplicate beam id %q", b.ID)
		}
		ids[b.ID] = true
	}
	for _, b := range s.Beams {
		if len(b.Neighbors) > sim.MaxNeighbors {
			return fmt.Errorf("beam %q has %d neighbors, max %d", b.ID, len(b.Neighbors), sim.MaxNeighbors)
		}
		for _, n := range b.Neighbors {
			if !ids[n] {
				return fmt.Errorf("beam %q references unknown neighbor %q", b.ID, n)
			}
			if n == b.ID {
				return fmt.Errorf("beam %q lists itself as a neighbor", b.ID)
			}
		}
	}
	for i, l := range s.Lanes {
		if l.Direction != 1 && l.Direction != -1 {
			return fmt.Errorf("lane %d direction must be +1 or -1, got %d", i, l.Direction)
		}
	}
	return nil
}

// BuildAgents creates one learning agent per beam and wires the neighbor
// back-references in the order the spec lists them. That order is the
// agent's context-bit ordering for the whole run.
func (s *ScenarioSpec) BuildAgents() ([]*sim.Agent, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	agents := make([]*sim.Agent, 0, len(s.Beams))
	byID := make(map[string]*sim.Agent, len(s.Beams))
	for _, b := range s.Beams {
		a := sim.NewAgent(b.ID)
		agents = append(agents, a)
		byID[b.ID] = a
	}
	for i, b := range s.Beams {
		for _, n := range b.Neighbors {
			agents[i].Neighbors = append(agents[i].Neighbors, byID[n])
		}
	}
	return agents, nil
}

// defaultNeighborIdx is the hand-built neighbor table of the default
// scenario, indexed over the 18 beams in creation order (south sites
// first, three beams per site):
//
//	[9][10][11]  [12][13][14]  [15][16][17]  <- north beams
//	====================================HIGHWAY===========
//	[0][1][2]       [3][4][5]    [6][7][8]   <- south beams
var defaultNeighborIdx = map[int][]int{
	0:  {9, 10, 1},
	1:  {9, 10, 11, 0, 2},
	2:  {10, 11, 12, 1, 3},
	3:  {11, 12, 13, 2, 4},
	4:  {12, 13, 14, 3, 5},
	5:  {13, 14, 15, 4, 6},
	6:  {14, 15, 16, 5, 7},
	7:  {15, 16, 17, 6, 8},
	8:  {16, 17, 7},
	9:  {0, 1, 10},
	10: {0, 1, 2, 9, 11},
	11: {1, 2, 3, 10, 12},
	12: {2, 3, 4, 11, 13},
	13: {3, 4, 5, 12, 14},
	14: {4, 5, 6, 13, 15},
	15: {5, 6, 7, 14, 16},
	16: {6, 7, 8, 15, 17},
	17: {7, 8, 16},
}

// DefaultScenario returns the built-in busy-highway layout: 18 directional
// beams at 6 sites flanking a 480 m stretch of 6-lane highway, 80 m beam
// radius, 60 degree beam width, and 20 vehicles at 50-70 mph.
func DefaultScenario() *ScenarioSpec {
	siteXY := [][2]float64{
		{100, 260}, {220, 260}, {360, 260}, // south sites, beams point north
		{90, 180}, {210, 180}, {340, 180}, // north sites, beams point south
	}
	southAzimuths := []float64{300, 0, 60}
	northAzimuths := []float64{240, 180, 120}

	beams := make([]BeamSpec, 0, 18)
	for site, xy := range siteXY {
		azimuths := southAzimuths
		if site >= 3 {
			azimuths = northAzimuths
		}
		for _, az := range azimuths {
			beams = append(beams, BeamSpec{
				ID:         fmt.Sprintf("bs-%d.%d", site, int(az)),
				X:          xy[0],
				Y:          xy[1],
				AzimuthDeg: az,
			})
		}
	}
	for idx, neighbors := range defaultNeighborIdx {
		for _, n := range neighbors {
			beams[idx].Neighbors = append(beams[idx].Neighbors, beams[n].ID)
		}
	}

	lanes := []LaneSpec{
		{Y: 211, Direction: 1},
		{Y: 215, Direction: 1},
		{Y: 219, Direction: 1},
		{Y: 223, Direction: -1},
		{Y: 227, Direction: -1},
		{Y: 231, Direction: -1},
	}

	return &ScenarioSpec{
		Name:           "busy-highway",
		RoadLengthM:    480,
		BeamRadiusM:    80,
		BeamWidthDeg:   60,
		Beams:          beams,
		Lanes:          lanes,
		NumVehicles:    20,
		SpeedMinMps:    22.3, // ~50 mph
		SpeedMaxMps:    31.2, // ~70 mph
		SpawnStaggerS:  5,
		CohortVehicles: 6,
	}
}

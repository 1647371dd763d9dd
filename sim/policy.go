package sim

import (
	"fmt"
	"math/rand"

	"github.com/macol-sim/macol-sim/sim/trace"
)

// Detection is one reachable client as reported by the radio collaborator.
// Quality is a unitless signal-quality score (higher is better). The
// contextual bandit deliberately ignores it; the greedy baseline ranks by it.
type Detection struct {
	Client  *Client
	Quality float64
}

// RadioEnv is the reachability/propagation collaborator consumed by the
// association policies. Queries are synchronous, non-blocking lookups: any
// retry or timeout semantics for the radio layer belong to the collaborator,
// not here. A Probe the collaborator cannot answer (client removed
// mid-epoch) must return false, which the lifecycle already models as a
// drop rather than a failure path.
type RadioEnv interface {
	// Discover returns the clients currently reachable by the agent,
	// independent of association state.
	Discover(a *Agent) []Detection
	// Probe reports whether a specific, already-associated pair remains
	// mutually reachable. Used for drop detection.
	Probe(a *Agent, c *Client) bool
}

// Environment extends RadioEnv with the facilities the epoch engine needs
// from the world collaborator: the live client roster and mobility.
type Environment interface {
	RadioEnv
	// Clients returns the current client roster, for duration accounting
	// and interference synthesis.
	Clients() []*Client
	// Advance moves the world forward by dt ticks of simulated time.
	Advance(now, dt int64)
}

// AssociationPolicy decides, once per epoch, which agents serve which
// clients. Execute runs the full two-pass evaluation over all agents:
// drop detection for every agent completes before any acquisition begins,
// since acquisition context snapshots must reflect post-drop occupancy.
type AssociationPolicy interface {
	Name() string
	Execute(now int64, agents []*Agent, env RadioEnv)
}

// Policy names accepted by NewAssociationPolicy and the --algo flag.
const (
	AlgoContextLearning = "macol"
	AlgoBestSignal      = "best-signal"
)

// ValidAlgorithms is the set of recognized association policy names.
var ValidAlgorithms = map[string]bool{"": true, AlgoContextLearning: true, AlgoBestSignal: true}

// NewAssociationPolicy creates an association policy by name. The empty
// name selects the contextual bandit. The trace may be nil (no recording);
// the metrics may be nil (no diagnostic counters).
func NewAssociationPolicy(cfg PolicyConfig, rng *rand.Rand, tr *trace.SimulationTrace, m *Metrics) (AssociationPolicy, error) {
	switch cfg.Algo {
	case "", AlgoContextLearning:
		return &ContextLearning{
			Schedule: ExplorationSchedule{ExploreFirst: cfg.ExploreFirst, Epsilon: cfg.Epsilon},
			rng:      rng,
			trace:    tr,
			metrics:  m,
		}, nil
	case AlgoBestSignal:
		return &BestSignal{trace: tr, metrics: m}, nil
	default:
		return nil, fmt.Errorf("unknown association algorithm %q", cfg.Algo)
	}
}

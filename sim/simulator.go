// sim/simulator.go
package sim

import (
	"container/heap"

	"github.com/sirupsen/logrus"
)

// EventQueue implements heap.Interface and orders events by timestamp.
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type EventQueue []Event

func (eq EventQueue) Len() int           { return len(eq) }
func (eq EventQueue) Less(i, j int) bool { return eq[i].Timestamp() < eq[j].Timestamp() }
func (eq EventQueue) Swap(i, j int)      { eq[i], eq[j] = eq[j], eq[i] }

func (eq *EventQueue) Push(x any) {
	*eq = append(*eq, x.(Event))
}

func (eq *EventQueue) Pop() any {
	old := *eq
	n := len(old)
	item := old[n-1]
	*eq = old[0 : n-1]
	return item
}

// Simulator is the core object that holds simulation time, the agent set,
// and the event loop. All state mutation happens inside event execution on
// a single goroutine: agents are independent within each policy pass, and
// every agent's state is consistent at epoch boundaries, so the enclosing
// loop may stop between epochs with no corruption.
type Simulator struct {
	Clock   int64
	Horizon int64
	// Step is the decision epoch length in ticks.
	Step int64
	// StatsPeriod is the periodic reporting interval in ticks (0 = off).
	StatsPeriod int64
	// EventQueue holds the pending epoch and statistics events.
	EventQueue EventQueue

	// Agents is the fixed transmitter set for the whole run.
	Agents []*Agent
	// Env is the world collaborator: reachability, client roster, mobility.
	Env Environment
	// Policy makes the per-epoch association decisions.
	Policy AssociationPolicy

	Metrics *Metrics

	// lastEpoch is the time of the previous epoch, for duration accrual.
	lastEpoch int64
}

// NewSimulator wires an engine from validated configuration. The initial
// epoch event is scheduled at time 0; the first statistics report, if
// enabled, after one full period.
func NewSimulator(cfg SimConfig, agents []*Agent, env Environment, policy AssociationPolicy, metrics *Metrics) *Simulator {
	s := &Simulator{
		Clock:       0,
		Horizon:     cfg.Horizon,
		Step:        cfg.Step,
		StatsPeriod: cfg.StatsPeriod,
		EventQueue:  make(EventQueue, 0),
		Agents:      agents,
		Env:         env,
		Policy:      policy,
		Metrics:     metrics,
	}
	s.Schedule(&EpochEvent{time: 0})
	if cfg.StatsPeriod > 0 {
		s.Schedule(&StatsEvent{time: cfg.StatsPeriod})
	}
	return s
}

// Schedule pushes an event into the simulator's EventQueue.
func (sim *Simulator) Schedule(ev Event) {
	heap.Push(&sim.EventQueue, ev)
}

// Run drives the event loop until the horizon is reached or the queue
// drains.
func (sim *Simulator) Run() {
	for len(sim.EventQueue) > 0 {
		// get the next event to be simulated
		ev := heap.Pop(&sim.EventQueue).(Event)
		// advance the clock
		sim.Clock = ev.Timestamp()
		if sim.Clock > sim.Horizon {
			break
		}
		logrus.Debugf("[tick %07d] Executing %T", sim.Clock, ev)
		// process the event
		ev.Execute(sim)
	}
	logrus.Infof("[tick %07d] Simulation ended", sim.Clock)
}

// Epoch executes one decision epoch at the given time:
//
//  1. accrue client/agent duration counters for the interval just elapsed
//  2. run the association policy (pass 1 drops fully precede pass 2
//     acquisitions, inside Policy.Execute)
//  3. recompute interference flags from the post-decision occupancy
//  4. advance mobility, so the next epoch sees fresh positions
func (sim *Simulator) Epoch(now int64) {
	dt := now - sim.lastEpoch
	sim.lastEpoch = now

	if dt > 0 {
		for _, c := range sim.Env.Clients() {
			sim.Metrics.Accrue(c, dt)
		}
		for _, a := range sim.Agents {
			if a.IsServing() {
				a.AccrueServing(dt, !a.Serving.Interfered)
			}
		}
	}

	sim.Policy.Execute(now, sim.Agents, sim.Env)
	sim.synthesizeInterference()
	sim.Env.Advance(now, sim.Step)
}

// synthesizeInterference marks every served client that is also covered by
// another active transmitter. Only reachability is consulted, through the
// same Probe the drop detector uses — the engine never computes geometry.
func (sim *Simulator) synthesizeInterference() {
	for _, c := range sim.Env.Clients() {
		c.Interfered = false
		if c.Server == nil {
			continue
		}
		for _, a := range sim.Agents {
			if a == c.Server || !a.IsServing() {
				continue
			}
			if sim.Env.Probe(a, c) {
				c.Interfered = true
				break
			}
		}
	}
}

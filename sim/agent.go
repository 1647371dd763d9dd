package sim

// AgentState enumerates the mutually exclusive lifecycle states of an agent.
type AgentState string

const (
	// AgentIdle: no client, backoff timer expired or never armed.
	AgentIdle AgentState = "idle"
	// AgentBackoff: no client, backoff timer active.
	AgentBackoff AgentState = "backoff"
	// AgentServing: an association is in progress. An armed backoff timer
	// is irrelevant in this state and ignored until the connection ends.
	AgentServing AgentState = "serving"
)

// Agent is a transmitter (one beam of a cell sector) acting as an
// independent learning agent. Each agent exclusively owns its Q-table,
// backoff timer and serving state; it observes its neighbors only through
// the one-bit occupancy signal consumed by EncodeContext.
type Agent struct {
	ID string

	// Neighbors holds back-references to the agents whose occupancy forms
	// this agent's context, in a fixed order. The ordering is stable for
	// the lifetime of the simulation: context keys are bit-packed over it.
	Neighbors []*Agent

	// Serving is the client currently bound to this agent, nil when idle.
	Serving *Client

	// ContextAtAssoc is the context key snapshotted at the moment service
	// began. Rewards are attributed to this key when the connection ends,
	// because neighbor occupancy will have changed by then.
	ContextAtAssoc ContextKey

	// QTable is this agent's contextual reward store.
	QTable QTable

	// Backoff is this agent's cool-down timer.
	Backoff BackoffTimer

	// Cumulative counters, in ticks. Total* accrue over the whole run;
	// Serving* accrue over the current connection and reset on Associate.
	TotalDuration           int64
	TotalInterferenceFree   int64
	ServingDuration         int64
	ServingInterferenceFree int64

	// ConnCount is the number of associations this agent has made.
	ConnCount int64
}

// NewAgent creates an idle agent with an empty Q-table. Neighbor wiring is
// done by the scenario builder after all agents exist.
func NewAgent(id string) *Agent {
	return &Agent{
		ID:     id,
		QTable: make(QTable),
	}
}

// IsServing reports whether the agent currently holds a client.
func (a *Agent) IsServing() bool {
	return a.Serving != nil
}

// State returns the agent's lifecycle state at the given time.
func (a *Agent) State(now int64) AgentState {
	switch {
	case a.Serving != nil:
		return AgentServing
	case a.Backoff.Active(now):
		return AgentBackoff
	default:
		return AgentIdle
	}
}

// Associate binds the client to this agent and resets the per-connection
// counters. The caller snapshots ContextAtAssoc separately, since the
// greedy baseline associates without a context.
func (a *Agent) Associate(c *Client) {
	a.Serving = c
	c.Server = a
	a.ServingDuration = 0
	a.ServingInterferenceFree = 0
	a.ConnCount++
}

// Drop clears the serving state on both ends and returns the connection's
// (duration, interference-free duration) pair for reward attribution.
func (a *Agent) Drop() (duration, interferenceFree int64) {
	duration = a.ServingDuration
	interferenceFree = a.ServingInterferenceFree
	a.Serving.Server = nil
	a.Serving = nil
	return duration, interferenceFree
}

// AvgServingDuration returns this agent's average historical connection
// duration in ticks, used as the self-calibrated backoff duration.
// Zero until the agent has associated at least once.
func (a *Agent) AvgServingDuration() int64 {
	if a.ConnCount == 0 {
		return 0
	}
	return a.TotalDuration / a.ConnCount
}

// AccrueServing adds dt ticks of connected time to the cumulative and
// per-connection counters. interferenceFree marks whether the client was
// free of interference over the elapsed interval.
func (a *Agent) AccrueServing(dt int64, interferenceFree bool) {
	a.TotalDuration += dt
	a.ServingDuration += dt
	if interferenceFree {
		a.TotalInterferenceFree += dt
		a.ServingInterferenceFree += dt
	}
}

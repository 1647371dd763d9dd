package sim

// Shared test doubles for the association policy and engine tests.

// stubEnv is a hand-wired radio environment: detections per agent and an
// explicit set of unreachable pairs. Advance is a no-op; mobility effects
// are scripted by mutating the maps between epochs.
type stubEnv struct {
	detections  map[string][]Detection
	unreachable map[string]map[string]bool
	clients     []*Client
}

func newStubEnv() *stubEnv {
	return &stubEnv{
		detections:  make(map[string][]Detection),
		unreachable: make(map[string]map[string]bool),
	}
}

func (e *stubEnv) Discover(a *Agent) []Detection {
	return e.detections[a.ID]
}

func (e *stubEnv) Probe(a *Agent, c *Client) bool {
	return !e.unreachable[a.ID][c.ID]
}

func (e *stubEnv) Clients() []*Client { return e.clients }

func (e *stubEnv) Advance(now, dt int64) {}

// detect exposes a client to an agent's discovery with the given quality.
func (e *stubEnv) detect(agentID string, c *Client, quality float64) {
	e.detections[agentID] = append(e.detections[agentID], Detection{Client: c, Quality: quality})
}

// markUnreachable makes Probe fail for the pair from now on.
func (e *stubEnv) markUnreachable(agentID, clientID string) {
	if e.unreachable[agentID] == nil {
		e.unreachable[agentID] = make(map[string]bool)
	}
	e.unreachable[agentID][clientID] = true
}

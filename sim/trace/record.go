// Package trace provides decision-trace recording for association policy
// analysis. This package has no dependencies on sim/ — it stores pure data
// types, so external tooling can consume dumped traces without the engine.
package trace

// DecisionRecord captures a single serve-or-backoff decision, with the
// (context, reward, threshold) triple that produced it.
type DecisionRecord struct {
	AgentID   string  `json:"agent_id"`
	Clock     int64   `json:"clock"`
	Context   string  `json:"context"`
	Reward    float64 `json:"reward"`
	Threshold float64 `json:"threshold"`
	Serve     bool    `json:"serve"`
	Explore   bool    `json:"explore"` // decision came from the exploration branch
	ClientID  string  `json:"client_id"`
}

// DropRecord captures the end of a connection and the reward attributed to
// the context that was active when the connection started. Attributed is
// false for zero-length connections, which carry no information and skip
// the reward update entirely.
type DropRecord struct {
	AgentID          string  `json:"agent_id"`
	ClientID         string  `json:"client_id"`
	Clock            int64   `json:"clock"`
	Duration         int64   `json:"duration"`
	InterferenceFree int64   `json:"interference_free"`
	Reward           float64 `json:"reward"`
	Attributed       bool    `json:"attributed"`
}

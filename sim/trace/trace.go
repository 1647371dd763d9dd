package trace

// TraceLevel controls the verbosity of decision tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelDecisions captures every serve/backoff decision and drop.
	TraceLevelDecisions TraceLevel = "decisions"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:      true,
	TraceLevelDecisions: true,
	"":                  true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel `json:"level"`
}

// SimulationTrace collects decision records during a simulation run.
type SimulationTrace struct {
	Config    TraceConfig      `json:"config"`
	RunID     string           `json:"run_id"`
	Decisions []DecisionRecord `json:"decisions"`
	Drops     []DropRecord     `json:"drops"`
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig, runID string) *SimulationTrace {
	return &SimulationTrace{
		Config:    config,
		RunID:     runID,
		Decisions: make([]DecisionRecord, 0),
		Drops:     make([]DropRecord, 0),
	}
}

// Enabled reports whether records should be collected. Safe on nil traces,
// so recording call sites need no nil guards of their own.
func (st *SimulationTrace) Enabled() bool {
	return st != nil && st.Config.Level == TraceLevelDecisions
}

// RecordDecision appends a serve/backoff decision record.
func (st *SimulationTrace) RecordDecision(record DecisionRecord) {
	if !st.Enabled() {
		return
	}
	st.Decisions = append(st.Decisions, record)
}

// RecordDrop appends a connection-drop record.
func (st *SimulationTrace) RecordDrop(record DropRecord) {
	if !st.Enabled() {
		return
	}
	st.Drops = append(st.Drops, record)
}

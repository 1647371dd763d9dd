// Tracks simulation-wide coverage and interference statistics, both
// cumulative and per reporting period.

package sim

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Metrics aggregates client-time and connection statistics for final
// reporting and periodic progress lines. All durations are in ticks.
type Metrics struct {
	// RunID tags this run's session file and trace output.
	RunID string

	// Client-time integrals: each live client contributes dt per epoch to
	// exactly one bucket.
	ConnectedTime    int64 // served, interference-free
	InterferedTime   int64 // served, interfered
	DisconnectedTime int64 // unclaimed

	// CompletedConnections counts connections that ended with a non-zero
	// duration. PostExploreDrops is the diagnostic subset counted after
	// the explore-first window ends.
	CompletedConnections int
	PostExploreDrops     int

	session    *SessionWriter
	lastPeriod periodSnapshot
	lastAgents map[string]agentSnapshot
}

// periodSnapshot remembers the integrals at the previous report boundary.
type periodSnapshot struct {
	clock        int64
	connected    int64
	interfered   int64
	disconnected int64
}

// agentSnapshot remembers per-agent counters at the previous report boundary.
type agentSnapshot struct {
	totalDuration         int64
	totalInterferenceFree int64
	connCount             int64
}

// NewMetrics creates a Metrics with a fresh run ID. The session writer may
// be nil (no file output).
func NewMetrics(session *SessionWriter) *Metrics {
	return &Metrics{
		RunID:      uuid.NewString(),
		session:    session,
		lastAgents: make(map[string]agentSnapshot),
	}
}

// Accrue charges dt ticks of client time to the bucket matching the
// client's current association and interference flags.
func (m *Metrics) Accrue(c *Client, dt int64) {
	switch {
	case c.Server == nil:
		m.DisconnectedTime += dt
	case c.Interfered:
		m.InterferedTime += dt
	default:
		m.ConnectedTime += dt
	}
}

// totalTime is the sum of all client-time buckets.
func (m *Metrics) totalTime() int64 {
	return m.ConnectedTime + m.InterferedTime + m.DisconnectedTime
}

// ReportPeriod logs the statistics for the period just ended and appends a
// CSV row to the session file. Per-agent values average the connection
// duration and interference-free duration over the connections the agent
// opened during the period; agents with no new connections are skipped,
// matching how the coverage share of a quiet beam is undefined.
func (m *Metrics) ReportPeriod(now int64, agents []*Agent) {
	periodConnected := m.ConnectedTime - m.lastPeriod.connected
	periodInterfered := m.InterferedTime - m.lastPeriod.interfered
	periodDisconnected := m.DisconnectedTime - m.lastPeriod.disconnected
	periodTime := periodConnected + periodInterfered + periodDisconnected
	if periodTime == 0 {
		// No client time elapsed (e.g. all vehicles still in spawn delay).
		m.snapshot(now, agents)
		return
	}

	connPct := 100 * float64(periodConnected) / float64(periodTime)
	outagePct := 100 * float64(periodDisconnected) / float64(periodTime)
	interferedPct := 100 * float64(periodInterfered) / float64(periodTime)

	var avgDuration, avgInterferenceFree float64
	active := 0
	for _, a := range agents {
		last := m.lastAgents[a.ID]
		periodConns := a.ConnCount - last.connCount
		if periodConns == 0 {
			continue
		}
		avgDuration += float64(a.TotalDuration-last.totalDuration) / float64(periodConns)
		avgInterferenceFree += float64(a.TotalInterferenceFree-last.totalInterferenceFree) / float64(periodConns)
		active++
	}
	if active > 0 {
		avgDuration /= float64(active)
		avgInterferenceFree /= float64(active)
	}

	logrus.Infof("t=%d: last period conn=%.2f%%, no_service=%.2f%%, interfered=%.2f%%", now, connPct, outagePct, interferedPct)
	logrus.Infof("t=%d: agent conn_duration=%.2f, int_free=%.2f", now, avgDuration, avgInterferenceFree)

	if m.session != nil {
		if err := m.session.Write(fmt.Sprintf("%d, %d, %d, %d, %d, %.2f, %.2f, %.2f, %.2f, %.2f",
			now, periodTime, periodConnected, periodDisconnected, periodInterfered,
			avgDuration, avgInterferenceFree, connPct, outagePct, interferedPct)); err != nil {
			logrus.Warnf("session write failed: %v", err)
		}
	}

	m.snapshot(now, agents)
}

// snapshot records the current counters as the next period's baseline.
func (m *Metrics) snapshot(now int64, agents []*Agent) {
	m.lastPeriod = periodSnapshot{
		clock:        now,
		connected:    m.ConnectedTime,
		interfered:   m.InterferedTime,
		disconnected: m.DisconnectedTime,
	}
	for _, a := range agents {
		m.lastAgents[a.ID] = agentSnapshot{
			totalDuration:         a.TotalDuration,
			totalInterferenceFree: a.TotalInterferenceFree,
			connCount:             a.ConnCount,
		}
	}
}

// Print displays aggregated metrics at the end of the simulation.
func (m *Metrics) Print(horizon int64) {
	fmt.Println("=== Simulation Metrics ===")
	fmt.Printf("Run ID                : %s\n", m.RunID)
	fmt.Printf("Horizon               : %d ticks\n", horizon)
	fmt.Printf("Completed Connections : %d\n", m.CompletedConnections)
	if total := m.totalTime(); total > 0 {
		fmt.Printf("Connected             : %.2f%%\n", 100*float64(m.ConnectedTime)/float64(total))
		fmt.Printf("Interfered            : %.2f%%\n", 100*float64(m.InterferedTime)/float64(total))
		fmt.Printf("No Service            : %.2f%%\n", 100*float64(m.DisconnectedTime)/float64(total))
	}
	fmt.Printf("Post-Exploration Drops: %d\n", m.PostExploreDrops)
}

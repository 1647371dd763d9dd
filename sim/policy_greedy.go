package sim

import (
	"github.com/sirupsen/logrus"

	"github.com/macol-sim/macol-sim/sim/trace"
)

// BestSignal is the learning-free baseline: an idle agent always serves
// the unclaimed reachable client with the strongest signal. No contexts,
// no rewards, no backoff — every agent transmits whenever it can, which
// maximizes coverage and interference alike.
type BestSignal struct {
	trace   *trace.SimulationTrace
	metrics *Metrics
}

// Name implements AssociationPolicy.
func (p *BestSignal) Name() string { return AlgoBestSignal }

// Execute implements AssociationPolicy. Same two-pass shape as the bandit
// so both policies see identical drop/acquisition ordering.
func (p *BestSignal) Execute(now int64, agents []*Agent, env RadioEnv) {
	for _, a := range agents {
		if !a.IsServing() {
			continue
		}
		if env.Probe(a, a.Serving) {
			continue
		}
		client := a.Serving
		duration, interferenceFree := a.Drop()
		if p.metrics != nil && duration > 0 {
			p.metrics.CompletedConnections++
		}
		p.trace.RecordDrop(trace.DropRecord{
			AgentID:          a.ID,
			ClientID:         client.ID,
			Clock:            now,
			Duration:         duration,
			InterferenceFree: interferenceFree,
		})
	}

	for _, a := range agents {
		if a.IsServing() {
			continue
		}
		var best *Client
		bestQuality := 0.0
		for _, d := range env.Discover(a) {
			if !d.Client.Unclaimed() {
				continue
			}
			if best == nil || d.Quality > bestQuality {
				best = d.Client
				bestQuality = d.Quality
			}
		}
		if best == nil {
			continue
		}
		a.Associate(best)
		logrus.Debugf("at t=%d, %s now serves %s (quality=%.3f)", now, a.ID, best.ID, bestQuality)
		p.trace.RecordDecision(trace.DecisionRecord{
			AgentID:  a.ID,
			Clock:    now,
			Serve:    true,
			ClientID: best.ID,
		})
	}
}

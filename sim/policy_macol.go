package sim

import (
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/macol-sim/macol-sim/sim/trace"
)

// ContextLearning is the MACOL association policy: each agent is an
// independent contextual multi-armed bandit that learns, from the eventual
// interference-free fraction of its completed connections, which neighbor
// occupancy patterns are safe to transmit in. No inter-agent messages are
// exchanged; the only cross-agent information is the one-bit occupancy
// signal consumed by EncodeContext.
type ContextLearning struct {
	Schedule ExplorationSchedule

	rng     *rand.Rand
	trace   *trace.SimulationTrace
	metrics *Metrics
}

// Name implements AssociationPolicy.
func (p *ContextLearning) Name() string { return AlgoContextLearning }

// Execute runs one decision epoch over all agents in two passes. Pass 1
// (drop detection + reward attribution) completes for every agent before
// pass 2 (acquisition) starts for any: acquisition contexts must reflect
// post-drop occupancy. Within a pass agents are independent — no agent
// mutates another agent's state.
func (p *ContextLearning) Execute(now int64, agents []*Agent, env RadioEnv) {
	p.detectDrops(now, agents, env)
	p.acquire(now, agents, env)
}

// detectDrops ends connections whose client is no longer reachable and
// feeds the reward estimator. The reward is the interference-free fraction
// of the connection just ended, attributed to the context snapshotted when
// it began.
func (p *ContextLearning) detectDrops(now int64, agents []*Agent, env RadioEnv) {
	for _, a := range agents {
		if !a.IsServing() {
			continue
		}
		if env.Probe(a, a.Serving) {
			continue
		}
		client := a.Serving
		duration, interferenceFree := a.Drop()

		rec := trace.DropRecord{
			AgentID:          a.ID,
			ClientID:         client.ID,
			Clock:            now,
			Duration:         duration,
			InterferenceFree: interferenceFree,
		}
		if duration == 0 {
			// A zero-length connection carries no information: the client
			// connected and moved out of reach within one epoch. Skip the
			// reward update entirely.
			p.trace.RecordDrop(rec)
			continue
		}
		reward := float64(interferenceFree) / float64(duration)
		a.QTable.Update(a.ContextAtAssoc, reward)

		rec.Reward = reward
		rec.Attributed = true
		p.trace.RecordDrop(rec)
		if p.metrics != nil {
			p.metrics.CompletedConnections++
			if p.Schedule.Over() {
				// Diagnostic only: drop count after the explore-first
				// window, never part of the learning rule.
				p.metrics.PostExploreDrops++
			}
		}
		logrus.Debugf("at t=%d, %s lost %s, reward=%.3f", now, a.ID, client.ID, reward)
	}
}

// acquire evaluates serve-or-backoff for every idle agent.
func (p *ContextLearning) acquire(now int64, agents []*Agent, env RadioEnv) {
	for _, a := range agents {
		if a.IsServing() {
			continue
		}
		if a.Backoff.Active(now) {
			continue
		}

		candidate := pickRandomUnclaimed(p.rng, env.Discover(a))
		if candidate == nil {
			continue
		}

		// The candidate is drawn uniformly, not by signal strength, so the
		// bandit's sampling of interference contexts is not biased toward
		// spatially-favorable clients.
		ctx := EncodeContext(a)
		rate := p.Schedule.Rate(now)

		var toServe, exploring bool
		var reward, threshold float64
		if p.rng.Float64() < rate {
			// Exploring: always serve to maximize learning.
			toServe = true
			exploring = true
		} else {
			reward = a.QTable.Reward(ctx)
			threshold = a.QTable.Threshold()
			// An unseen context reads as the sentinel 0 and is served
			// optimistically regardless of the threshold.
			toServe = reward == 0 || reward > threshold
			if reward != 0 {
				if toServe {
					logrus.Debugf("at t=%d, %s exploits service, as %.3f>%.3f", now, a.ID, reward, threshold)
				} else {
					logrus.Debugf("at t=%d, %s skips, as %.3f<=%.3f", now, a.ID, reward, threshold)
				}
			}
		}

		if toServe {
			a.Associate(candidate)
			a.ContextAtAssoc = ctx
			logrus.Debugf("at t=%d, %s now serves %s", now, a.ID, candidate.ID)
		} else {
			a.Backoff.Arm(now, a.AvgServingDuration())
			logrus.Debugf("at t=%d, %s backs off for %d ticks", now, a.ID, a.AvgServingDuration())
		}

		p.trace.RecordDecision(trace.DecisionRecord{
			AgentID:   a.ID,
			Clock:     now,
			Context:   ctx.Bits(len(a.Neighbors)),
			Reward:    reward,
			Threshold: threshold,
			Serve:     toServe,
			Explore:   exploring,
			ClientID:  candidate.ID,
		})
	}
}

// pickRandomUnclaimed selects a candidate uniformly at random among the
// unclaimed detections, nil if none exist.
func pickRandomUnclaimed(rng *rand.Rand, detections []Detection) *Client {
	unclaimed := make([]*Client, 0, len(detections))
	for _, d := range detections {
		if d.Client.Unclaimed() {
			unclaimed = append(unclaimed, d.Client)
		}
	}
	if len(unclaimed) == 0 {
		return nil
	}
	return unclaimed[rng.Intn(len(unclaimed))]
}

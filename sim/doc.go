// Package sim provides the core discrete-event simulation engine for the
// MACOL beam-association simulator.
//
// # Reading Guide
//
// Start with these files to understand the learning core:
//   - agent.go: the per-beam agent, its serving state and duration counters
//   - qtable.go: per-agent contextual reward table and decision threshold
//   - policy_macol.go: the two-pass association lifecycle (drop detection,
//     reward attribution, serve-or-backoff decisions)
//   - simulator.go: the event loop and epoch execution
//
// # Architecture
//
// The sim package defines the agents, the bandit bookkeeping, and the epoch
// engine; collaborators live in sub-packages:
//   - sim/world/: highway scenario, vehicle mobility, disc-propagation radio
//   - sim/trace/: decision trace recording (pure data types)
//
// The core never computes distances or coverage shapes. It observes the
// radio layer only through the RadioEnv interface (policy.go): who is
// reachable, and whether an already-associated pair is still reachable.
// Agents never read another agent's state directly; neighbor occupancy
// crosses the decentralization boundary as a single read-only bit per
// neighbor (context.go).
//
// # Key Interfaces
//
//   - AssociationPolicy: per-epoch association decisions ("macol" contextual
//     bandit, "best-signal" greedy baseline)
//   - RadioEnv: reachability queries answered by the propagation collaborator
//   - Environment: RadioEnv plus the client roster and mobility advancement
package sim

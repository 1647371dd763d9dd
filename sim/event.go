package sim

import "github.com/sirupsen/logrus"

// Event defines the interface for all simulation events.
// Each event must have a Timestamp (in ticks) and an Execute method
// that advances simulation state when invoked.
type Event interface {
	Timestamp() int64
	Execute(*Simulator)
}

// EpochEvent represents one decision epoch: duration accounting, the
// association policy's two-pass evaluation, interference synthesis, and
// mobility advancement. It reschedules itself every Step until the horizon.
type EpochEvent struct {
	time int64 // Scheduled execution time (in ticks)
}

// Timestamp returns the scheduled time of the EpochEvent.
func (e *EpochEvent) Timestamp() int64 {
	return e.time
}

// Execute runs the epoch and schedules the next one.
func (e *EpochEvent) Execute(sim *Simulator) {
	sim.Epoch(e.time)
	next := e.time + sim.Step
	if next <= sim.Horizon {
		sim.Schedule(&EpochEvent{time: next})
	}
}

// StatsEvent triggers the periodic statistics report.
type StatsEvent struct {
	time int64
}

// Timestamp returns the scheduled time of the StatsEvent.
func (e *StatsEvent) Timestamp() int64 {
	return e.time
}

// Execute reports period statistics and schedules the next report.
func (e *StatsEvent) Execute(sim *Simulator) {
	logrus.Debugf("[tick %07d] periodic statistics", e.time)
	sim.Metrics.ReportPeriod(e.time, sim.Agents)
	next := e.time + sim.StatsPeriod
	if next <= sim.Horizon {
		sim.Schedule(&StatsEvent{time: next})
	}
}

package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQTable_UnseenContextReadsZero(t *testing.T) {
	q := make(QTable)
	assert.Equal(t, 0.0, q.Reward(0))
	assert.Equal(t, 0.0, q.Reward(ContextKey(0b1011)))
	// Reading never creates entries.
	assert.Len(t, q, 0)
}

func TestQTable_UpdateComputesRunningMean(t *testing.T) {
	tests := []struct {
		name    string
		rewards []float64
		want    float64
	}{
		{"single observation", []float64{0.8}, 0.8},
		{"two observations", []float64{1.0, 0.0}, 0.5},
		{"many observations", []float64{0.2, 0.4, 0.6, 0.8}, 0.5},
		{"all zeros", []float64{0, 0, 0}, 0},
		{"negative rewards allowed", []float64{0.8, -0.2}, 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := make(QTable)
			ctx := ContextKey(0b0101)
			for _, r := range tt.rewards {
				q.Update(ctx, r)
			}
			assert.InDelta(t, tt.want, q.Reward(ctx), 1e-12)
			assert.Equal(t, int64(len(tt.rewards)), q[ctx].Count)
		})
	}
}

func TestQTable_UpdateIsolatesContexts(t *testing.T) {
	q := make(QTable)
	q.Update(ContextKey(0b01), 1.0)
	q.Update(ContextKey(0b10), 0.0)

	assert.Equal(t, 1.0, q.Reward(ContextKey(0b01)))
	assert.Equal(t, 0.0, q.Reward(ContextKey(0b10)))
	assert.Equal(t, 0.0, q.Reward(ContextKey(0b11)))
}

func TestQTable_Threshold(t *testing.T) {
	q := make(QTable)
	assert.Equal(t, 0.0, q.Threshold(), "empty table threshold is 0")

	q.Update(ContextKey(1), 0.9)
	q.Update(ContextKey(2), 0.1)
	q.Update(ContextKey(2), 0.3) // context 2 mean becomes 0.2
	assert.InDelta(t, (0.9+0.2)/2, q.Threshold(), 1e-12)
}

func TestQTable_ThresholdReflectsLatestState(t *testing.T) {
	// The threshold is recomputed on demand, not cached.
	q := make(QTable)
	q.Update(ContextKey(1), 1.0)
	assert.InDelta(t, 1.0, q.Threshold(), 1e-12)

	q.Update(ContextKey(2), 0.0)
	assert.InDelta(t, 0.5, q.Threshold(), 1e-12)
}

func TestQTable_Samples(t *testing.T) {
	q := make(QTable)
	assert.Equal(t, int64(0), q.Samples())
	q.Update(ContextKey(1), 0.5)
	q.Update(ContextKey(1), 0.5)
	q.Update(ContextKey(7), 0.5)
	assert.Equal(t, int64(3), q.Samples())
}

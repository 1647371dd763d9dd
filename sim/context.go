package sim

import (
	"fmt"
	"strings"
)

// ContextKey is a discretized snapshot of an agent's neighbor occupancy,
// bit-packed over the agent's fixed neighbor ordering: bit i is set iff
// Neighbors[i] is presently serving a client. Keys from different agents
// are never comparable (neighbor sets and orderings differ); a key only
// indexes its own agent's Q-table.
type ContextKey uint64

// MaxNeighbors bounds the neighbor set so a context fits one key.
const MaxNeighbors = 64

// EncodeContext produces the agent's current context key. Pure function of
// the neighbors' occupancy bits, O(neighbors).
//
// An agent with more than 64 neighbors cannot be encoded; that is a
// scenario construction error, checked at build time and asserted here.
func EncodeContext(a *Agent) ContextKey {
	if len(a.Neighbors) > MaxNeighbors {
		panic(fmt.Sprintf("EncodeContext: agent %s has %d neighbors, max %d", a.ID, len(a.Neighbors), MaxNeighbors))
	}
	var key ContextKey
	for i, n := range a.Neighbors {
		if n.IsServing() {
			key |= 1 << i
		}
	}
	return key
}

// Bits renders the key as a "[0110...]" occupancy string over width
// neighbor positions, for trace records and debug logs.
func (k ContextKey) Bits(width int) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i := 0; i < width; i++ {
		if k&(1<<i) != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	sb.WriteByte(']')
	return sb.String()
}

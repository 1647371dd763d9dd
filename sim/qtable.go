package sim

// QEntry holds the running mean reward and sample count for one context.
// Mean is the arithmetic mean of every reward ever recorded for the
// (agent, context) pair; Count only increases.
type QEntry struct {
	Mean  float64
	Count int64
}

// QTable maps an agent's context keys to reward estimates. Each agent owns
// exactly one QTable and never touches another agent's.
//
//	+-----------+-------+-------+
//	|  context  | mean  | count |
//	+-----------+-------+-------+
//	| [0001]    |  0.84 |   4   |
//	| [1100]    |  0.15 |  12   |
//	| [0101]    |  0.62 |   7   |
//	+-----------+-------+-------+
//
// The decision threshold is the average of the mean column.
type QTable map[ContextKey]QEntry

// Reward returns the stored mean reward for the context, or 0 for a
// context never recorded. The zero is a defined cold-start sentinel, not
// an error: the decision rule serves unseen contexts optimistically.
func (q QTable) Reward(ctx ContextKey) float64 {
	return q[ctx].Mean
}

// Update records one reward observation with an incremental mean update.
// A first observation initializes the entry, making the first reward the
// mean. All historical evidence is weighted equally: contexts recur with
// similar interference geometry, so no decay is applied.
func (q QTable) Update(ctx ContextKey, reward float64) {
	e := q[ctx]
	e.Mean = (e.Mean*float64(e.Count) + reward) / float64(e.Count+1)
	e.Count++
	q[ctx] = e
}

// Threshold returns the arithmetic mean of the stored mean rewards across
// all contexts, or 0 for an empty table. Recomputed on demand so it always
// reflects the latest learned state: contexts whose reward exceeds the
// agent's own historical average are judged non-interfering.
func (q QTable) Threshold() float64 {
	if len(q) == 0 {
		return 0
	}
	var sum float64
	for _, e := range q {
		sum += e.Mean
	}
	return sum / float64(len(q))
}

// Samples returns the total observation count across all contexts.
// Diagnostic only: reports how often this agent pulled an arm.
func (q QTable) Samples() int64 {
	var total int64
	for _, e := range q {
		total += e.Count
	}
	return total
}

package clique

// DefaultIterationCap bounds the iteration budget of a single search.
const DefaultIterationCap = 1000

// Budget is the per-search iteration counter.  Every recursive call of a
// clique search spends one unit; once the limit is reached the search stops
// and returns what it has found so far.
type Budget struct {
	limit int
	used  int
}

// NewBudget returns a budget of min(2·vertices, cap).  A negative cap selects
// DefaultIterationCap; a zero cap yields a budget that is exhausted from the
// start.
func NewBudget(vertices, cap int) *Budget {
	if cap < 0 {
		cap = DefaultIterationCap
	}
	limit := 2 * vertices
	if cap < limit {
		limit = cap
	}
	return &Budget{limit: limit}
}

// NewBudgetLimit returns a budget with an explicit limit.
func NewBudgetLimit(limit int) *Budget {
	if limit < 0 {
		limit = 0
	}
	return &Budget{limit: limit}
}

// Spend consumes one iteration and reports whether it was available.
func (b *Budget) Spend() bool {
	if b.used >= b.limit {
		return false
	}
	b.used++
	return true
}

// Exhausted reports whether no iterations remain.
func (b *Budget) Exhausted() bool { return b.used >= b.limit }

// Used returns the number of iterations spent.
func (b *Budget) Used() int { return b.used }

// Limit returns the iteration limit.
func (b *Budget) Limit() int { return b.limit }

//Personal.AI order the ending

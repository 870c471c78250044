package mcs

import (
	"sort"

	"github.com/turtacn/keyip-mcs/internal/domain/matcher"
	"github.com/turtacn/keyip-mcs/internal/domain/mcs/clique"
	"github.com/turtacn/keyip-mcs/internal/domain/molecule"
)

// DefaultSubstructureStepLimit bounds the states visited by the substructure
// check before it gives up as inconclusive.
const DefaultSubstructureStepLimit = 10000

// state is the shared bookkeeping of the VF-style searches: a partial
// assignment grown one query atom at a time in a connectivity-first order.
type state struct {
	query, target *molecule.Molecule
	am            matcher.AtomMatcher
	bm            matcher.BondMatcher

	order  []int
	qToT   []int
	tUsed  []bool
	mapped int
}

func newState(query, target *molecule.Molecule, am matcher.AtomMatcher, bm matcher.BondMatcher) *state {
	s := &state{
		query:  query,
		target: target,
		am:     am,
		bm:     bm,
		order:  searchOrder(query),
		qToT:   make([]int, query.AtomCount()),
		tUsed:  make([]bool, target.AtomCount()),
	}
	for i := range s.qToT {
		s.qToT[i] = -1
	}
	return s
}

// searchOrder visits each component breadth-first from its most connected
// atom, so that every atom after the first of its component has a mapped
// neighbour when it is placed.
func searchOrder(m *molecule.Molecule) []int {
	n := m.AtomCount()
	roots := make([]int, n)
	for i := range roots {
		roots[i] = i
	}
	sort.SliceStable(roots, func(i, j int) bool { return m.Degree(roots[i]) > m.Degree(roots[j]) })

	seen := make([]bool, n)
	order := make([]int, 0, n)
	for _, r := range roots {
		if seen[r] {
			continue
		}
		seen[r] = true
		queue := []int{r}
		for len(queue) > 0 {
			a := queue[0]
			queue = queue[1:]
			order = append(order, a)
			for _, nb := range m.Neighbors(a) {
				if !seen[nb] {
					seen[nb] = true
					queue = append(queue, nb)
				}
			}
		}
	}
	return order
}

func (s *state) assign(q, t int) {
	s.qToT[q] = t
	s.tUsed[t] = true
	s.mapped++
}

func (s *state) unassign(q, t int) {
	s.qToT[q] = -1
	s.tUsed[t] = false
	s.mapped--
}

func (s *state) pairs() [][2]int {
	out := make([][2]int, 0, s.mapped)
	for q, t := range s.qToT {
		if t >= 0 {
			out = append(out, [2]int{q, t})
		}
	}
	return out
}

// embeddable reports whether q→t keeps every bond between q and an already
// mapped query atom present and compatible in the target.
func (s *state) embeddable(q, t int) bool {
	if !s.am.Matches(s.query.Atom(q), s.target.Atom(t)) {
		return false
	}
	if s.target.Degree(t) < s.query.Degree(q) {
		return false
	}
	for _, bi := range s.query.IncidentBonds(q) {
		qb := s.query.Bond(bi)
		tn := s.qToT[qb.Other(q)]
		if tn < 0 {
			continue
		}
		tb := s.target.BondBetween(t, tn)
		if tb == nil || !s.bm.Matches(qb, tb) {
			return false
		}
	}
	return true
}

// consistent reports whether q→t agrees with every mapped pair the same way
// a compatibility-graph C-edge does: bonded on both sides with compatible
// bonds, or unbonded on both sides.
func (s *state) consistent(q, t int) bool {
	if !s.am.Matches(s.query.Atom(q), s.target.Atom(t)) {
		return false
	}
	for q2, t2 := range s.qToT {
		if t2 < 0 {
			continue
		}
		qb := s.query.BondBetween(q, q2)
		tb := s.target.BondBetween(t, t2)
		switch {
		case qb == nil && tb == nil:
		case qb != nil && tb != nil && s.bm.Matches(qb, tb):
		default:
			return false
		}
	}
	return true
}

// ─────────────────────────────────────────────────────────────────────────────
// Substructure
// ─────────────────────────────────────────────────────────────────────────────

// substructure looks for an embedding of the whole query in the target.
type substructure struct {
	*state
	steps, limit int
	exhausted    bool
	found        [][2]int
}

// findSubstructure returns the first embedding of query in target.  When the
// step limit is hit before an answer the search is inconclusive and
// exhausted is set.
func findSubstructure(query, target *molecule.Molecule, am matcher.AtomMatcher, bm matcher.BondMatcher, limit int) (pairs [][2]int, exhausted bool) {
	if query.AtomCount() == 0 || query.AtomCount() > target.AtomCount() || query.BondCount() > target.BondCount() {
		return nil, false
	}
	s := &substructure{state: newState(query, target, am, bm), limit: limit}
	s.match(0)
	return s.found, s.exhausted
}

func (s *substructure) match(depth int) bool {
	if s.steps >= s.limit {
		s.exhausted = true
		return false
	}
	s.steps++
	if depth == len(s.order) {
		s.found = s.pairs()
		return true
	}
	q := s.order[depth]
	for t := 0; t < s.target.AtomCount(); t++ {
		if s.tUsed[t] || !s.embeddable(q, t) {
			continue
		}
		s.assign(q, t)
		if s.match(depth + 1) {
			return true
		}
		s.unassign(q, t)
		if s.exhausted {
			return false
		}
	}
	return false
}

// ─────────────────────────────────────────────────────────────────────────────
// VF-like maximum common substructure
// ─────────────────────────────────────────────────────────────────────────────

// vfMCS grows a partial assignment by mapping or skipping each query atom
// in turn.  It keeps every assignment tied for the largest size, up to
// maxSolutions.
type vfMCS struct {
	*state
	budget       *clique.Budget
	truncated    bool
	best         int
	solutions    [][][2]int
	maxSolutions int
}

func findVFMCS(query, target *molecule.Molecule, am matcher.AtomMatcher, bm matcher.BondMatcher, budget *clique.Budget, maxSolutions int) ([][][2]int, bool) {
	if query.AtomCount() == 0 || target.AtomCount() == 0 {
		return nil, false
	}
	v := &vfMCS{state: newState(query, target, am, bm), budget: budget, maxSolutions: maxSolutions}
	v.extend(0)
	return v.solutions, v.truncated
}

func (v *vfMCS) extend(depth int) {
	if !v.budget.Spend() {
		v.truncated = true
		return
	}
	remaining := len(v.order) - depth
	if v.mapped+remaining < v.best {
		return
	}
	if remaining == 0 {
		v.record()
		return
	}
	// No room left for a larger or tied solution list.
	if v.mapped+remaining == v.best && len(v.solutions) >= v.maxSolutions {
		return
	}

	q := v.order[depth]
	for t := 0; t < v.target.AtomCount(); t++ {
		if v.tUsed[t] || !v.consistent(q, t) {
			continue
		}
		v.assign(q, t)
		v.extend(depth + 1)
		v.unassign(q, t)
		if v.truncated {
			return
		}
	}
	v.extend(depth + 1)
}

func (v *vfMCS) record() {
	switch {
	case v.mapped == 0:
		return
	case v.mapped > v.best:
		v.best = v.mapped
		v.solutions = [][][2]int{v.pairs()}
	case v.mapped == v.best && len(v.solutions) < v.maxSolutions:
		v.solutions = append(v.solutions, v.pairs())
	}
}

//Personal.AI order the ending

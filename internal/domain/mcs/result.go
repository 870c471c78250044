package mcs

import (
	"time"

	"github.com/turtacn/keyip-mcs/internal/domain/mcs/clique"
	"github.com/turtacn/keyip-mcs/internal/domain/molecule"
)

// Strategy names the path that produced a result.
type Strategy string

const (
	StrategyNone         Strategy = "none"
	StrategyTrivial      Strategy = "trivial"
	StrategySubstructure Strategy = "substructure"
	StrategyVFLike       Strategy = "vf_like"
	StrategyKoch         Strategy = "koch"
	StrategyBronKerbosch Strategy = "bron_kerbosch"
)

func (s Strategy) String() string { return string(s) }

// Solution is one candidate mapping with its chemical scores.
type Solution struct {
	Mapping *Mapping

	// Subgraph is set when the mapping embeds the whole query.
	Subgraph bool
	// StereoMismatch is set when a conserved bond carries different stereo
	// descriptors on the two sides.
	StereoMismatch bool
	// BondEnergy sums the energies of bonds the mapping does not conserve.
	BondEnergy float64
	// FragmentCount counts the fragments left in both molecules once the
	// bonds the mapping does not conserve are deleted.
	FragmentCount int
	// StereoScore counts conserved bonds whose stereo descriptors agree.
	StereoScore int

	scored bool
}

// Result is the outcome of comparing a query with a target.
type Result struct {
	ID        string
	Query     *molecule.Molecule
	Target    *molecule.Molecule
	Algorithm Algorithm
	Duration  time.Duration

	strategy     Strategy
	solutions    []*Solution
	truncated    bool
	fallbackUsed bool
	graphStats   clique.Stats
}

// Solutions returns the ranked solutions, best first.
func (r *Result) Solutions() []*Solution { return r.solutions }

// Mappings returns the ranked mappings, best first.
func (r *Result) Mappings() []*Mapping {
	out := make([]*Mapping, len(r.solutions))
	for i, s := range r.solutions {
		out[i] = s.Mapping
	}
	return out
}

// FirstMapping returns the best mapping, or an empty one when nothing was
// found.
func (r *Result) FirstMapping() *Mapping {
	if len(r.solutions) == 0 {
		return NewMapping()
	}
	return r.solutions[0].Mapping
}

// MappedAtoms returns the size of the best mapping.
func (r *Result) MappedAtoms() int { return r.FirstMapping().Len() }

// IsSubgraph reports whether the best mapping covers every query atom and,
// beyond the single-atom case, every query bond.
func (r *Result) IsSubgraph() bool {
	if len(r.solutions) == 0 {
		return false
	}
	return r.solutions[0].Subgraph
}

// TanimotoSimilarity is mapped / (query + target - mapped), rounded to four
// decimals.
func (r *Result) TanimotoSimilarity() float64 {
	s, _ := molecule.CommonSubgraphScore(molecule.MetricTanimoto,
		r.Query.AtomCount(), r.Target.AtomCount(), r.MappedAtoms())
	return s
}

// EuclideanDistance is sqrt(query + target - 2·mapped), rounded to four
// decimals.
func (r *Result) EuclideanDistance() float64 {
	s, _ := molecule.CommonSubgraphScore(molecule.MetricEuclidean,
		r.Query.AtomCount(), r.Target.AtomCount(), r.MappedAtoms())
	return s
}

// IsStereoMisMatch reports a stereo disagreement on a bond conserved by the
// best mapping.
func (r *Result) IsStereoMisMatch() bool {
	if len(r.solutions) == 0 {
		return false
	}
	return r.solutions[0].StereoMismatch
}

// Truncated reports whether a search ran out of iterations.
func (r *Result) Truncated() bool { return r.truncated }

// Strategy returns the path that produced the best mapping.
func (r *Result) Strategy() Strategy { return r.strategy }

// FallbackUsed reports whether the clique-based fallback ran.
func (r *Result) FallbackUsed() bool { return r.fallbackUsed }

// GraphStats returns the size of the compatibility graph, zero when none was
// built.
func (r *Result) GraphStats() clique.Stats { return r.graphStats }

// isSubgraph applies the containment rule to one mapping.
func isSubgraph(m *Mapping, query, target *molecule.Molecule) bool {
	if m.Len() == 0 || m.Len() != query.AtomCount() {
		return false
	}
	if m.Len() == 1 {
		return true
	}
	return len(m.ConservedBonds(query, target)) == query.BondCount()
}

//Personal.AI order the ending

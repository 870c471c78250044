package clique

import (
	"sort"

	"github.com/bits-and-blooms/bitset"
)

// Clique is a set of compatibility-graph node ids in the order they were
// added.
type Clique []int

// Finder searches a compatibility graph for cliques.
type Finder interface {
	// FindMaximalCliques runs the search once and returns every clique it
	// recorded, in discovery order.
	FindMaximalCliques() []Clique
	// MaxCliques returns the cliques tied for the largest size, in discovery
	// order.
	MaxCliques() []Clique
	// Truncated reports whether the iteration budget ran out.
	Truncated() bool
	// Iterations returns the number of recursive calls made.
	Iterations() int
}

// result holds the bookkeeping shared by both searches.
type result struct {
	budget    *Budget
	cliques   []Clique
	ran       bool
	truncated bool
}

func (r *result) record(c Clique) {
	out := make(Clique, len(c))
	copy(out, c)
	r.cliques = append(r.cliques, out)
}

func (r *result) maxCliques() []Clique {
	best := 0
	for _, c := range r.cliques {
		if len(c) > best {
			best = len(c)
		}
	}
	var out []Clique
	for _, c := range r.cliques {
		if best > 0 && len(c) == best {
			out = append(out, c)
		}
	}
	return out
}

// spend charges one iteration and flags truncation when none is left.
func (r *result) spend() bool {
	if r.budget.Spend() {
		return true
	}
	r.truncated = true
	return false
}

func (r *result) Truncated() bool { return r.truncated }

func (r *result) Iterations() int { return r.budget.Used() }

// ─────────────────────────────────────────────────────────────────────────────
// Bron–Kerbosch
// ─────────────────────────────────────────────────────────────────────────────

// BronKerbosch enumerates maximal cliques over C-edges with Tomita pivoting.
// D-edges are ignored.
type BronKerbosch struct {
	result
	g *Graph
}

// NewBronKerbosch returns a search over g charged to budget.
func NewBronKerbosch(g *Graph, budget *Budget) *BronKerbosch {
	return &BronKerbosch{g: g, result: result{budget: budget}}
}

func (bk *BronKerbosch) FindMaximalCliques() []Clique {
	if !bk.ran {
		bk.ran = true
		if bk.g.Len() > 0 {
			bk.expand(nil, bk.g.all(), bitset.New(uint(bk.g.Len())))
		}
	}
	return bk.cliques
}

func (bk *BronKerbosch) MaxCliques() []Clique {
	bk.FindMaximalCliques()
	return bk.maxCliques()
}

// expand owns p and x; callers pass fresh sets.
func (bk *BronKerbosch) expand(r Clique, p, x *bitset.BitSet) {
	if !bk.spend() {
		return
	}
	if p.None() {
		if x.None() && len(r) > 0 {
			bk.record(r)
		}
		return
	}

	u := bk.pivot(p, x)
	candidates := p.Difference(bk.g.c[u])
	for v, ok := candidates.NextSet(0); ok; v, ok = candidates.NextSet(v + 1) {
		nv := bk.g.c[v]
		bk.expand(append(r[:len(r):len(r)], int(v)), p.Intersection(nv), x.Intersection(nv))
		if bk.truncated {
			return
		}
		p.Clear(v)
		x.Set(v)
	}
}

// pivot returns the vertex of P ∪ X with the most neighbours in P.  Ties go
// to the lowest id.
func (bk *BronKerbosch) pivot(p, x *bitset.BitSet) uint {
	union := p.Union(x)
	best, bestDeg := uint(0), -1
	for v, ok := union.NextSet(0); ok; v, ok = union.NextSet(v + 1) {
		if d := int(p.IntersectionCardinality(bk.g.c[v])); d > bestDeg {
			best, bestDeg = v, d
		}
	}
	return best
}

// ─────────────────────────────────────────────────────────────────────────────
// Koch
// ─────────────────────────────────────────────────────────────────────────────

// LargeGraphThreshold is the node count from which Koch checks seed
// reachability before growing.
const LargeGraphThreshold = 100

// Koch enumerates connected cliques: every member after the seed is joined to
// an earlier member by a bond-backed C-edge, so the resulting mapping is a
// connected common substructure.
type Koch struct {
	result
	g    *Graph
	best int
	// CollectTies relaxes the bound so that cliques equal in size to the
	// best one are still explored.
	CollectTies bool

	seeded *bitset.BitSet
}

// NewKoch returns a search over g charged to budget.
func NewKoch(g *Graph, budget *Budget) *Koch {
	return &Koch{g: g, result: result{budget: budget}}
}

func (k *Koch) FindMaximalCliques() []Clique {
	if k.ran {
		return k.cliques
	}
	k.ran = true
	n := uint(k.g.Len())
	k.seeded = bitset.New(n)

	for u := uint(0); u < n; u++ {
		if k.budget.Exhausted() {
			k.truncated = true
			break
		}
		if n >= LargeGraphThreshold && !k.hasCPath(u) {
			k.seeded.Set(u)
			continue
		}
		nu := k.g.c[u]
		bu := k.g.bonded[u]
		p := bu.Difference(k.seeded)
		s := bu.Intersection(k.seeded)
		d := nu.Difference(bu)
		k.grow(Clique{int(u)}, p, d, s)
		k.seeded.Set(u)
		if k.truncated {
			break
		}
	}
	return k.cliques
}

func (k *Koch) MaxCliques() []Clique {
	k.FindMaximalCliques()
	return k.maxCliques()
}

// grow owns p, d and s.
func (k *Koch) grow(c Clique, p, d, s *bitset.BitSet) {
	if !k.spend() {
		return
	}
	bound := len(c) + int(p.Count()) + int(d.Count())
	if bound < k.best || (bound == k.best && !k.CollectTies) {
		return
	}
	if p.None() {
		if s.None() && len(c) >= k.best {
			k.best = len(c)
			k.record(c)
		}
		return
	}

	for v, ok := p.NextSet(0); ok; v, ok = p.NextSet(v + 1) {
		nv := k.g.c[v]
		promoted := d.Intersection(k.g.bonded[v])
		p2 := p.Union(promoted.Difference(k.seeded))
		p2.InPlaceIntersection(nv)
		s2 := s.Union(promoted.Intersection(k.seeded))
		s2.InPlaceIntersection(nv)
		d2 := d.Difference(promoted)
		d2.InPlaceIntersection(nv)
		k.grow(append(c[:len(c):len(c)], int(v)), p2, d2, s2)
		if k.truncated {
			return
		}
		p.Clear(v)
		s.Set(v)
	}
}

// hasCPath reports whether the seed u reaches, through bond-backed C-edges
// over unseeded vertices, enough vertices compatible with u to beat the best
// clique found so far.
func (k *Koch) hasCPath(u uint) bool {
	n := uint(k.g.Len())
	visited := bitset.New(n)
	visited.Set(u)
	queue := []uint{u}
	reach := 1
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		next := k.g.bonded[v].Difference(k.seeded)
		next.InPlaceDifference(visited)
		for w, ok := next.NextSet(0); ok; w, ok = next.NextSet(w + 1) {
			visited.Set(w)
			queue = append(queue, w)
			if k.g.c[u].Test(w) {
				reach++
				if reach > k.best {
					return true
				}
			}
		}
	}
	return reach > k.best
}

func sortNodes(nodes []Node) {
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].Query != nodes[j].Query {
			return nodes[i].Query < nodes[j].Query
		}
		return nodes[i].Target < nodes[j].Target
	})
}

//Personal.AI order the ending

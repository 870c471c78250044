// Package clique builds the compatibility graph of two molecular graphs and
// searches it for cliques of mutually consistent atom pairs.  A maximum
// clique corresponds to a maximum common subgraph.
package clique

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/turtacn/keyip-mcs/internal/domain/matcher"
	"github.com/turtacn/keyip-mcs/internal/domain/molecule"
)

// Node is a candidate correspondence between a query atom and a target atom.
type Node struct {
	Query  int
	Target int
}

// EdgeKind classifies the relation between two nodes.
type EdgeKind uint8

const (
	// EdgeNone joins nodes that share a query or a target atom.
	EdgeNone EdgeKind = iota
	// EdgeC joins consistent nodes: both atom pairs unbonded, or both bonded
	// with bonds the bond matcher accepts.
	EdgeC
	// EdgeD joins conflicting nodes: bonded on one side only, or bonded on
	// both sides with incompatible bonds.
	EdgeD
)

func (k EdgeKind) String() string {
	switch k {
	case EdgeC:
		return "c"
	case EdgeD:
		return "d"
	default:
		return "none"
	}
}

// Graph is the compatibility graph.  Node ids are dense and ordered by
// query atom, then target atom.  Adjacency is kept per node as bitsets.
type Graph struct {
	nodes []Node
	// c holds C-edge adjacency, bonded the subset of C-edges backed by a
	// bond on both sides, d the D-edge adjacency.
	c      []*bitset.BitSet
	bonded []*bitset.BitSet
	d      []*bitset.BitSet
}

// Stats summarises a Graph.
type Stats struct {
	Nodes        int
	CEdges       int
	BondedCEdges int
	DEdges       int
}

// Build creates the compatibility graph of query and target.  Every atom
// pair accepted by am becomes a node; every pair of nodes on distinct query
// and distinct target atoms gets a C-edge or a D-edge.  No compatible atom
// pair yields an empty graph, which is a valid result.
func Build(query, target *molecule.Molecule, am matcher.AtomMatcher, bm matcher.BondMatcher) *Graph {
	g := &Graph{}
	for qi, qa := range query.Atoms() {
		for ti, ta := range target.Atoms() {
			if am.Matches(qa, ta) {
				g.nodes = append(g.nodes, Node{Query: qi, Target: ti})
			}
		}
	}

	n := uint(len(g.nodes))
	g.c = make([]*bitset.BitSet, n)
	g.bonded = make([]*bitset.BitSet, n)
	g.d = make([]*bitset.BitSet, n)
	for i := range g.nodes {
		g.c[i] = bitset.New(n)
		g.bonded[i] = bitset.New(n)
		g.d[i] = bitset.New(n)
	}

	for i := 0; i < len(g.nodes); i++ {
		a := g.nodes[i]
		for j := i + 1; j < len(g.nodes); j++ {
			b := g.nodes[j]
			if a.Query == b.Query || a.Target == b.Target {
				continue
			}
			qb := query.BondBetween(a.Query, b.Query)
			tb := target.BondBetween(a.Target, b.Target)
			switch {
			case qb == nil && tb == nil:
				g.setEdge(i, j, g.c)
			case qb != nil && tb != nil && bm.Matches(qb, tb):
				g.setEdge(i, j, g.c)
				g.setEdge(i, j, g.bonded)
			default:
				g.setEdge(i, j, g.d)
			}
		}
	}
	return g
}

func (g *Graph) setEdge(i, j int, adj []*bitset.BitSet) {
	adj[i].Set(uint(j))
	adj[j].Set(uint(i))
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// Node returns node i.
func (g *Graph) Node(i int) Node { return g.nodes[i] }

// Kind returns the kind of the edge between nodes i and j.
func (g *Graph) Kind(i, j int) EdgeKind {
	switch {
	case g.c[i].Test(uint(j)):
		return EdgeC
	case g.d[i].Test(uint(j)):
		return EdgeD
	default:
		return EdgeNone
	}
}

// Bonded reports whether the C-edge between i and j is backed by bonds.
func (g *Graph) Bonded(i, j int) bool { return g.bonded[i].Test(uint(j)) }

// Degree returns the number of C-edges on node i.
func (g *Graph) Degree(i int) int { return int(g.c[i].Count()) }

// Stats counts nodes and edges by kind.
func (g *Graph) Stats() Stats {
	s := Stats{Nodes: len(g.nodes)}
	for i := range g.nodes {
		s.CEdges += int(g.c[i].Count())
		s.BondedCEdges += int(g.bonded[i].Count())
		s.DEdges += int(g.d[i].Count())
	}
	s.CEdges /= 2
	s.BondedCEdges /= 2
	s.DEdges /= 2
	return s
}

// Pairs converts a clique into (query, target) atom pairs ordered by query
// atom.
func (g *Graph) Pairs(c Clique) []Node {
	out := make([]Node, len(c))
	for i, id := range c {
		out[i] = g.nodes[id]
	}
	sortNodes(out)
	return out
}

// Consistent reports whether every pair of members is joined by a C-edge.
func (g *Graph) Consistent(c Clique) bool {
	for i := 0; i < len(c); i++ {
		for j := i + 1; j < len(c); j++ {
			if g.Kind(c[i], c[j]) != EdgeC {
				return false
			}
		}
	}
	return true
}

func (g *Graph) all() *bitset.BitSet {
	b := bitset.New(uint(len(g.nodes)))
	for i := range g.nodes {
		b.Set(uint(i))
	}
	return b
}

//Personal.AI order the ending

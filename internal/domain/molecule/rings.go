package molecule

import (
	"sort"

	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// PerceiveRings sets InRing on atoms and bonds and records, per atom, the
// sizes of the smallest rings passing through each of its ring bonds.
//
// A bond is a ring bond when its endpoints stay connected after the bond is
// removed; the smallest ring through it is the shortest remaining path plus
// the bond itself.  Aromaticity is not perceived here.
func (m *Molecule) PerceiveRings() {
	for _, a := range m.atoms {
		a.InRing = false
		a.RingSizes = nil
	}
	for _, b := range m.bonds {
		b.InRing = false
	}
	if len(m.bonds) == 0 {
		return
	}

	g := m.Graph()
	sizes := make([]map[int]struct{}, len(m.atoms))
	for _, b := range m.bonds {
		u, v := simple.Node(int64(b.Begin)), simple.Node(int64(b.End))
		g.RemoveEdge(u.ID(), v.ID())
		if topo.PathExistsIn(g, u, v) {
			b.InRing = true
			nodes, _ := path.DijkstraFrom(u, g).To(v.ID())
			ringSize := len(nodes)
			for _, n := range nodes {
				idx := int(n.ID())
				if sizes[idx] == nil {
					sizes[idx] = make(map[int]struct{})
				}
				sizes[idx][ringSize] = struct{}{}
			}
		}
		g.SetEdge(g.NewEdge(u, v))
	}

	for i, set := range sizes {
		if len(set) == 0 {
			continue
		}
		a := m.atoms[i]
		a.InRing = true
		for s := range set {
			a.RingSizes = append(a.RingSizes, s)
		}
		sort.Ints(a.RingSizes)
	}
}

// RingBondCount returns the number of bonds flagged InRing.
func (m *Molecule) RingBondCount() int {
	n := 0
	for _, b := range m.bonds {
		if b.InRing {
			n++
		}
	}
	return n
}

//Personal.AI order the ending

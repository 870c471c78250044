// Package molecule provides the molecular graph model consumed by the
// matching core: atoms and bonds with matchable attributes, stable atom
// indices, ring perception, fragment analysis, canonical neighbourhood
// patterns and a caller-owned molecule table.
package molecule

import (
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/turtacn/keyip-mcs/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Molecule
// ─────────────────────────────────────────────────────────────────────────────

// Molecule is an atom-labelled, bond-labelled undirected graph.  Atom
// indices are stable for the lifetime of the value; the matching core never
// changes structure, it only writes Tag values.
type Molecule struct {
	ID   string
	Name string

	atoms []*Atom
	bonds []*Bond

	// incident lists bond indices per atom.
	incident [][]int
	// pairs maps an ordered atom pair to its bond index.
	pairs map[[2]int]int
}

// New returns an empty molecule with the given identifier.
func New(id string) *Molecule {
	return &Molecule{ID: id, pairs: make(map[[2]int]int)}
}

func pairKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

// AddAtom appends a copy of a and returns its index.
func (m *Molecule) AddAtom(a Atom) int {
	m.atoms = append(m.atoms, a.clone())
	m.incident = append(m.incident, nil)
	return len(m.atoms) - 1
}

// AddBond appends a copy of b and returns its index.  Endpoints must exist,
// differ, and not already be bonded.
func (m *Molecule) AddBond(b Bond) (int, error) {
	if b.Begin < 0 || b.Begin >= len(m.atoms) || b.End < 0 || b.End >= len(m.atoms) {
		return -1, errors.Newf(errors.ErrCodeAtomIndexOutOfRange,
			"bond %d-%d references an atom outside 0..%d", b.Begin, b.End, len(m.atoms)-1)
	}
	if b.Begin == b.End {
		return -1, errors.Newf(errors.ErrCodeBondInvalid, "self bond on atom %d", b.Begin)
	}
	key := pairKey(b.Begin, b.End)
	if _, dup := m.pairs[key]; dup {
		return -1, errors.Newf(errors.ErrCodeBondInvalid, "atoms %d and %d are already bonded", b.Begin, b.End)
	}
	if b.Order == OrderUnset {
		b.Order = OrderSingle
	}
	if m.pairs == nil {
		m.pairs = make(map[[2]int]int)
	}
	nb := b
	m.bonds = append(m.bonds, &nb)
	idx := len(m.bonds) - 1
	m.pairs[key] = idx
	m.incident[b.Begin] = append(m.incident[b.Begin], idx)
	m.incident[b.End] = append(m.incident[b.End], idx)
	return idx, nil
}

// AtomCount returns the number of atoms.
func (m *Molecule) AtomCount() int { return len(m.atoms) }

// BondCount returns the number of bonds.
func (m *Molecule) BondCount() int { return len(m.bonds) }

// Atom returns the atom at index i.  It panics when i is out of range, like
// slice indexing.
func (m *Molecule) Atom(i int) *Atom { return m.atoms[i] }

// Bond returns the bond at index i.
func (m *Molecule) Bond(i int) *Bond { return m.bonds[i] }

// Atoms returns the atom slice.  Callers must not append to it.
func (m *Molecule) Atoms() []*Atom { return m.atoms }

// Bonds returns the bond slice.  Callers must not append to it.
func (m *Molecule) Bonds() []*Bond { return m.bonds }

// HasAtom reports whether i is a valid atom index.
func (m *Molecule) HasAtom(i int) bool { return i >= 0 && i < len(m.atoms) }

// BondIndex returns the index of the bond joining a and b, or -1.
func (m *Molecule) BondIndex(a, b int) int {
	if idx, ok := m.pairs[pairKey(a, b)]; ok {
		return idx
	}
	return -1
}

// BondBetween returns the bond joining a and b, or nil.
func (m *Molecule) BondBetween(a, b int) *Bond {
	if idx, ok := m.pairs[pairKey(a, b)]; ok {
		return m.bonds[idx]
	}
	return nil
}

// IncidentBonds returns the bond indices touching atom i.
func (m *Molecule) IncidentBonds(i int) []int { return m.incident[i] }

// Degree returns the number of explicit bonds on atom i.
func (m *Molecule) Degree(i int) int { return len(m.incident[i]) }

// Neighbors returns the atoms bonded to atom i in bond insertion order.
func (m *Molecule) Neighbors(i int) []int {
	out := make([]int, 0, len(m.incident[i]))
	for _, bi := range m.incident[i] {
		out = append(out, m.bonds[bi].Other(i))
	}
	return out
}

// HeavyAtomCount returns the number of non-hydrogen atoms.
func (m *Molecule) HeavyAtomCount() int {
	n := 0
	for _, a := range m.atoms {
		if !a.IsHydrogen() {
			n++
		}
	}
	return n
}

// Clone returns a deep copy, tags included.
func (m *Molecule) Clone() *Molecule {
	c := New(m.ID)
	c.Name = m.Name
	for _, a := range m.atoms {
		c.atoms = append(c.atoms, a.clone())
		c.incident = append(c.incident, nil)
	}
	for _, b := range m.bonds {
		nb := *b
		c.bonds = append(c.bonds, &nb)
		idx := len(c.bonds) - 1
		c.pairs[pairKey(b.Begin, b.End)] = idx
		c.incident[b.Begin] = append(c.incident[b.Begin], idx)
		c.incident[b.End] = append(c.incident[b.End], idx)
	}
	return c
}

// WithoutBonds returns a scratch copy with the listed bonds deleted.  Atom
// indices are preserved; bond indices of the copy are renumbered.
func (m *Molecule) WithoutBonds(drop ...int) *Molecule {
	skip := make(map[int]struct{}, len(drop))
	for _, d := range drop {
		skip[d] = struct{}{}
	}
	c := New(m.ID)
	c.Name = m.Name
	for _, a := range m.atoms {
		c.atoms = append(c.atoms, a.clone())
		c.incident = append(c.incident, nil)
	}
	for i, b := range m.bonds {
		if _, ok := skip[i]; ok {
			continue
		}
		nb := *b
		c.bonds = append(c.bonds, &nb)
		idx := len(c.bonds) - 1
		c.pairs[pairKey(b.Begin, b.End)] = idx
		c.incident[b.Begin] = append(c.incident[b.Begin], idx)
		c.incident[b.End] = append(c.incident[b.End], idx)
	}
	return c
}

// ClearTags resets every atom and bond tag.
func (m *Molecule) ClearTags() {
	for _, a := range m.atoms {
		a.Tag = 0
	}
	for _, b := range m.bonds {
		b.Tag = 0
	}
}

// Merge joins several molecules into one disconnected graph, as used for the
// reactant or product side of a reaction.  The returned offsets give the
// index of each input's first atom in the merged graph.
func Merge(id string, parts ...*Molecule) (*Molecule, []int) {
	out := New(id)
	offsets := make([]int, len(parts))
	for p, part := range parts {
		offsets[p] = out.AtomCount()
		for _, a := range part.atoms {
			out.AddAtom(*a)
		}
		for _, b := range part.bonds {
			nb := *b
			nb.Begin += offsets[p]
			nb.End += offsets[p]
			// Endpoints are fresh, so AddBond cannot fail here.
			_, _ = out.AddBond(nb)
		}
	}
	return out, offsets
}

// ─────────────────────────────────────────────────────────────────────────────
// Graph views
// ─────────────────────────────────────────────────────────────────────────────

// Graph returns a gonum view of the molecule.  Node IDs are atom indices.
func (m *Molecule) Graph() *simple.UndirectedGraph {
	g := simple.NewUndirectedGraph()
	for i := range m.atoms {
		g.AddNode(simple.Node(int64(i)))
	}
	for _, b := range m.bonds {
		g.SetEdge(g.NewEdge(simple.Node(int64(b.Begin)), simple.Node(int64(b.End))))
	}
	return g
}

// Components returns the connected components as sorted atom index lists,
// ordered by their smallest atom.
func (m *Molecule) Components() [][]int {
	return componentsOf(m.Graph())
}

func componentsOf(g graph.Undirected) [][]int {
	cc := topo.ConnectedComponents(g)
	out := make([][]int, 0, len(cc))
	for _, comp := range cc {
		ids := make([]int, len(comp))
		for i, n := range comp {
			ids[i] = int(n.ID())
		}
		sort.Ints(ids)
		out = append(out, ids)
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}

// FragmentCount returns the number of connected components.
func (m *Molecule) FragmentCount() int {
	if len(m.atoms) == 0 {
		return 0
	}
	return len(topo.ConnectedComponents(m.Graph()))
}

// SmallestFragmentAfterCut deletes bond idx from a scratch copy and returns
// the size of the smaller of the fragments holding its two endpoints.  When
// the bond sits in a ring the endpoints stay connected and the size of that
// single fragment is returned.
func (m *Molecule) SmallestFragmentAfterCut(idx int) int {
	b := m.bonds[idx]
	g := m.Graph()
	g.RemoveEdge(int64(b.Begin), int64(b.End))
	sizeOf := make(map[int]int)
	for _, comp := range componentsOf(g) {
		for _, a := range comp {
			sizeOf[a] = len(comp)
		}
	}
	left, right := sizeOf[b.Begin], sizeOf[b.End]
	if left < right {
		return left
	}
	return right
}

//Personal.AI order the ending

package reaction

import (
	"github.com/turtacn/keyip-mcs/internal/domain/mcs"
	"github.com/turtacn/keyip-mcs/internal/domain/molecule"
	"github.com/turtacn/keyip-mcs/pkg/errors"
)

// CompressHydrogens returns a view of rxn where mapped explicit hydrogens
// that take part in no change are folded back into the implicit hydrogen
// count of their heavy neighbour on each side.  The mapping is rebuilt over
// the surviving atoms.  rxn itself is not modified.
func CompressHydrogens(rxn *Reaction, cs *ChangeSet) (*Reaction, error) {
	if rxn == nil || rxn.Mapping == nil || cs == nil {
		return nil, errors.InvalidParam("hydrogen compression needs a mapped reaction and its change set")
	}
	dropR := make(map[int]bool)
	dropP := make(map[int]bool)
	for _, pair := range rxn.Mapping.Pairs() {
		ra, pa := pair[0], pair[1]
		if cs.reactiveReactant[ra] || cs.reactiveProduct[pa] {
			continue
		}
		if !rxn.Reactant.Atom(ra).IsHydrogen() || !rxn.Product.Atom(pa).IsHydrogen() {
			continue
		}
		if !foldable(rxn.Reactant, ra) || !foldable(rxn.Product, pa) {
			continue
		}
		dropR[ra] = true
		dropP[pa] = true
	}

	r, rIdx := withoutHydrogens(rxn.Reactant, dropR)
	p, pIdx := withoutHydrogens(rxn.Product, dropP)
	mapping := mcs.NewMapping()
	for _, pair := range rxn.Mapping.Pairs() {
		if dropR[pair[0]] {
			continue
		}
		if err := mapping.Put(rIdx[pair[0]], pIdx[pair[1]]); err != nil {
			return nil, err
		}
	}
	return &Reaction{ID: rxn.ID, Reactant: r, Product: p, Mapping: mapping}, nil
}

// foldable reports whether hydrogen h hangs off exactly one heavy atom.
func foldable(m *molecule.Molecule, h int) bool {
	nbs := m.Neighbors(h)
	return len(nbs) == 1 && !m.Atom(nbs[0]).IsHydrogen()
}

// withoutHydrogens copies m minus the atoms in drop, adding one implicit
// hydrogen to the neighbour of each dropped atom.  The returned slice maps
// old atom indices to new ones, -1 for dropped atoms.
func withoutHydrogens(m *molecule.Molecule, drop map[int]bool) (*molecule.Molecule, []int) {
	extraH := make(map[int]int)
	for h := range drop {
		extraH[m.Neighbors(h)[0]]++
	}
	out := molecule.New(m.ID)
	out.Name = m.Name
	index := make([]int, m.AtomCount())
	for i, a := range m.Atoms() {
		if drop[i] {
			index[i] = -1
			continue
		}
		atom := *a
		atom.ImplicitH += extraH[i]
		index[i] = out.AddAtom(atom)
	}
	for _, b := range m.Bonds() {
		if drop[b.Begin] || drop[b.End] {
			continue
		}
		nb := *b
		nb.Begin, nb.End = index[b.Begin], index[b.End]
		// Both endpoints survive and were unique in m.
		_, _ = out.AddBond(nb)
	}
	return out, index
}

//Personal.AI order the ending

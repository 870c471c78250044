package testutil

import (
	"fmt"

	"github.com/turtacn/keyip-mcs/internal/domain/molecule"
)

// MustBond adds a bond and panics on error.  Test fixtures only.
func MustBond(m *molecule.Molecule, a, b int, order molecule.BondOrder) int {
	idx, err := m.AddBond(molecule.Bond{Begin: a, End: b, Order: order, Aromatic: order == molecule.OrderAromatic})
	if err != nil {
		panic(fmt.Sprintf("testutil: bond %d-%d: %v", a, b, err))
	}
	return idx
}

// Atoms builds a molecule holding the given element symbols and no bonds.
func Atoms(id string, symbols ...string) *molecule.Molecule {
	m := molecule.New(id)
	for _, s := range symbols {
		m.AddAtom(molecule.Atom{Symbol: s})
	}
	return m
}

// Chain builds a linear molecule joined by single bonds.
func Chain(id string, symbols ...string) *molecule.Molecule {
	m := Atoms(id, symbols...)
	for i := 1; i < len(symbols); i++ {
		MustBond(m, i-1, i, molecule.OrderSingle)
	}
	m.PerceiveRings()
	return m
}

// Ring builds a monocyclic molecule of n atoms of symbol joined by order.
func Ring(id, symbol string, n int, order molecule.BondOrder) *molecule.Molecule {
	m := molecule.New(id)
	for i := 0; i < n; i++ {
		m.AddAtom(molecule.Atom{Symbol: symbol, Aromatic: order == molecule.OrderAromatic})
	}
	for i := 0; i < n; i++ {
		MustBond(m, i, (i+1)%n, order)
	}
	m.PerceiveRings()
	return m
}

// Benzene returns aromatic C6 with six aromatic bonds.
func Benzene() *molecule.Molecule {
	return Ring("benzene", "C", 6, molecule.OrderAromatic)
}

// Cyclohexane returns saturated C6.
func Cyclohexane() *molecule.Molecule {
	return Ring("cyclohexane", "C", 6, molecule.OrderSingle)
}

// Naphthalene returns aromatic C10 with eleven aromatic bonds.  Atoms 0..5
// form the first ring, 4-5 is the fusion bond.
func Naphthalene() *molecule.Molecule {
	m := molecule.New("naphthalene")
	for i := 0; i < 10; i++ {
		m.AddAtom(molecule.Atom{Symbol: "C", Aromatic: true})
	}
	for _, p := range [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 5}, {5, 0}, {4, 6}, {6, 7}, {7, 8}, {8, 9}, {9, 5}} {
		MustBond(m, p[0], p[1], molecule.OrderAromatic)
	}
	m.PerceiveRings()
	return m
}

// AceticAcid returns CH3-C(=O)-OH as heavy atoms: C0-C1, C1=O2, C1-O3.
func AceticAcid() *molecule.Molecule {
	m := Atoms("acetic-acid", "C", "C", "O", "O")
	MustBond(m, 0, 1, molecule.OrderSingle)
	MustBond(m, 1, 2, molecule.OrderDouble)
	MustBond(m, 1, 3, molecule.OrderSingle)
	m.PerceiveRings()
	return m
}

// Identity returns the pairs (i, i) for i in [0, n).
func Identity(n int) [][2]int {
	out := make([][2]int, n)
	for i := range out {
		out[i] = [2]int{i, i}
	}
	return out
}

//Personal.AI order the ending

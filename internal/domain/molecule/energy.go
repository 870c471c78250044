package molecule

import "sort"

// Average bond dissociation energies in kJ/mol keyed by the alphabetically
// sorted element pair and the bond order.  Aromatic bonds sit between single
// and double.
var bondEnergies = map[energyKey]float64{
	{"C", "C", OrderSingle}:   346,
	{"C", "C", OrderDouble}:   614,
	{"C", "C", OrderTriple}:   839,
	{"C", "C", OrderAromatic}: 518,
	{"C", "H", OrderSingle}:   411,
	{"C", "N", OrderSingle}:   305,
	{"C", "N", OrderDouble}:   615,
	{"C", "N", OrderTriple}:   891,
	{"C", "N", OrderAromatic}: 508,
	{"C", "O", OrderSingle}:   358,
	{"C", "O", OrderDouble}:   799,
	{"C", "O", OrderTriple}:   1072,
	{"C", "O", OrderAromatic}: 460,
	{"C", "S", OrderSingle}:   272,
	{"C", "S", OrderDouble}:   573,
	{"C", "S", OrderAromatic}: 420,
	{"C", "F", OrderSingle}:   485,
	{"C", "Cl", OrderSingle}:  327,
	{"Br", "C", OrderSingle}:  285,
	{"C", "I", OrderSingle}:   213,
	{"C", "P", OrderSingle}:   264,
	{"C", "Si", OrderSingle}:  318,
	{"B", "C", OrderSingle}:   356,
	{"H", "H", OrderSingle}:   432,
	{"H", "N", OrderSingle}:   386,
	{"H", "O", OrderSingle}:   459,
	{"H", "S", OrderSingle}:   363,
	{"F", "H", OrderSingle}:   565,
	{"Cl", "H", OrderSingle}:  428,
	{"Br", "H", OrderSingle}:  362,
	{"H", "I", OrderSingle}:   295,
	{"H", "P", OrderSingle}:   322,
	{"H", "Si", OrderSingle}:  318,
	{"N", "N", OrderSingle}:   167,
	{"N", "N", OrderDouble}:   418,
	{"N", "N", OrderTriple}:   942,
	{"N", "N", OrderAromatic}: 293,
	{"N", "O", OrderSingle}:   201,
	{"N", "O", OrderDouble}:   607,
	{"N", "S", OrderSingle}:   159,
	{"O", "O", OrderSingle}:   142,
	{"O", "O", OrderDouble}:   494,
	{"O", "P", OrderSingle}:   335,
	{"O", "P", OrderDouble}:   544,
	{"O", "S", OrderSingle}:   265,
	{"O", "S", OrderDouble}:   522,
	{"O", "Si", OrderSingle}:  452,
	{"Cl", "Cl", OrderSingle}: 240,
	{"Br", "Br", OrderSingle}: 190,
	{"F", "F", OrderSingle}:   155,
	{"I", "I", OrderSingle}:   148,
	{"S", "S", OrderSingle}:   266,
	{"P", "P", OrderSingle}:   201,
}

type energyKey struct {
	a, b  string
	order BondOrder
}

// BondEnergy returns the tabulated dissociation energy of a bond of order
// between elements a and b.
func BondEnergy(a, b string, order BondOrder) (float64, bool) {
	pair := []string{a, b}
	sort.Strings(pair)
	e, ok := bondEnergies[energyKey{pair[0], pair[1], order}]
	return e, ok
}

// BondEnergy returns the tabulated energy of bond idx.  Unknown element
// pairs report false.
func (m *Molecule) BondEnergy(idx int) (float64, bool) {
	b := m.bonds[idx]
	return BondEnergy(m.atoms[b.Begin].Symbol, m.atoms[b.End].Symbol, b.EnergyOrder())
}

//Personal.AI order the ending

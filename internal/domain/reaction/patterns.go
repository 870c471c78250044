package reaction

import "github.com/turtacn/keyip-mcs/internal/domain/molecule"

// bondPattern renders bond i as "A-B" with the element symbols sorted, so
// that C-O and O-C read the same.
func bondPattern(m *molecule.Molecule, i int) string {
	b := m.Bond(i)
	a, z := m.Atom(b.Begin).Symbol, m.Atom(b.End).Symbol
	if z < a {
		a, z = z, a
	}
	return a + molecule.BondSymbol(b) + z
}

//Personal.AI order the ending

package molecule

import (
	"github.com/turtacn/keyip-mcs/pkg/errors"
)

// StereoProvider answers stereo queries on behalf of an external chemistry
// toolkit.  Implementations may fail (unparseable or undetermined stereo);
// callers in the matching core treat a failure as "no stereo information".
type StereoProvider interface {
	// AtomStereo returns the descriptor of atom i of m.
	AtomStereo(m *Molecule, i int) (AtomStereo, error)

	// BondStereo returns the descriptor of bond i of m.
	BondStereo(m *Molecule, i int) (BondStereo, error)
}

// AttributeStereo reads descriptors straight from the Atom and Bond fields.
// StereoUnknown on an atom is reported as a chemistry-model error.
type AttributeStereo struct{}

// AtomStereo implements StereoProvider.
func (AttributeStereo) AtomStereo(m *Molecule, i int) (AtomStereo, error) {
	if !m.HasAtom(i) {
		return StereoNone, errors.ChemistryModel("stereo query on missing atom").WithDetailf("atom=%d", i)
	}
	s := m.atoms[i].Stereo
	if s == StereoUnknown {
		return StereoNone, errors.ChemistryModel("undetermined stereo centre").
			WithDetailf("molecule=%s atom=%d", m.ID, i)
	}
	return s, nil
}

// BondStereo implements StereoProvider.
func (AttributeStereo) BondStereo(m *Molecule, i int) (BondStereo, error) {
	if i < 0 || i >= len(m.bonds) {
		return BondStereoNone, errors.ChemistryModel("stereo query on missing bond").WithDetailf("bond=%d", i)
	}
	return m.bonds[i].Stereo, nil
}

// Stereo-free provider for callers that disable stereo handling entirely.
type noStereo struct{}

func (noStereo) AtomStereo(*Molecule, int) (AtomStereo, error) { return StereoNone, nil }
func (noStereo) BondStereo(*Molecule, int) (BondStereo, error) { return BondStereoNone, nil }

// NoStereo returns a provider that reports no stereo for anything.
func NoStereo() StereoProvider { return noStereo{} }

//Personal.AI order the ending

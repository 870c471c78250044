package molecule_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/keyip-mcs/internal/domain/molecule"
	"github.com/turtacn/keyip-mcs/internal/testutil"
	"github.com/turtacn/keyip-mcs/pkg/errors"
	mtypes "github.com/turtacn/keyip-mcs/pkg/types/molecule"
)

func TestFromDTO(t *testing.T) {
	dto := &mtypes.MoleculeDTO{
		ID: "lactic",
		Atoms: []mtypes.AtomDTO{
			{Symbol: "C"}, {Symbol: "C", Stereo: "S"}, {Symbol: "O"}, {Symbol: "C"}, {Symbol: "O"}, {Symbol: "O"},
		},
		Bonds: []mtypes.BondDTO{
			{From: 0, To: 1}, {From: 1, To: 2}, {From: 1, To: 3}, {From: 3, To: 4, Order: "double"}, {From: 3, To: 5},
		},
	}
	m, err := molecule.FromDTO(dto)
	require.NoError(t, err)
	assert.Equal(t, 6, m.AtomCount())
	assert.Equal(t, molecule.StereoS, m.Atom(1).Stereo)
	assert.Equal(t, molecule.OrderDouble, m.BondBetween(3, 4).Order)
}

func TestFromDTO_Errors(t *testing.T) {
	_, err := molecule.FromDTO(&mtypes.MoleculeDTO{
		ID:    "x",
		Atoms: []mtypes.AtomDTO{{Symbol: "C"}, {Symbol: "C"}},
		Bonds: []mtypes.BondDTO{{From: 0, To: 1, Order: "sextuple"}},
	})
	assert.True(t, errors.IsCode(err, errors.ErrCodeMoleculeInvalidFormat))

	_, err = molecule.FromDTO(&mtypes.MoleculeDTO{
		ID:    "x",
		Atoms: []mtypes.AtomDTO{{Symbol: "C"}, {Symbol: "C"}},
		Bonds: []mtypes.BondDTO{{From: 0, To: 1}, {From: 1, To: 0}},
	})
	assert.True(t, errors.IsCode(err, errors.ErrCodeBondInvalid))
}

func TestDTORoundTrip_PerceivesRings(t *testing.T) {
	dto := molecule.ToDTO(testutil.Naphthalene())
	back, err := molecule.FromDTO(&dto)
	require.NoError(t, err)
	assert.Equal(t, 11, back.BondCount())
	assert.Equal(t, 11, back.RingBondCount())
	assert.True(t, back.Bond(0).IsAromatic())
}

func TestAttributeStereo(t *testing.T) {
	m := testutil.Chain("m", "C", "C")
	m.Atom(0).Stereo = molecule.StereoR
	m.Atom(1).Stereo = molecule.StereoUnknown

	var p molecule.StereoProvider = molecule.AttributeStereo{}
	s, err := p.AtomStereo(m, 0)
	require.NoError(t, err)
	assert.Equal(t, molecule.StereoR, s)

	_, err = p.AtomStereo(m, 1)
	assert.True(t, errors.IsCode(err, errors.ErrCodeChemistryModel))
	_, err = p.BondStereo(m, 5)
	assert.True(t, errors.IsCode(err, errors.ErrCodeChemistryModel))

	s, err = molecule.NoStereo().AtomStereo(m, 0)
	require.NoError(t, err)
	assert.Equal(t, molecule.StereoNone, s)
}

//Personal.AI order the ending

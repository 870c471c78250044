package reaction_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/keyip-mcs/internal/domain/mcs"
	"github.com/turtacn/keyip-mcs/internal/domain/molecule"
	"github.com/turtacn/keyip-mcs/internal/domain/reaction"
	"github.com/turtacn/keyip-mcs/internal/testutil"
	"github.com/turtacn/keyip-mcs/pkg/errors"
)

func TestNewReaction(t *testing.T) {
	rxn, err := reaction.NewReaction("esterification",
		[]*molecule.Molecule{testutil.AceticAcid(), testutil.Chain("ethanol", "C", "C", "O")},
		[]*molecule.Molecule{testutil.AceticAcid()}, nil)
	require.NoError(t, err)
	assert.Equal(t, 7, rxn.Reactant.AtomCount())
	assert.Equal(t, 5, rxn.Reactant.BondCount())
	assert.Equal(t, 2, rxn.Reactant.FragmentCount())

	_, err = reaction.NewReaction("empty", nil, []*molecule.Molecule{testutil.Benzene()}, nil)
	assert.Equal(t, errors.ErrCodeReactionInvalid, errors.GetCode(err))
}

func TestMapReaction(t *testing.T) {
	rxn, err := reaction.NewReaction("hydroxylation",
		[]*molecule.Molecule{testutil.Chain("ethane", "C", "C"), testutil.Atoms("oxygen", "O")},
		[]*molecule.Molecule{testutil.Chain("ethanol", "C", "C", "O")}, nil)
	require.NoError(t, err)

	engine, err := mcs.NewEngine(mcs.DefaultOptions(), testutil.NewNopLogger())
	require.NoError(t, err)
	res, err := reaction.MapReaction(engine, rxn)
	require.NoError(t, err)
	assert.Equal(t, 3, res.MappedAtoms())
	require.NotNil(t, rxn.Mapping)

	cs, err := reaction.NewCalculator(nil, nil).Calculate(rxn)
	require.NoError(t, err)
	require.Len(t, cs.Formed, 1)
	assert.Equal(t, "C-O", cs.Formed[0].Fingerprint)
	assert.Empty(t, cs.Cleaved)
}

func TestMapReaction_NothingInCommon(t *testing.T) {
	rxn, err := reaction.NewReaction("none",
		[]*molecule.Molecule{testutil.Chain("r", "N", "N")},
		[]*molecule.Molecule{testutil.Chain("p", "C", "C")}, nil)
	require.NoError(t, err)

	engine, err := mcs.NewEngine(mcs.DefaultOptions(), nil)
	require.NoError(t, err)
	_, err = reaction.MapReaction(engine, rxn)
	assert.Equal(t, errors.ErrCodeReactionUnmapped, errors.GetCode(err))
	assert.Nil(t, rxn.Mapping)
}

func TestCompressHydrogens(t *testing.T) {
	r := testutil.Atoms("r", "C", "O", "H", "H")
	testutil.MustBond(r, 0, 1, molecule.OrderSingle)
	testutil.MustBond(r, 0, 2, molecule.OrderSingle)
	testutil.MustBond(r, 1, 3, molecule.OrderSingle)
	p := testutil.Atoms("p", "C", "O", "H", "H")
	testutil.MustBond(p, 0, 2, molecule.OrderSingle)
	testutil.MustBond(p, 1, 3, molecule.OrderSingle)

	rxn := &reaction.Reaction{ID: "rxn", Reactant: r, Product: p, Mapping: identity(t, 4)}
	calc := reaction.NewCalculator(nil, nil)
	cs, err := calc.Calculate(rxn)
	require.NoError(t, err)

	view, err := reaction.CompressHydrogens(rxn, cs)
	require.NoError(t, err)
	assert.Equal(t, 2, view.Reactant.AtomCount())
	assert.Equal(t, 1, view.Reactant.BondCount())
	assert.Equal(t, 1, view.Reactant.Atom(0).ImplicitH)
	assert.Equal(t, 1, view.Reactant.Atom(1).ImplicitH)
	assert.Equal(t, 0, view.Product.BondCount())
	assert.Equal(t, testutil.Identity(2), view.Mapping.Pairs())
	assert.Equal(t, 4, r.AtomCount(), "the original reaction is untouched")

	again, err := calc.Calculate(view)
	require.NoError(t, err)
	assert.Len(t, again.Cleaved, 1)

	_, err = reaction.CompressHydrogens(rxn, nil)
	assert.Equal(t, errors.CodeInvalidParam, errors.GetCode(err))
}

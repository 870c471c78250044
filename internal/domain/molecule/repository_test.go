package molecule_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/keyip-mcs/internal/domain/molecule"
	"github.com/turtacn/keyip-mcs/internal/testutil"
	"github.com/turtacn/keyip-mcs/pkg/errors"
)

func TestTable_PutGet(t *testing.T) {
	tbl := molecule.NewTable()
	require.NoError(t, tbl.Put(testutil.Naphthalene(), false))
	require.NoError(t, tbl.Put(testutil.Benzene(), false))

	m, err := tbl.Get("benzene")
	require.NoError(t, err)
	assert.Equal(t, 6, m.AtomCount())
	assert.Equal(t, []string{"benzene", "naphthalene"}, tbl.IDs())
	assert.Equal(t, 2, tbl.Len())
}

func TestTable_Duplicates(t *testing.T) {
	tbl := molecule.NewTable()
	require.NoError(t, tbl.Put(testutil.Benzene(), false))

	err := tbl.Put(testutil.Benzene(), false)
	assert.True(t, errors.IsCode(err, errors.ErrCodeMoleculeAlreadyExists))
	assert.NoError(t, tbl.Put(testutil.Benzene(), true))
}

func TestTable_MissingAndInvalid(t *testing.T) {
	tbl := molecule.NewTable()
	_, err := tbl.Get("nope")
	assert.True(t, errors.IsNotFound(err))
	assert.Error(t, tbl.Put(molecule.New(""), false))
	assert.False(t, tbl.Delete("nope"))
}

func TestTable_Each(t *testing.T) {
	tbl := molecule.NewTable()
	for _, m := range []*molecule.Molecule{testutil.Benzene(), testutil.AceticAcid(), testutil.Cyclohexane()} {
		require.NoError(t, tbl.Put(m, false))
	}
	var seen []string
	tbl.Each(func(m *molecule.Molecule) bool {
		seen = append(seen, m.ID)
		return len(seen) < 2
	})
	assert.Equal(t, []string{"acetic-acid", "benzene"}, seen)
	assert.True(t, tbl.Delete("benzene"))
	assert.Equal(t, 2, tbl.Len())
}

//Personal.AI order the ending

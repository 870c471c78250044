package molecule

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/turtacn/keyip-mcs/pkg/errors"
)

func ethanol() MoleculeDTO {
	return MoleculeDTO{
		ID:    "ethanol",
		Atoms: []AtomDTO{{Symbol: "C"}, {Symbol: "C"}, {Symbol: "O"}},
		Bonds: []BondDTO{{From: 0, To: 1}, {From: 1, To: 2}},
	}
}

func TestMoleculeDTO_Validate_OK(t *testing.T) {
	m := ethanol()
	assert.NoError(t, m.Validate())
}

func TestMoleculeDTO_Validate_MissingSymbol(t *testing.T) {
	m := ethanol()
	m.Atoms[1].Symbol = ""
	err := m.Validate()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeMoleculeInvalidFormat))
}

func TestMoleculeDTO_Validate_BondOutOfRange(t *testing.T) {
	m := ethanol()
	m.Bonds = append(m.Bonds, BondDTO{From: 2, To: 3})
	err := m.Validate()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeAtomIndexOutOfRange))
}

func TestReactionDTO_Validate(t *testing.T) {
	r := ReactionDTO{ID: "r1", Reactants: []MoleculeDTO{ethanol()}}
	err := r.Validate()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeReactionInvalid))

	r.Products = []MoleculeDTO{ethanol()}
	assert.NoError(t, r.Validate())
}

func TestReactionDTO_YAMLDecoding(t *testing.T) {
	src := `
id: hydrolysis
reactants:
  - id: ab
    atoms: [{symbol: C}, {symbol: O}]
    bonds: [{from: 0, to: 1, order: single}]
products:
  - id: a
    atoms: [{symbol: C}]
  - id: b
    atoms: [{symbol: O, charge: -1}]
mapping:
  - {query: 0, target: 0}
  - {query: 1, target: 1}
`
	var r ReactionDTO
	require.NoError(t, yaml.Unmarshal([]byte(src), &r))
	assert.Equal(t, "hydrolysis", r.ID)
	require.Len(t, r.Products, 2)
	assert.Equal(t, -1, r.Products[1].Atoms[0].Charge)
	assert.Equal(t, []MappingPairDTO{{0, 0}, {1, 1}}, r.Mapping)
}

func TestMatchOptionsDTO_OmitsUnsetPointers(t *testing.T) {
	on := true
	data, err := json.Marshal(MatchOptionsDTO{Algorithm: "DEFAULT", MatchRings: &on})
	require.NoError(t, err)
	assert.JSONEq(t, `{"algorithm":"DEFAULT","match_rings":true}`, string(data))
}

//Personal.AI order the ending

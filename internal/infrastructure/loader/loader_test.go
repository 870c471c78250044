package loader_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/keyip-mcs/internal/infrastructure/loader"
	"github.com/turtacn/keyip-mcs/pkg/errors"
	mtypes "github.com/turtacn/keyip-mcs/pkg/types/molecule"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestReadMolecule_YAML(t *testing.T) {
	path := writeFile(t, "ethanol.yaml", `
id: ethanol
atoms:
  - symbol: C
  - symbol: C
  - symbol: O
bonds:
  - {from: 0, to: 1, order: single}
  - {from: 1, to: 2, order: "1"}
`)
	dto, err := loader.ReadMolecule(path)
	require.NoError(t, err)
	assert.Equal(t, "ethanol", dto.ID)
	assert.Len(t, dto.Atoms, 3)
	assert.Equal(t, mtypes.BondDTO{From: 1, To: 2, Order: "1"}, dto.Bonds[1])
}

func TestReadMolecule_JSON(t *testing.T) {
	path := writeFile(t, "water.json", `{"id":"water","atoms":[{"symbol":"O","implicit_h":2}]}`)
	dto, err := loader.ReadMolecule(path)
	require.NoError(t, err)
	assert.Equal(t, 2, dto.Atoms[0].ImplicitH)
}

func TestReadMolecule_Errors(t *testing.T) {
	_, err := loader.ReadMolecule(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.IsNotFound(err))

	path := writeFile(t, "bad.yaml", "id: x\natoms: [\n")
	_, err = loader.ReadMolecule(path)
	assert.True(t, errors.IsCode(err, errors.ErrCodeMoleculeParsingFailed))

	path = writeFile(t, "typo.yaml", "id: x\natom:\n  - symbol: C\n")
	_, err = loader.ReadMolecule(path)
	assert.True(t, errors.IsCode(err, errors.ErrCodeMoleculeParsingFailed))

	path = writeFile(t, "dangling.yaml", "id: x\natoms:\n  - symbol: C\nbonds:\n  - {from: 0, to: 3}\n")
	_, err = loader.ReadMolecule(path)
	assert.True(t, errors.IsCode(err, errors.ErrCodeAtomIndexOutOfRange))
}

func TestReadReaction(t *testing.T) {
	path := writeFile(t, "rxn.yaml", `
id: hydration
reactants:
  - id: ethene
    atoms: [{symbol: C}, {symbol: C}]
    bonds: [{from: 0, to: 1, order: double}]
  - id: water
    atoms: [{symbol: O}]
products:
  - id: ethanol
    atoms: [{symbol: C}, {symbol: C}, {symbol: O}]
    bonds: [{from: 0, to: 1}, {from: 1, to: 2}]
mapping:
  - {query: 0, target: 0}
  - {query: 1, target: 1}
  - {query: 2, target: 2}
options:
  algorithm: clique-based
`)
	dto, err := loader.ReadReaction(path)
	require.NoError(t, err)
	assert.Len(t, dto.Reactants, 2)
	assert.Len(t, dto.Mapping, 3)
	assert.Equal(t, "clique-based", dto.Options.Algorithm)

	path = writeFile(t, "half.yaml", "id: half\nreactants:\n  - id: a\n    atoms: [{symbol: C}]\n")
	_, err = loader.ReadReaction(path)
	assert.True(t, errors.IsCode(err, errors.ErrCodeReactionInvalid))
}

func TestDecode_Empty(t *testing.T) {
	var dto mtypes.BatchDTO
	err := loader.Decode(strings.NewReader(""), &dto)
	assert.True(t, errors.IsCode(err, errors.ErrCodeMoleculeParsingFailed))
}

func TestReadBatch(t *testing.T) {
	path := writeFile(t, "batch.yaml", `
molecules:
  - {id: a, atoms: [{symbol: C}]}
  - {id: b, atoms: [{symbol: C}]}
pairs:
  - {query: a, target: b}
min_fingerprint_similarity: 0.2
`)
	dto, err := loader.ReadBatch(path)
	require.NoError(t, err)
	assert.Len(t, dto.Molecules, 2)
	assert.Equal(t, []mtypes.PairDTO{{Query: "a", Target: "b"}}, dto.Pairs)
	assert.InDelta(t, 0.2, dto.MinFingerprintSimilarity, 1e-9)
}

//Personal.AI order the ending

package e2e_test

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/keyip-mcs/internal/domain/molecule"
	"github.com/turtacn/keyip-mcs/internal/testutil"
	"github.com/turtacn/keyip-mcs/pkg/client"
	"github.com/turtacn/keyip-mcs/pkg/errors"
	mtypes "github.com/turtacn/keyip-mcs/pkg/types/molecule"
)

func dto(m *molecule.Molecule) mtypes.MoleculeDTO { return molecule.ToDTO(m) }

func TestE2E_BenzeneInNaphthalene(t *testing.T) {
	resp, err := env.sdk.Compare(context.Background(), &mtypes.CompareRequest{
		Query:  dto(testutil.Benzene()),
		Target: dto(testutil.Naphthalene()),
	})
	require.NoError(t, err)
	assert.Equal(t, 6, resp.MappedAtoms)
	assert.True(t, resp.IsSubgraph)
	assert.InDelta(t, 0.6, resp.Tanimoto, 1e-9)
	require.NotEmpty(t, resp.Solutions)
	assert.Len(t, resp.Solutions[0].Mapping, 6)
}

func TestE2E_SingleAtomTrivialPath(t *testing.T) {
	resp, err := env.sdk.Compare(context.Background(), &mtypes.CompareRequest{
		Query:  dto(testutil.Atoms("o", "O")),
		Target: dto(testutil.AceticAcid()),
	})
	require.NoError(t, err)
	assert.Equal(t, "trivial", resp.Strategy)
	assert.Equal(t, 1, resp.MappedAtoms)
	assert.True(t, resp.IsSubgraph)
}

func TestE2E_CliqueBasedAgreesOnSize(t *testing.T) {
	resp, err := env.sdk.Compare(context.Background(), &mtypes.CompareRequest{
		Query:   dto(testutil.Benzene()),
		Target:  dto(testutil.Naphthalene()),
		Options: mtypes.MatchOptionsDTO{Algorithm: "CLIQUE_BASED"},
	})
	require.NoError(t, err)
	assert.Equal(t, "bron_kerbosch", resp.Strategy)
	assert.Equal(t, 6, resp.MappedAtoms)
}

func TestE2E_ReactionCleavage(t *testing.T) {
	resp, err := env.sdk.AnalyzeReaction(context.Background(), &mtypes.ReactionDTO{
		ID:        "a-b-cleavage",
		Reactants: []mtypes.MoleculeDTO{dto(testutil.Chain("ab", "C", "O"))},
		Products:  []mtypes.MoleculeDTO{dto(testutil.Atoms("a+b", "C", "O"))},
		Mapping:   []mtypes.MappingPairDTO{{Query: 0, Target: 0}, {Query: 1, Target: 1}},
	})
	require.NoError(t, err)
	require.Len(t, resp.Changes, 1)
	assert.Equal(t, "cleaved", resp.Changes[0].Kind)
	assert.Equal(t, []int{0, 1}, resp.ReactionCenter)
}

func TestE2E_IdentityReactionHasNoChanges(t *testing.T) {
	n := testutil.Naphthalene()
	pairs := make([]mtypes.MappingPairDTO, n.AtomCount())
	for i := range pairs {
		pairs[i] = mtypes.MappingPairDTO{Query: i, Target: i}
	}
	resp, err := env.sdk.AnalyzeReaction(context.Background(), &mtypes.ReactionDTO{
		ID:        "identity",
		Reactants: []mtypes.MoleculeDTO{dto(n)},
		Products:  []mtypes.MoleculeDTO{dto(testutil.Naphthalene())},
		Mapping:   pairs,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Changes)
	assert.Empty(t, resp.ReactionCenter)
}

func TestE2E_Batch(t *testing.T) {
	resp, err := env.sdk.BatchCompare(context.Background(), &mtypes.BatchDTO{
		Molecules: []mtypes.MoleculeDTO{
			dto(testutil.Benzene()),
			dto(testutil.Cyclohexane()),
			dto(testutil.Naphthalene()),
		},
		Pairs: []mtypes.PairDTO{{Query: "benzene", Target: "naphthalene"}},
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, 6, resp.Results[0].MappedAtoms)
}

func TestE2E_ErrorsCrossTheWire(t *testing.T) {
	_, err := env.sdk.Compare(context.Background(), &mtypes.CompareRequest{
		Query:   dto(testutil.Benzene()),
		Target:  dto(testutil.Benzene()),
		Options: mtypes.MatchOptionsDTO{Algorithm: "annealing"},
	})
	require.Error(t, err)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsBadRequest())
	assert.True(t, errors.IsCode(err, errors.ErrCodeUnknownAlgorithm))
}

func TestE2E_MetricsExposed(t *testing.T) {
	if env.collector == nil {
		t.Skip("metrics are only asserted against the embedded server")
	}
	resp, err := http.Get(env.baseURL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "keymcs_searches_total")
}

//Personal.AI order the ending

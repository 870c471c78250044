package comparison

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/keyip-mcs/internal/domain/matcher"
	"github.com/turtacn/keyip-mcs/internal/domain/mcs"
	mtypes "github.com/turtacn/keyip-mcs/pkg/types/molecule"
)

func TestMergeOptions(t *testing.T) {
	off, on := false, true
	base := mcs.DefaultOptions()
	base.AtomMatcher = matcher.NewAtomMatcher(base.Flags)

	got, err := mergeOptions(base, mtypes.MatchOptionsDTO{
		Algorithm:      "vf-like",
		MatchBondOrder: &off,
		MatchRings:     &on,
		IterationCap:   50,
		RankStereo:     &off,
	})
	require.NoError(t, err)
	assert.Equal(t, mcs.AlgorithmVFLike, got.Algorithm)
	assert.Equal(t, matcher.Flags{MatchRings: true}, got.Flags)
	assert.Equal(t, 50, got.IterationCap)
	assert.Equal(t, mcs.RankingOptions{Energy: true, Fragments: true}, got.Ranking)
	assert.Nil(t, got.AtomMatcher)
	assert.Equal(t, base.MaxSolutions, got.MaxSolutions)

	_, err = mergeOptions(base, mtypes.MatchOptionsDTO{Algorithm: "nope"})
	assert.Error(t, err)
}

func TestIsZero(t *testing.T) {
	assert.True(t, isZero(mtypes.MatchOptionsDTO{}))
	off := false
	assert.False(t, isZero(mtypes.MatchOptionsDTO{RankEnergy: &off}))
}

//Personal.AI order the ending

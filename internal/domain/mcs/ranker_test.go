package mcs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/keyip-mcs/internal/domain/mcs"
	"github.com/turtacn/keyip-mcs/internal/testutil"
)

func solutions() []*mcs.Solution {
	return []*mcs.Solution{
		{BondEnergy: 700, FragmentCount: 2, StereoScore: 1},
		{BondEnergy: 350, FragmentCount: 3, StereoScore: 0},
		{BondEnergy: 350, FragmentCount: 2, StereoScore: 0},
		{BondEnergy: 350, FragmentCount: 2, StereoScore: 2},
		{BondEnergy: 700, FragmentCount: 1, StereoScore: 5},
	}
}

func snapshot(s []*mcs.Solution) []mcs.Solution {
	out := make([]mcs.Solution, len(s))
	for i := range s {
		out[i] = *s[i]
	}
	return out
}

func TestRanker_MultiKeyOrder(t *testing.T) {
	r := mcs.NewRanker(mcs.DefaultRankingOptions(), nil, testutil.NewNopLogger())
	s := solutions()
	r.Rank(s)

	got := snapshot(s)
	assert.Equal(t, 350.0, got[0].BondEnergy)
	assert.Equal(t, 2, got[0].StereoScore, "stereo refines ties left by energy and fragments")
	assert.Equal(t, 0, got[1].StereoScore)
	assert.Equal(t, 3, got[2].FragmentCount)
	assert.Equal(t, 1, got[3].FragmentCount)
	assert.Equal(t, 2, got[4].FragmentCount)
}

func TestRanker_DisabledFiltersAreSkipped(t *testing.T) {
	r := mcs.NewRanker(mcs.RankingOptions{Stereo: true}, nil, nil)
	s := solutions()
	r.Rank(s)
	assert.Equal(t, 5, s[0].StereoScore)
	assert.Equal(t, 0, s[4].StereoScore)

	r = mcs.NewRanker(mcs.RankingOptions{}, nil, nil)
	s = solutions()
	want := snapshot(s)
	r.Rank(s)
	assert.Equal(t, want, snapshot(s))
}

func TestRanker_Idempotent(t *testing.T) {
	for _, opts := range []mcs.RankingOptions{
		mcs.DefaultRankingOptions(),
		{Energy: true},
		{Fragments: true, Stereo: true},
	} {
		r := mcs.NewRanker(opts, nil, nil)
		s := solutions()
		r.Rank(s)
		once := snapshot(s)
		r.Rank(s)
		assert.Equal(t, once, snapshot(s), "%+v", opts)
	}
}

func TestRanker_Score(t *testing.T) {
	q := testutil.Chain("q", "C", "C", "O")
	tg := testutil.Chain("t", "C", "C", "O")
	m, err := mcs.MappingFromPairs([][2]int{{0, 0}, {1, 1}})
	require.NoError(t, err)

	s := &mcs.Solution{Mapping: m}
	mcs.NewRanker(mcs.DefaultRankingOptions(), nil, nil).Score(s, q, tg)

	// The C-O bond is lost on both sides.
	assert.Equal(t, 2*358.0, s.BondEnergy)
	assert.Equal(t, 4, s.FragmentCount)
	assert.Equal(t, 1, s.StereoScore)
	assert.False(t, s.StereoMismatch)
}

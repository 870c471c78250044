package clique_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/keyip-mcs/internal/domain/matcher"
	"github.com/turtacn/keyip-mcs/internal/domain/mcs/clique"
	"github.com/turtacn/keyip-mcs/internal/domain/molecule"
	"github.com/turtacn/keyip-mcs/internal/testutil"
)

func build(q, t *molecule.Molecule) *clique.Graph {
	am, bm := matcher.New(matcher.DefaultFlags())
	return clique.Build(q, t, am, bm)
}

func nodeID(g *clique.Graph, q, t int) int {
	for i := 0; i < g.Len(); i++ {
		if n := g.Node(i); n.Query == q && n.Target == t {
			return i
		}
	}
	return -1
}

func TestBuild_EdgeKinds(t *testing.T) {
	g := build(testutil.Chain("q", "C", "C"), testutil.Chain("t", "C", "C"))
	require.Equal(t, 4, g.Len())
	assert.Equal(t, clique.Stats{Nodes: 4, CEdges: 2, BondedCEdges: 2}, g.Stats())

	a, b := nodeID(g, 0, 0), nodeID(g, 1, 1)
	assert.Equal(t, clique.EdgeC, g.Kind(a, b))
	assert.True(t, g.Bonded(a, b))
	assert.Equal(t, clique.EdgeNone, g.Kind(a, nodeID(g, 0, 1)), "nodes sharing a query atom are never joined")

	g = build(testutil.Chain("q", "C", "C"), testutil.Atoms("t", "C", "C"))
	assert.Equal(t, clique.Stats{Nodes: 4, DEdges: 2}, g.Stats())
	assert.Equal(t, clique.EdgeD, g.Kind(nodeID(g, 0, 0), nodeID(g, 1, 1)))

	g = build(testutil.Atoms("q", "C", "C"), testutil.Atoms("t", "C", "C"))
	assert.Equal(t, clique.Stats{Nodes: 4, CEdges: 2}, g.Stats())
}

func TestBuild_IncompatibleBondsGiveDEdges(t *testing.T) {
	q := testutil.Chain("q", "C", "C")
	tg := testutil.Atoms("t", "C", "C")
	testutil.MustBond(tg, 0, 1, molecule.OrderDouble)

	g := build(q, tg)
	assert.Equal(t, clique.EdgeD, g.Kind(nodeID(g, 0, 0), nodeID(g, 1, 1)))

	am, bm := matcher.New(matcher.Flags{})
	g = clique.Build(q, tg, am, bm)
	assert.Equal(t, clique.EdgeC, g.Kind(nodeID(g, 0, 0), nodeID(g, 1, 1)))
}

func TestBuild_NoCompatibleAtoms(t *testing.T) {
	g := build(testutil.Atoms("q", "C"), testutil.Atoms("t", "O"))
	assert.Zero(t, g.Len())

	bk := clique.NewBronKerbosch(g, clique.NewBudget(g.Len(), -1))
	assert.Empty(t, bk.FindMaximalCliques())
	assert.False(t, bk.Truncated())

	koch := clique.NewKoch(g, clique.NewBudget(g.Len(), -1))
	assert.Empty(t, koch.MaxCliques())
	assert.False(t, koch.Truncated())
}

func TestBudget(t *testing.T) {
	assert.Equal(t, 120, clique.NewBudget(60, clique.DefaultIterationCap).Limit())
	assert.Equal(t, 1000, clique.NewBudget(600, -1).Limit())
	assert.Equal(t, 0, clique.NewBudget(5, 0).Limit())

	b := clique.NewBudgetLimit(2)
	assert.True(t, b.Spend())
	assert.True(t, b.Spend())
	assert.False(t, b.Spend())
	assert.True(t, b.Exhausted())
	assert.Equal(t, 2, b.Used())
}

func TestZeroBudgetTerminates(t *testing.T) {
	g := build(testutil.Benzene(), testutil.Naphthalene())
	finders := map[string]clique.Finder{
		"bron-kerbosch": clique.NewBronKerbosch(g, clique.NewBudgetLimit(0)),
		"koch":          clique.NewKoch(g, clique.NewBudgetLimit(0)),
	}
	for name, f := range finders {
		t.Run(name, func(t *testing.T) {
			assert.Empty(t, f.FindMaximalCliques())
			assert.True(t, f.Truncated())
			assert.Zero(t, f.Iterations())
		})
	}
}

func TestBronKerbosch_AceticAcidIdentity(t *testing.T) {
	m := testutil.AceticAcid()
	g := build(m, m)
	bk := clique.NewBronKerbosch(g, clique.NewBudgetLimit(100000))

	all := bk.FindMaximalCliques()
	require.NotEmpty(t, all)
	assert.False(t, bk.Truncated())
	for _, c := range all {
		assert.True(t, g.Consistent(c), "clique %v", c)
	}

	best := bk.MaxCliques()
	require.Len(t, best, 1)
	assert.Equal(t, []clique.Node{{0, 0}, {1, 1}, {2, 2}, {3, 3}}, g.Pairs(best[0]))
}

func TestBronKerbosch_TruncatesGracefully(t *testing.T) {
	g := build(testutil.Benzene(), testutil.Naphthalene())
	bk := clique.NewBronKerbosch(g, clique.NewBudgetLimit(10))

	cliques := bk.FindMaximalCliques()
	assert.True(t, bk.Truncated())
	assert.Equal(t, 10, bk.Iterations())
	for _, c := range cliques {
		assert.True(t, g.Consistent(c))
	}
}

func TestKoch_BenzeneInNaphthalene(t *testing.T) {
	g := build(testutil.Benzene(), testutil.Naphthalene())
	koch := clique.NewKoch(g, clique.NewBudgetLimit(100000))

	best := koch.MaxCliques()
	require.NotEmpty(t, best)
	assert.Len(t, best[0], 6)
	for _, c := range koch.FindMaximalCliques() {
		assert.True(t, g.Consistent(c), "clique %v", c)
	}
}

func TestKoch_LargeGraphUsesReachabilityCheck(t *testing.T) {
	m := testutil.Naphthalene()
	g := build(m, m)
	require.GreaterOrEqual(t, g.Len(), clique.LargeGraphThreshold)

	koch := clique.NewKoch(g, clique.NewBudgetLimit(200000))
	best := koch.MaxCliques()
	require.NotEmpty(t, best)
	assert.Len(t, best[0], 10)
	assert.True(t, g.Consistent(best[0]))
}

func TestKoch_CliquesAreConnected(t *testing.T) {
	// The two query carbons are joined only through an oxygen the target
	// lacks, so a connected mapping cannot hold both.
	q := testutil.Chain("q", "C", "O", "C")
	tg := testutil.Atoms("t", "C", "C")

	g := build(q, tg)
	koch := clique.NewKoch(g, clique.NewBudgetLimit(1000))
	for _, c := range koch.MaxCliques() {
		assert.Len(t, c, 1)
	}

	bk := clique.NewBronKerbosch(g, clique.NewBudgetLimit(1000))
	best := bk.MaxCliques()
	require.NotEmpty(t, best)
	assert.Len(t, best[0], 2, "bron-kerbosch accepts disconnected common substructures")
}

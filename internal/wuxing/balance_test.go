package wuxing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestAssignGodsReferentialTransparency: Step 9 on the same post-Step-7
// state yields identical role assignments and never writes the state.
func TestAssignGodsReferentialTransparency(t *testing.T) {
	in := chartInput("Bing-Yin", "Ji-Hai", "Ding-Chou", "Ding-Wei", 40)
	st, err := NewEngine().AnalyzeUpToStep(in, 7)
	require.NoError(t, err)

	totals := st.elementTotals()

	before := make(map[NodeID]float64)
	for _, n := range st.Nodes {
		before[n.ID] = n.Points
	}

	first := assignGods(st, totals, Fire)
	second := assignGods(st, totals, Fire)
	require.Equal(t, first, second)

	for _, n := range st.Nodes {
		require.Equal(t, before[n.ID], n.Points, "node %s mutated by simulator", n.ID)
	}
}

// TestAssignGodsDistinctRoles: the five roles always land on five distinct
// elements.
func TestAssignGodsDistinctRoles(t *testing.T) {
	charts := []*Input{
		chartInput("Bing-Yin", "Ji-Hai", "Ding-Chou", "Ding-Wei", 40),
		chartInput("Jia-Zi", "Bing-Wu", "Wu-Shen", "Ren-Mao", 25),
		chartInput("Wu-Xu", "Ji-Chou", "Wu-Chen", "Ji-Wei", 40),
	}
	for _, in := range charts {
		st, err := NewEngine().AnalyzeUpToStep(in, 7)
		require.NoError(t, err)
		totals := st.elementTotals()
		gods := assignGods(st, totals, st.Pillars[PillarDay].Stem.Element())
		require.True(t, distinctElements(gods.Useful, gods.Favorable, gods.Unfavorable, gods.Enemy, gods.Idle),
			"roles collide: %+v", gods)
	}
}

// TestAssignGodsDegenerateChart: with every point wiped out the simulator
// guards its divisions and still assigns five distinct roles.
func TestAssignGodsDegenerateChart(t *testing.T) {
	in := chartInput("Jia-Zi", "Bing-Wu", "Wu-Shen", "Ren-Mao", 25)
	st, err := NewEngine().AnalyzeUpToStep(in, 7)
	require.NoError(t, err)

	for _, n := range st.Nodes {
		n.Points = 0
	}
	for _, bn := range st.BonusNodes {
		bn.Points = 0
	}

	gods := assignGods(st, [5]float64{}, Earth)
	require.True(t, distinctElements(gods.Useful, gods.Favorable, gods.Unfavorable, gods.Enemy, gods.Idle),
		"roles collide on degenerate chart: %+v", gods)
}

// TestSimulateStemSameElementPair: an element facing only its own kind sees
// no interaction at all.
func TestSimulateStemSameElementPair(t *testing.T) {
	// All-Earth visible chart.
	in := chartInput("Wu-Xu", "Ji-Chou", "Wu-Chen", "Ji-Wei", 40)
	st, err := NewState(in)
	require.NoError(t, err)

	base := st.elementTotals()
	sigmaEarth := simulateStem(st, base, Earth, StemWu)

	// With every visible node Earth, the Earth stem's simulation leaves the
	// distribution untouched; its sigma is the baseline skew plus the
	// dominance penalty.
	sigmaAgain := simulateStem(st, base, Earth, StemJi)
	require.Equal(t, sigmaEarth, sigmaAgain)
}

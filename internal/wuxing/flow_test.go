package wuxing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestFlowConsolidation: a bonus node sharing its native position's element
// is coupled into one flow participant with proportional writeback.
func TestFlowConsolidation(t *testing.T) {
	in := chartInput("Jia-Zi", "Bing-Wu", "Wu-Chen", "Geng-Shen", 40)
	st, err := NewState(in)
	require.NoError(t, err)

	// A Water bonus sitting on Zi (Water main qi) must consolidate; a Fire
	// bonus there must stand alone.
	st.BonusNodes = append(st.BonusNodes,
		&BonusNode{
			ID:         "YP.EB+Water_SIX_HARMONIES",
			SourceNode: "YP.EB",
			Pillar:     PillarYear,
			Slot:       SlotEB,
			Element:    Water,
			Polarity:   Yang,
			Points:     4,
			Source:     TagSixHarmonies,
		},
		&BonusNode{
			ID:         "YP.EB+Fire_SIX_HARMONIES",
			SourceNode: "YP.EB",
			Pillar:     PillarYear,
			Slot:       SlotEB,
			Element:    Fire,
			Polarity:   Yang,
			Points:     4,
			Source:     TagSixHarmonies,
		},
	)

	slots, err := st.buildFlowSlots()
	require.NoError(t, err)

	require.Equal(t, "YP.EB+Water_SIX_HARMONIES+consolidated", st.BonusNodes[0].ID)
	require.Equal(t, "YP.EB+Fire_SIX_HARMONIES", st.BonusNodes[1].ID)

	var coupled *flowSlot
	for _, s := range slots {
		if s.native != nil && s.native.ID == "YP.EB" {
			coupled = s
		}
	}
	require.NotNil(t, coupled)
	require.Len(t, coupled.bonuses, 1)
	require.InDelta(t, 14.0, coupled.points(), 1e-9)

	// Proportional writeback: 10:4 split keeps its ratio.
	coupled.setPoints(7)
	require.InDelta(t, 5.0, st.node(NodeID("YP.EB")).Points, 1e-9)
	require.InDelta(t, 2.0, st.BonusNodes[0].Points, 1e-9)
}

// TestFlowExcludesSamePillarNativePair: the native stem/branch pair of one
// pillar never reappears in the Step-7 log.
func TestFlowExcludesSamePillarNativePair(t *testing.T) {
	in := chartInput("Bing-Yin", "Ji-Hai", "Ding-Chou", "Ding-Wei", 40)
	st, err := NewEngine().AnalyzeUpToStep(in, 7)
	require.NoError(t, err)

	isNative := func(id string) (PillarPos, bool) {
		for _, p := range PillarOrder {
			if id == string(makeNodeID(p, SlotHS)) || id == string(makeNodeID(p, SlotEB)) {
				return p, true
			}
		}
		return 0, false
	}

	for _, e := range st.Interactions {
		if e.Type != TagNaturalFlow {
			continue
		}
		pa, okA := isNative(e.NodeA)
		pb, okB := isNative(e.NodeB)
		if okA && okB && pa == pb {
			t.Fatalf("same-pillar native pair flowed: %+v", e)
		}
	}
}

// TestFlowExcludesHiddenStems: hidden stems never participate in Step 7.
func TestFlowExcludesHiddenStems(t *testing.T) {
	in := chartInput("Bing-Yin", "Ji-Hai", "Ding-Chou", "Ding-Wei", 40)
	st, err := NewEngine().AnalyzeUpToStep(in, 7)
	require.NoError(t, err)

	for _, e := range st.Interactions {
		if e.Type != TagNaturalFlow {
			continue
		}
		if strings.Contains(e.NodeA, ".h") || strings.Contains(e.NodeB, ".h") {
			t.Fatalf("hidden stem in natural flow: %+v", e)
		}
	}
}

// TestFlowClampsAtZero: no node goes negative through Step 7.
func TestFlowClampsAtZero(t *testing.T) {
	in := chartInput("Geng-Shen", "Geng-You", "Bing-Xu", "Xin-Chou", 30)
	st, err := NewEngine().AnalyzeUpToStep(in, 7)
	require.NoError(t, err)

	for _, n := range st.Nodes {
		require.GreaterOrEqual(t, n.Points, 0.0, "node %s", n.ID)
	}
	for _, bn := range st.BonusNodes {
		require.GreaterOrEqual(t, bn.Points, 0.0, "bonus %s", bn.ID)
	}
}

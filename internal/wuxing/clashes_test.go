package wuxing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestSixHarmAdjacency: the You->Xu harm fires only when the two branches
// occupy adjacent pillars.
func TestSixHarmAdjacency(t *testing.T) {
	countHarms := func(in *Input) int {
		st, err := NewState(in)
		require.NoError(t, err)
		require.NoError(t, st.runStep(4))
		n := 0
		for _, e := range st.Interactions {
			if e.Type == TagSixHarm {
				n++
			}
		}
		return n
	}

	adjacent := chartInput("Bing-Si", "Xin-You", "Wu-Xu", "Ji-Wei", 40)
	require.Equal(t, 1, countHarms(adjacent))

	apart := chartInput("Xin-You", "Bing-Si", "Wu-Xu", "Ji-Wei", 40)
	require.Equal(t, 0, countHarms(apart))
}

// TestSixHarmDamage: a harm on fresh nodes with no attention registered
// takes the full 0.20/0.40 rates at multiplier 1.
func TestSixHarmDamage(t *testing.T) {
	in := chartInput("Bing-Si", "Xin-You", "Wu-Xu", "Ji-Wei", 40)
	st, err := NewState(in)
	require.NoError(t, err)
	require.NoError(t, st.runStep(4))

	// You (Metal 10) attacks Xu (Earth 8): basis 8.
	require.InDelta(t, 10-0.20*8, st.node(NodeID("MP.EB")).Points, 1e-9)
	require.InDelta(t, 8-0.40*8, st.node(NodeID("DP.EB")).Points, 1e-9)
}

// TestSixClashSameElementLogOnly: Chen-Xu logs but deals no damage.
func TestSixClashSameElementLogOnly(t *testing.T) {
	in := chartInput("Jia-Chen", "Wu-Xu", "Geng-Zi", "Jia-Shen", 40)
	st, err := NewState(in)
	require.NoError(t, err)
	require.NoError(t, st.runStep(4))

	var sawClash bool
	for _, e := range st.Interactions {
		if e.Type == TagSixClash {
			sawClash = true
			require.True(t, e.LogOnly, "same-element clash dealt damage: %+v", e)
		}
	}
	require.True(t, sawClash)
	require.Equal(t, 8.0, st.node(NodeID("YP.EB")).Points)
	require.Equal(t, 8.0, st.node(NodeID("MP.EB")).Points)
}

// TestStemClash: Geng strikes Jia across adjacent pillars.
func TestStemClash(t *testing.T) {
	in := chartInput("Geng-Zi", "Jia-Chou", "Wu-Chen", "Ji-Wei", 40)
	st, err := NewState(in)
	require.NoError(t, err)
	require.NoError(t, st.runStep(5))

	// basis 10, gap multiplier 1.0: controller -2.5, controlled -5.0.
	require.InDelta(t, 7.5, st.node(NodeID("YP.HS")).Points, 1e-9)
	require.InDelta(t, 5.0, st.node(NodeID("MP.HS")).Points, 1e-9)

	count := 0
	for _, e := range st.Interactions {
		if e.Type == TagStemClash {
			count++
			require.Equal(t, "YP.HS", e.Attacker)
			require.Equal(t, "MP.HS", e.Victim)
		}
	}
	require.Equal(t, 1, count)
}

// TestPunishmentSelfLogOnly: a doubled You only logs.
func TestPunishmentSelfLogOnly(t *testing.T) {
	in := chartInput("Xin-You", "Xin-You", "Jia-Zi", "Bing-Chen", 40)
	st, err := NewState(in)
	require.NoError(t, err)
	require.NoError(t, st.runStep(4))

	var sawSelf bool
	for _, e := range st.Interactions {
		if e.Type == TagPunishment && e.Details == "self" {
			sawSelf = true
			require.True(t, e.LogOnly)
		}
	}
	require.True(t, sawSelf, "self punishment not logged")
}

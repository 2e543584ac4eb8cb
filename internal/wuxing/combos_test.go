package wuxing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestThreeMeetingsNullification: with the Si-Wu-Wei Fire trio present, no
// Fire half meeting survives and the trio is the only weight on the inner
// branches.
func TestThreeMeetingsNullification(t *testing.T) {
	in := chartInput("Bing-Si", "Ding-Wu", "Ji-Wei", "Geng-Shen", 40)
	st, err := NewEngine().AnalyzeUpToStep(in, 2)
	require.NoError(t, err)

	var sawTrio bool
	for _, e := range st.Interactions {
		switch e.Type {
		case TagThreeMeetings:
			sawTrio = true
			require.Equal(t, "Fire", e.ResultElement)
		case TagHalfMeetings:
			t.Fatalf("nullified half meeting emitted: %+v", e)
		}
	}
	require.True(t, sawTrio, "Si-Wu-Wei trio not detected")

	// Wu and Wei take part in nothing but the trio.
	for _, id := range []NodeID{"MP.EB", "DP.EB"} {
		entries := st.Attention[id]
		require.Len(t, entries, 1, "attention at %s", id)
		require.Equal(t, TagThreeMeetings, entries[0].Type)
		require.Equal(t, 63.0, entries[0].Weight)
	}
}

// TestThreeCombosTransformation: Yin-Wu-Xu makes Fire, and a visible Fire
// stem multiplies the bonus by 2.5 against the same shape without one.
func TestThreeCombosTransformation(t *testing.T) {
	run := func(y, m, d, h string) (*State, float64) {
		st, err := NewEngine().AnalyzeUpToStep(chartInput(y, m, d, h, 40), 2)
		require.NoError(t, err)
		sum := 0.0
		for _, bn := range st.BonusNodes {
			if bn.Source == TagThreeCombos {
				sum += bn.Points
			}
		}
		return st, sum
	}

	stHot, withFire := run("Bing-Yin", "Ding-Wu", "Jia-Xu", "Geng-Shen")
	_, without := run("Jia-Yin", "Ren-Wu", "Jia-Xu", "Geng-Shen")

	require.Greater(t, withFire, 0.0)
	require.Greater(t, without, 0.0)
	require.GreaterOrEqual(t, withFire/without, 2.0)
	require.InDelta(t, 2.5, withFire/without, 1e-9)

	var sawTransformed bool
	for _, e := range stHot.Interactions {
		if e.Type == TagThreeCombos && e.Transformed {
			sawTransformed = true
		}
	}
	require.True(t, sawTransformed, "transformation flag missing from log")

	// Post-Step-1 basis is 5.6; the per-node 3.5 points spread over shares
	// 1/3 (Yin also carries the Yin-Shen clash and punishment), 1 (Wu) and
	// 42/54 (Xu also carries the Shen-Xu half meeting).
	require.InDelta(t, 3.5*(1.0/3+1+42.0/54), withFire, 0.01)
}

// TestComboDeduplication: a pair combo shared by two pillars is emitted once.
func TestComboDeduplication(t *testing.T) {
	// Chou-Zi six harmony; the only other positive is the Zi-Chou half meeting.
	in := chartInput("Jia-Zi", "Ji-Chou", "Geng-Shen", "Jia-Wu", 40)
	st, err := NewEngine().AnalyzeUpToStep(in, 2)
	require.NoError(t, err)

	count := 0
	for _, e := range st.Interactions {
		if e.Type == TagSixHarmonies {
			count++
		}
	}
	require.Equal(t, 1, count, "six harmony emitted more than once")
}

// TestStemComboConsumption: a stem consumed by one combo cannot pair again.
func TestStemComboConsumption(t *testing.T) {
	// Jia-Ji twice over: only one pairing may fire, taken in priority order.
	in := chartInput("Jia-Zi", "Ji-Mao", "Ji-You", "Geng-Shen", 40)
	st, err := NewEngine().AnalyzeUpToStep(in, 3)
	require.NoError(t, err)

	count := 0
	for _, e := range st.Interactions {
		if e.Type == TagStemCombos {
			count++
			require.Equal(t, "Earth", e.ResultElement)
		}
	}
	require.Equal(t, 1, count)

	// Two bonus nodes, one per participating stem.
	bonus := 0
	for _, bn := range st.BonusNodes {
		if bn.Source == TagStemCombos {
			bonus++
			require.Equal(t, SlotHS, bn.Slot)
			require.True(t, strings.Contains(bn.ID, ".HS+Earth_STEM_COMBOS"), "id %s", bn.ID)
		}
	}
	require.Equal(t, 2, bonus)
}

package wuxing

// runSeasonal is Step 6: every node and every bonus node is scaled by its
// standing against the season element. The multiplier is recorded on primary
// nodes for audit.
func (st *State) runSeasonal() {
	for _, n := range st.Nodes {
		mult := seasonalMultipliers[seasonalStateFor(st.Season, n.Element)]
		n.Points *= mult
		n.SeasonalMultiplier = mult
	}
	for _, bn := range st.BonusNodes {
		bn.Points *= seasonalMultipliers[seasonalStateFor(st.Season, bn.Element)]
	}

	st.log(Interaction{
		Step:          6,
		Type:          TagSeasonal,
		ResultElement: st.Season.String(),
		Details:       "seasonal multipliers applied",
	})
}

package wuxing

import (
	"math"
	"sort"
)

// ElementSummary is one element's share of the chart after Step 8.
type ElementSummary struct {
	Total   float64 `json:"total"`
	Percent float64 `json:"percent"`
	Rank    int     `json:"rank"`
}

// round2 rounds to two decimals with round-half-to-even.
func round2(x float64) float64 {
	return math.RoundToEven(x*100) / 100
}

// elementTotals sums every primary and bonus node by element.
func (st *State) elementTotals() [5]float64 {
	var totals [5]float64
	for _, n := range st.Nodes {
		totals[n.Element] += n.Points
	}
	for _, bn := range st.BonusNodes {
		totals[bn.Element] += bn.Points
	}
	return totals
}

// aggregate is Step 8: per-element totals, percentages and ranks. A
// degenerate all-zero chart reports zero percent everywhere with ranks in
// enumeration order.
func (st *State) aggregate() ([5]float64, map[string]ElementSummary) {
	totals := st.elementTotals()

	grand := 0.0
	for _, t := range totals {
		grand += t
	}

	order := []Element{Wood, Fire, Earth, Metal, Water}
	sort.SliceStable(order, func(i, j int) bool {
		return totals[order[i]] > totals[order[j]]
	})

	summary := make(map[string]ElementSummary, len(Elements))
	ranks := [5]int{}
	for i, e := range order {
		ranks[e] = i + 1
	}
	for _, e := range Elements {
		pct := 0.0
		if grand > 0 {
			pct = round2(totals[e] / grand * 100)
		}
		summary[e.String()] = ElementSummary{
			Total:   totals[e],
			Percent: pct,
			Rank:    ranks[e],
		}
	}

	return totals, summary
}

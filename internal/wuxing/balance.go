package wuxing

import (
	"math"
	"sort"
)

// Gods is the assignment of the five roles to the five elements.
type Gods struct {
	Useful      Element `json:"useful"`
	Favorable   Element `json:"favorable"`
	Unfavorable Element `json:"unfavorable"`
	Enemy       Element `json:"enemy"`
	Idle        Element `json:"idle"`
}

// simulateStem injects a hovering 10-point node of the stem's element and
// runs the Step-7 half-rate rule against each visible native node at a fixed
// gap of 1, accumulating per-element deltas on local scratch. The shared
// state is never written.
func simulateStem(st *State, base [5]float64, dm Element, s Stem) float64 {
	const mult = 0.75

	hover := 10.0
	he := s.Element()
	var deltas [5]float64

	for _, n := range st.Nodes {
		if n.Slot != SlotHS && n.Slot != SlotEB {
			continue
		}
		if n.Element == he {
			continue
		}
		basis := math.Min(hover, n.Points)
		if basis <= 0 {
			continue
		}

		switch relationBetween(he, n.Element) {
		case RelationHSProducesEB:
			loss := 0.10 * basis * mult
			hover -= loss
			deltas[he] -= loss
			deltas[n.Element] += 0.15 * basis * mult
		case RelationEBProducesHS:
			gain := 0.15 * basis * mult
			deltas[n.Element] -= 0.10 * basis * mult
			hover += gain
			deltas[he] += gain
		case RelationHSControlsEB:
			loss := 0.10 * basis * mult
			hover -= loss
			deltas[he] -= loss
			deltas[n.Element] -= 0.15 * basis * mult
		case RelationEBControlsHS:
			loss := 0.15 * basis * mult
			deltas[n.Element] -= 0.10 * basis * mult
			hover -= loss
			deltas[he] -= loss
		}
		if hover < 0 {
			hover = 0
		}
	}

	var totals [5]float64
	grand := 0.0
	for i := range totals {
		t := base[i] + deltas[i]
		if t < 0 {
			t = 0
		}
		totals[i] = t
		grand += t
	}
	if grand == 0 {
		return math.Inf(1)
	}

	sum := 0.0
	for i := range totals {
		d := totals[i]/grand*100 - 20
		sum += d * d
	}
	sigma := math.Sqrt(sum / 5)

	dmPct := totals[dm] / grand * 100
	if dmPct < 8 {
		sigma += 5
	} else if dmPct > 40 {
		sigma += 3
	}
	return sigma
}

// assignGods is Step 9: ten counter-factual stem injections scored by how far
// the resulting distribution sits from a flat 20% split, collapsed to one
// score per element, then mapped onto the five roles.
func assignGods(st *State, base [5]float64, dm Element) Gods {
	var stemSigma [10]float64
	for s := StemJia; s <= StemGui; s++ {
		stemSigma[s] = simulateStem(st, base, dm, s)
	}

	var elemSigma [5]float64
	for _, e := range Elements {
		elemSigma[e] = (stemSigma[2*int(e)] + stemSigma[2*int(e)+1]) / 2
	}

	order := []Element{Wood, Fire, Earth, Metal, Water}
	sort.SliceStable(order, func(i, j int) bool {
		return elemSigma[order[i]] < elemSigma[order[j]]
	})

	useful, unfavorable := order[0], order[4]
	favorable := useful.ProducedBy()
	enemy := unfavorable.ProducedBy()

	if distinctElements(useful, favorable, enemy, unfavorable) {
		used := [5]bool{}
		for _, e := range []Element{useful, favorable, enemy, unfavorable} {
			used[e] = true
		}
		idle := useful
		for _, e := range Elements {
			if !used[e] {
				idle = e
				break
			}
		}
		return Gods{
			Useful:      useful,
			Favorable:   favorable,
			Unfavorable: unfavorable,
			Enemy:       enemy,
			Idle:        idle,
		}
	}

	return Gods{
		Useful:      useful,
		Favorable:   order[1],
		Idle:        order[2],
		Enemy:       order[3],
		Unfavorable: unfavorable,
	}
}

func distinctElements(es ...Element) bool {
	var seen [5]bool
	for _, e := range es {
		if seen[e] {
			return false
		}
		seen[e] = true
	}
	return true
}

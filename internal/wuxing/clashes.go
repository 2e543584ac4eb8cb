package wuxing

import (
	"math"
	"sort"
)

// negInstance is one negative branch interaction bound to pillar columns.
type negInstance struct {
	Tag      string
	Attacker PillarPos
	Victim   PillarPos
	Pillars  []PillarPos
	Branches []Branch
	LogOnly  bool
	Details  string
}

func (st *State) minPriority(pillars []PillarPos) int {
	m := len(PillarOrder)
	for _, p := range pillars {
		if idx := st.priorityIndex(p); idx < m {
			m = idx
		}
	}
	return m
}

// sortNegInstances orders instances by the best priority rank among their
// pillars, keeping enumeration order for ties.
func (st *State) sortNegInstances(list []negInstance) {
	sort.SliceStable(list, func(i, j int) bool {
		return st.minPriority(list[i].Pillars) < st.minPriority(list[j].Pillars)
	})
}

// applyNegInstance deals the attention-dampened damage of one directed pair,
// or just logs when the instance carries no damage.
func (st *State) applyNegInstance(step int, ni negInstance) {
	if ni.LogOnly {
		st.log(Interaction{
			Step:     step,
			Type:     ni.Tag,
			Nodes:    nodeIDsOf(st, ni.Pillars),
			Branches: branchNamesOf(ni.Branches),
			LogOnly:  true,
			Details:  ni.Details,
		})
		return
	}

	att := st.ebNode(ni.Attacker)
	vic := st.ebNode(ni.Victim)

	basis := math.Min(att.Points, vic.Points)
	mult := gapMultiplier(pillarGap(ni.Attacker, ni.Victim))
	rate := negativeRates[ni.Tag]

	attLoss := basis * rate.Attacker * mult * st.attentionShare(att.ID, ni.Tag)
	vicLoss := basis * rate.Victim * mult * st.attentionShare(vic.ID, ni.Tag)
	att.damage(attLoss)
	vic.damage(vicLoss)

	st.log(Interaction{
		Step:          step,
		Type:          ni.Tag,
		Branches:      branchNamesOf(ni.Branches),
		Basis:         basis,
		GapMultiplier: mult,
		Attacker:      string(att.ID),
		Victim:        string(vic.ID),
		Details:       ni.Details,
	})
}

// directedInstances enumerates the column assignments of one attacker/victim
// branch pair.
func (st *State) directedInstances(tag string, att, vic Branch, details string) []negInstance {
	var out []negInstance
	for _, ca := range st.columnsWith(att) {
		for _, cb := range st.columnsWith(vic) {
			if ca == cb {
				continue
			}
			out = append(out, negInstance{
				Tag:      tag,
				Attacker: ca,
				Victim:   cb,
				Pillars:  []PillarPos{ca, cb},
				Branches: []Branch{att, vic},
				Details:  details,
			})
		}
	}
	return out
}

// runBranchNegatives is Step 4: clashes, punishments, harms and destructions
// between branch main-qi nodes, in fixed family order. Branches are never
// consumed; attention shares dampen repeated damage.
func (st *State) runBranchNegatives() {
	var clashes []negInstance
	for _, e := range sixClashes {
		if e.LogOnly {
			for _, ca := range st.columnsWith(e.A) {
				for _, cb := range st.columnsWith(e.B) {
					if ca == cb {
						continue
					}
					clashes = append(clashes, negInstance{
						Tag:      TagSixClash,
						Pillars:  []PillarPos{ca, cb},
						Branches: []Branch{e.A, e.B},
						LogOnly:  true,
						Details:  "same-element clash",
					})
				}
			}
			continue
		}
		vic := e.A
		if e.Attacker == e.A {
			vic = e.B
		}
		clashes = append(clashes, st.directedInstances(TagSixClash, e.Attacker, vic, "")...)
	}
	st.sortNegInstances(clashes)
	for _, ni := range clashes {
		st.applyNegInstance(4, ni)
	}

	var punishments []negInstance
	for _, pr := range punishmentShiPairs {
		punishments = append(punishments, st.directedInstances(TagPunishment, pr.Attacker, pr.Victim, "shi")...)
	}
	punishments = append(punishments,
		st.directedInstances(TagPunishment, punishmentEnPair.Attacker, punishmentEnPair.Victim, "en")...)
	for _, c0 := range st.columnsWith(punishmentWuLiTrio[0]) {
		for _, c1 := range st.columnsWith(punishmentWuLiTrio[1]) {
			if c1 == c0 {
				continue
			}
			for _, c2 := range st.columnsWith(punishmentWuLiTrio[2]) {
				if c2 == c0 || c2 == c1 {
					continue
				}
				punishments = append(punishments, negInstance{
					Tag:      TagPunishment,
					Pillars:  []PillarPos{c0, c1, c2},
					Branches: punishmentWuLiTrio,
					LogOnly:  true,
					Details:  "wu_li",
				})
			}
		}
	}
	for _, b := range punishmentSelf {
		cols := st.columnsWith(b)
		if len(cols) < 2 {
			continue
		}
		punishments = append(punishments, negInstance{
			Tag:      TagPunishment,
			Pillars:  cols,
			Branches: []Branch{b, b},
			LogOnly:  true,
			Details:  "self",
		})
	}
	st.sortNegInstances(punishments)
	for _, ni := range punishments {
		st.applyNegInstance(4, ni)
	}

	var harms []negInstance
	for _, pr := range sixHarms {
		for _, ni := range st.directedInstances(TagSixHarm, pr.Attacker, pr.Victim, "") {
			if pillarGap(ni.Attacker, ni.Victim) != 0 {
				continue
			}
			harms = append(harms, ni)
		}
	}
	st.sortNegInstances(harms)
	for _, ni := range harms {
		st.applyNegInstance(4, ni)
	}

	var destr []negInstance
	for _, e := range destructions {
		if e.LogOnly {
			for _, ca := range st.columnsWith(e.Attacker) {
				for _, cb := range st.columnsWith(e.Victim) {
					if ca == cb {
						continue
					}
					destr = append(destr, negInstance{
						Tag:      TagDestruction,
						Pillars:  []PillarPos{ca, cb},
						Branches: []Branch{e.Attacker, e.Victim},
						LogOnly:  true,
						Details:  "same-element destruction",
					})
				}
			}
			continue
		}
		destr = append(destr, st.directedInstances(TagDestruction, e.Attacker, e.Victim, "")...)
	}
	st.sortNegInstances(destr)
	for _, ni := range destr {
		st.applyNegInstance(4, ni)
	}
}

// runStemClashes is Step 5: the four controller stems strike their
// counterpart across pillars. No attention spread; each pair fires once.
func (st *State) runStemClashes() {
	for i := 0; i < len(PillarOrder); i++ {
		for j := i + 1; j < len(PillarOrder); j++ {
			a := st.hsNode(PillarOrder[i])
			b := st.hsNode(PillarOrder[j])

			var controller, controlled *Node
			if stemClashControllers[a.Stem] == b.Stem {
				controller, controlled = a, b
			} else if stemClashControllers[b.Stem] == a.Stem {
				controller, controlled = b, a
			} else {
				continue
			}

			basis := math.Min(controller.Points, controlled.Points)
			mult := gapMultiplier(pillarGap(controller.Pillar, controlled.Pillar))
			rate := negativeRates[TagStemClash]

			controller.damage(basis * rate.Attacker * mult)
			controlled.damage(basis * rate.Victim * mult)

			st.log(Interaction{
				Step:          5,
				Type:          TagStemClash,
				Basis:         basis,
				GapMultiplier: mult,
				Attacker:      string(controller.ID),
				Victim:        string(controlled.ID),
			})
		}
	}
}

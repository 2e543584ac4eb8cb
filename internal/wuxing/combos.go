package wuxing

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// comboInstance is one detected branch configuration bound to concrete
// pillar columns.
type comboInstance struct {
	Tag       string
	Element   Element
	Pillars   []PillarPos // ascending column order
	Branches  []Branch    // aligned with Pillars
	Nullified bool
	rank      int // emission strength rank, positives only
}

func (ci *comboInstance) key() string {
	names := make([]string, len(ci.Pillars))
	for i, p := range ci.Pillars {
		names[i] = p.String()
	}
	return ci.Tag + "|" + strings.Join(names, ",") + "|" + comboKey(ci.Branches)
}

func (ci *comboInstance) involves(p PillarPos) bool {
	for _, q := range ci.Pillars {
		if q == p {
			return true
		}
	}
	return false
}

func (ci *comboInstance) branchAt(p PillarPos) Branch {
	for i, q := range ci.Pillars {
		if q == p {
			return ci.Branches[i]
		}
	}
	return 0
}

// hasBranchSubset reports whether every branch of sub occurs in ci.
func (ci *comboInstance) hasBranchSubset(sub *comboInstance) bool {
	for _, b := range sub.Branches {
		found := false
		for _, c := range ci.Branches {
			if b == c {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// columnsWith lists the pillar columns occupied by a branch, ascending.
func (st *State) columnsWith(b Branch) []PillarPos {
	var cols []PillarPos
	for _, p := range PillarOrder {
		if st.branchAt(p) == b {
			cols = append(cols, p)
		}
	}
	return cols
}

// findComboInstances enumerates every assignment of a table's branches to
// distinct pillar columns.
func (st *State) findComboInstances(tag string, rank int, entries []comboEntry) []*comboInstance {
	var out []*comboInstance
	for _, e := range entries {
		switch len(e.Branches) {
		case 2:
			for _, c0 := range st.columnsWith(e.Branches[0]) {
				for _, c1 := range st.columnsWith(e.Branches[1]) {
					if c0 == c1 {
						continue
					}
					out = append(out, newComboInstance(tag, rank, e.Element,
						[]PillarPos{c0, c1}, []Branch{e.Branches[0], e.Branches[1]}))
				}
			}
		case 3:
			for _, c0 := range st.columnsWith(e.Branches[0]) {
				for _, c1 := range st.columnsWith(e.Branches[1]) {
					if c1 == c0 {
						continue
					}
					for _, c2 := range st.columnsWith(e.Branches[2]) {
						if c2 == c0 || c2 == c1 {
							continue
						}
						out = append(out, newComboInstance(tag, rank, e.Element,
							[]PillarPos{c0, c1, c2}, []Branch{e.Branches[0], e.Branches[1], e.Branches[2]}))
					}
				}
			}
		}
	}
	return out
}

func newComboInstance(tag string, rank int, el Element, pillars []PillarPos, branches []Branch) *comboInstance {
	ci := &comboInstance{Tag: tag, Element: el, Pillars: pillars, Branches: branches, rank: rank}
	sort.Sort(byPillar{ci})
	return ci
}

type byPillar struct{ ci *comboInstance }

func (s byPillar) Len() int { return len(s.ci.Pillars) }
func (s byPillar) Less(i, j int) bool {
	return s.ci.Pillars[i] < s.ci.Pillars[j]
}
func (s byPillar) Swap(i, j int) {
	s.ci.Pillars[i], s.ci.Pillars[j] = s.ci.Pillars[j], s.ci.Pillars[i]
	s.ci.Branches[i], s.ci.Branches[j] = s.ci.Branches[j], s.ci.Branches[i]
}

// attInstance is a negative interaction detected in the pre-scan; it only
// contributes attention weight in Step 2 and deals its damage in Step 4.
type attInstance struct {
	Tag     string
	Pillars []PillarPos
}

// findNegativeAttention enumerates the negative interactions that spread
// attention: clashes, destructions, damaging punishments and complete
// punishment trios, and harms between adjacent pillars.
func (st *State) findNegativeAttention() []attInstance {
	var out []attInstance

	for _, e := range sixClashes {
		for _, ca := range st.columnsWith(e.A) {
			for _, cb := range st.columnsWith(e.B) {
				if ca == cb {
					continue
				}
				out = append(out, attInstance{TagSixClash, []PillarPos{ca, cb}})
			}
		}
	}

	for _, e := range destructions {
		for _, ca := range st.columnsWith(e.Attacker) {
			for _, cb := range st.columnsWith(e.Victim) {
				if ca == cb {
					continue
				}
				out = append(out, attInstance{TagDestruction, []PillarPos{ca, cb}})
			}
		}
	}

	for _, pr := range punishmentShiPairs {
		for _, ca := range st.columnsWith(pr.Attacker) {
			for _, cb := range st.columnsWith(pr.Victim) {
				if ca == cb {
					continue
				}
				out = append(out, attInstance{TagPunishment, []PillarPos{ca, cb}})
			}
		}
	}
	for _, ca := range st.columnsWith(punishmentEnPair.Attacker) {
		for _, cb := range st.columnsWith(punishmentEnPair.Victim) {
			if ca == cb {
				continue
			}
			out = append(out, attInstance{TagPunishment, []PillarPos{ca, cb}})
		}
	}
	for _, c0 := range st.columnsWith(punishmentWuLiTrio[0]) {
		for _, c1 := range st.columnsWith(punishmentWuLiTrio[1]) {
			if c1 == c0 {
				continue
			}
			for _, c2 := range st.columnsWith(punishmentWuLiTrio[2]) {
				if c2 == c0 || c2 == c1 {
					continue
				}
				out = append(out, attInstance{TagPunishment, []PillarPos{c0, c1, c2}})
			}
		}
	}

	for _, pr := range sixHarms {
		for _, ca := range st.columnsWith(pr.Attacker) {
			for _, cb := range st.columnsWith(pr.Victim) {
				if ca == cb || pillarGap(ca, cb) != 0 {
					continue
				}
				out = append(out, attInstance{TagSixHarm, []PillarPos{ca, cb}})
			}
		}
	}

	return out
}

// runBranchCombos is Step 2: pre-scan, trio nullification, attention map,
// then bonus emission in pillar-priority order.
func (st *State) runBranchCombos() {
	// Phase A: pre-scan positives in strength order, plus negatives for
	// their attention weight.
	var positives []*comboInstance
	positives = append(positives, st.findComboInstances(TagThreeMeetings, 0, threeMeetings)...)
	positives = append(positives, st.findComboInstances(TagThreeCombos, 1, threeCombos)...)
	positives = append(positives, st.findComboInstances(TagSixHarmonies, 2, sixHarmonies)...)
	positives = append(positives, st.findComboInstances(TagHalfMeetings, 3, halfMeetings)...)
	positives = append(positives, st.findComboInstances(TagArchedCombos, 4, archedCombos)...)

	negatives := st.findNegativeAttention()

	// Phase B: a full trio suppresses its two-branch subsets. Meetings
	// nullify half meetings and six harmonies; combos nullify arched combos.
	for _, trio := range positives {
		switch trio.Tag {
		case TagThreeMeetings:
			for _, pair := range positives {
				if (pair.Tag == TagHalfMeetings || pair.Tag == TagSixHarmonies) && trio.hasBranchSubset(pair) {
					pair.Nullified = true
				}
			}
		case TagThreeCombos:
			for _, pair := range positives {
				if pair.Tag == TagArchedCombos && trio.hasBranchSubset(pair) {
					pair.Nullified = true
				}
			}
		}
	}

	// Phase C: attention map.
	for _, ci := range positives {
		if ci.Nullified {
			continue
		}
		for _, p := range ci.Pillars {
			st.addAttention(makeNodeID(p, SlotEB), ci.Tag)
		}
	}
	for _, ai := range negatives {
		for _, p := range ai.Pillars {
			st.addAttention(makeNodeID(p, SlotEB), ai.Tag)
		}
	}

	// Phase D: emission in pillar-priority order, strongest combos first,
	// deduplicated across pillars.
	seen := make(map[string]bool)
	for _, p := range st.PillarPriority {
		var cands []*comboInstance
		for _, ci := range positives {
			if !ci.Nullified && ci.involves(p) {
				cands = append(cands, ci)
			}
		}
		sort.SliceStable(cands, func(i, j int) bool { return cands[i].rank < cands[j].rank })

		for _, ci := range cands {
			k := ci.key()
			if seen[k] {
				continue
			}
			seen[k] = true
			st.emitCombo(ci)
		}
	}
}

// emitCombo computes a combo's bonus points and spreads them over the
// participating branches by attention share.
func (st *State) emitCombo(ci *comboInstance) {
	basis := math.Inf(1)
	for _, p := range ci.Pillars {
		basis = math.Min(basis, st.ebNode(p).Points)
	}

	var gap int
	if len(ci.Pillars) == 3 {
		span := int(ci.Pillars[len(ci.Pillars)-1]) - int(ci.Pillars[0]) + 1
		gap = span - len(ci.Pillars)
	} else {
		gap = pillarGap(ci.Pillars[0], ci.Pillars[1])
	}
	mult := gapMultiplier(gap)

	pts := basis * comboRates[ci.Tag] * mult

	transformed := false
	for _, p := range PillarOrder {
		if st.hsNode(p).Element == ci.Element {
			transformed = true
			break
		}
	}
	if transformed {
		pts *= transformationMultiplier
	}

	for _, p := range ci.Pillars {
		ebID := makeNodeID(p, SlotEB)
		share := st.attentionShare(ebID, ci.Tag)
		st.BonusNodes = append(st.BonusNodes, &BonusNode{
			ID:         fmt.Sprintf("%s.EB+%s_%s", p, ci.Element, ci.Tag),
			SourceNode: ebID,
			Pillar:     p,
			Slot:       SlotEB,
			Element:    ci.Element,
			Polarity:   ci.branchAt(p).Polarity(),
			Points:     pts * share,
			Source:     ci.Tag,
		})
	}

	st.log(Interaction{
		Step:          2,
		Type:          ci.Tag,
		Nodes:         nodeIDsOf(st, ci.Pillars),
		Branches:      branchNamesOf(ci.Branches),
		Basis:         basis,
		ResultElement: ci.Element.String(),
		Transformed:   transformed,
		GapMultiplier: mult,
	})
}

// runStemCombos is Step 3: visible stem pairs across distinct pillars, in
// pillar-priority order; a stem consumed by one combo is excluded from
// further pairings.
func (st *State) runStemCombos() {
	var consumed [4]bool
	prio := st.PillarPriority

	for i := 0; i < len(prio); i++ {
		for j := i + 1; j < len(prio); j++ {
			a, b := prio[i], prio[j]
			if consumed[a] || consumed[b] {
				continue
			}
			hsA, hsB := st.hsNode(a), st.hsNode(b)
			el, ok := stemComboElement(hsA.Stem, hsB.Stem)
			if !ok {
				continue
			}

			basis := math.Min(hsA.Points, hsB.Points)
			mult := gapMultiplier(pillarGap(a, b))
			pts := basis * comboRates[TagStemCombos] * mult

			transformed := false
			for _, p := range PillarOrder {
				if st.ebNode(p).Element == el {
					transformed = true
					break
				}
			}
			if transformed {
				pts *= transformationMultiplier
			}

			for _, n := range []*Node{hsA, hsB} {
				st.BonusNodes = append(st.BonusNodes, &BonusNode{
					ID:         fmt.Sprintf("%s.HS+%s_%s", n.Pillar, el, TagStemCombos),
					SourceNode: n.ID,
					Pillar:     n.Pillar,
					Slot:       SlotHS,
					Element:    el,
					Polarity:   n.Polarity,
					Points:     pts,
					Source:     TagStemCombos,
				})
			}
			consumed[a], consumed[b] = true, true

			st.log(Interaction{
				Step:          3,
				Type:          TagStemCombos,
				NodeA:         string(hsA.ID),
				NodeB:         string(hsB.ID),
				Basis:         basis,
				ResultElement: el.String(),
				Transformed:   transformed,
				GapMultiplier: mult,
			})
		}
	}
}

package wuxing

import (
	"fmt"
	"math"
	"sort"
)

// flowSlot is one participant in the Step-7 natural flow: a visible native
// node, a standalone bonus node, or a native node coupled with the bonus
// nodes sharing its element at the same grid position. Reads return the sum
// of the underlying storages; writes distribute the new total back in
// proportion to the current values.
type flowSlot struct {
	col, row int
	pillar   PillarPos
	element  Element
	native   *Node
	bonuses  []*BonusNode
}

func (s *flowSlot) points() float64 {
	total := 0.0
	if s.native != nil {
		total += s.native.Points
	}
	for _, bn := range s.bonuses {
		total += bn.Points
	}
	return total
}

func (s *flowSlot) setPoints(total float64) {
	if total < 0 {
		total = 0
	}
	cur := s.points()
	if cur <= 0 {
		// Nothing to apportion; the native storage absorbs the write.
		if s.native != nil {
			s.native.Points = total
		} else if len(s.bonuses) > 0 {
			s.bonuses[0].Points = total
		}
		return
	}
	factor := total / cur
	if s.native != nil {
		s.native.Points *= factor
	}
	for _, bn := range s.bonuses {
		bn.Points *= factor
	}
}

func (s *flowSlot) id() string {
	if s.native != nil {
		return string(s.native.ID)
	}
	return s.bonuses[0].ID
}

// buildFlowSlots assembles the flow participants: the eight visible native
// nodes plus every bonus node, with same-element bonus nodes consolidated
// into their native position.
func (st *State) buildFlowSlots() ([]*flowSlot, error) {
	var slots []*flowSlot
	native := make(map[[2]int]*flowSlot)

	for _, n := range st.Nodes {
		if n.Slot != SlotHS && n.Slot != SlotEB {
			continue
		}
		s := &flowSlot{
			col:     int(n.Pillar),
			row:     n.Slot.row(),
			pillar:  n.Pillar,
			element: n.Element,
			native:  n,
		}
		slots = append(slots, s)
		native[[2]int{s.col, s.row}] = s
	}

	for _, bn := range st.BonusNodes {
		key := [2]int{int(bn.Pillar), bn.Slot.row()}
		host, ok := native[key]
		if !ok {
			return nil, fmt.Errorf("%w: no native slot for bonus node %s", ErrInternalInvariant, bn.ID)
		}
		if host.element == bn.Element {
			host.bonuses = append(host.bonuses, bn)
			if !bn.consolidated {
				bn.consolidated = true
				bn.ID += "+consolidated"
			}
			continue
		}
		slots = append(slots, &flowSlot{
			col:     key[0],
			row:     key[1],
			pillar:  bn.Pillar,
			element: bn.Element,
			bonuses: []*BonusNode{bn},
		})
	}

	return slots, nil
}

type flowPair struct {
	a, b       *flowSlot
	anchor     int
	gap        int
	production bool
	rel        Relation
}

// runNaturalFlow is Step 7: cross-pillar production and control between the
// visible flow participants at half the Step-1 rates, reading live values so
// that earlier pairs feed later ones.
func (st *State) runNaturalFlow() error {
	slots, err := st.buildFlowSlots()
	if err != nil {
		return err
	}

	var pairs []flowPair
	for i := 0; i < len(slots); i++ {
		for j := i + 1; j < len(slots); j++ {
			a, b := slots[i], slots[j]
			// The same-pillar native stem/branch pair is Step 1's territory.
			if a.native != nil && b.native != nil && a.col == b.col {
				continue
			}
			if a.element == b.element {
				continue
			}
			anchor := st.priorityIndex(a.pillar)
			if bi := st.priorityIndex(b.pillar); bi < anchor {
				anchor = bi
			}
			rel := relationBetween(a.element, b.element)
			pairs = append(pairs, flowPair{
				a:          a,
				b:          b,
				anchor:     anchor,
				gap:        gridGap(a.col, a.row, b.col, b.row),
				production: rel == RelationHSProducesEB || rel == RelationEBProducesHS,
				rel:        rel,
			})
		}
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		if pairs[i].anchor != pairs[j].anchor {
			return pairs[i].anchor < pairs[j].anchor
		}
		if pairs[i].gap != pairs[j].gap {
			return pairs[i].gap < pairs[j].gap
		}
		return pairs[i].production && !pairs[j].production
	})

	for _, pr := range pairs {
		basis := math.Min(pr.a.points(), pr.b.points())
		if basis <= 0 {
			continue
		}
		mult := gapMultiplier(pr.gap)

		var giver, taker *flowSlot
		switch pr.rel {
		case RelationHSProducesEB:
			giver, taker = pr.a, pr.b
		case RelationEBProducesHS:
			giver, taker = pr.b, pr.a
		case RelationHSControlsEB:
			giver, taker = pr.a, pr.b
		case RelationEBControlsHS:
			giver, taker = pr.b, pr.a
		}

		relationship := "control"
		if pr.production {
			giver.setPoints(giver.points() - 0.10*basis*mult)
			taker.setPoints(taker.points() + 0.15*basis*mult)
			relationship = "production"
		} else {
			giver.setPoints(giver.points() - 0.10*basis*mult)
			taker.setPoints(taker.points() - 0.15*basis*mult)
		}

		st.log(Interaction{
			Step:          7,
			Type:          TagNaturalFlow,
			NodeA:         giver.id(),
			NodeB:         taker.id(),
			Relationship:  relationship,
			Basis:         basis,
			GapMultiplier: mult,
		})
	}

	return nil
}

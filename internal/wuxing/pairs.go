package wuxing

import "math"

// runPillarPairs is Step 1: within each pillar the stem and the branch main
// qi exchange points according to their element relation. Hidden stems are
// untouched.
func (st *State) runPillarPairs() {
	for _, pos := range PillarOrder {
		hs := st.hsNode(pos)
		eb := st.ebNode(pos)

		rel := relationBetween(hs.Element, eb.Element)
		if rel == RelationSame {
			continue
		}

		basis := math.Min(hs.Points, eb.Points)
		loss := 0.20 * basis
		effect := 0.30 * basis

		switch rel {
		case RelationHSProducesEB:
			hs.damage(loss)
			eb.Points += effect
		case RelationEBProducesHS:
			eb.damage(loss)
			hs.Points += effect
		case RelationHSControlsEB:
			hs.damage(loss)
			eb.damage(effect)
		case RelationEBControlsHS:
			eb.damage(loss)
			hs.damage(effect)
		}

		st.log(Interaction{
			Step:         1,
			Type:         TagPillarPair,
			NodeA:        string(hs.ID),
			NodeB:        string(eb.ID),
			Relationship: rel.String(),
			Basis:        basis,
		})
	}
}

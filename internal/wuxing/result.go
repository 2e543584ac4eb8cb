package wuxing

// NodeReport is the per-node output of the engine.
type NodeReport struct {
	Stem               string  `json:"stem"`
	Element            string  `json:"element"`
	Polarity           string  `json:"polarity"`
	Initial            float64 `json:"initial"`
	Final              float64 `json:"final"`
	Delta              float64 `json:"delta"`
	SeasonalMultiplier float64 `json:"seasonal_multiplier,omitempty"`
}

// BonusReport is the snapshot of one bonus node.
type BonusReport struct {
	ID         string  `json:"id"`
	SourceNode string  `json:"source_node"`
	Pillar     string  `json:"pillar"`
	Element    string  `json:"element"`
	Polarity   string  `json:"polarity"`
	Points     float64 `json:"points"`
	Source     string  `json:"source"`
}

// DayMaster is the day-stem verdict.
type DayMaster struct {
	Stem     string  `json:"stem"`
	Element  string  `json:"element"`
	Percent  float64 `json:"percent"`
	Strength string  `json:"strength"`
}

// Result is the full engine output.
type Result struct {
	Chip         string                    `json:"chip,omitempty"`
	Nodes        map[string]NodeReport     `json:"nodes"`
	BonusNodes   []BonusReport             `json:"bonus_nodes"`
	Elements     map[string]ElementSummary `json:"elements"`
	DayMaster    DayMaster                 `json:"day_master"`
	Gods         Gods                      `json:"gods"`
	Interactions []Interaction             `json:"interactions"`
	Code         string                    `json:"code,omitempty"`
	Digest       string                    `json:"digest,omitempty"`
	Signature    string                    `json:"signature,omitempty"`
}

// strengthFor buckets a Day-Master percentage.
func strengthFor(percent float64) Strength {
	switch {
	case percent > 40:
		return Dominant
	case percent >= 25:
		return Strong
	case percent >= 15:
		return Balanced
	case percent >= 8:
		return Weak
	default:
		return VeryWeak
	}
}

// assembleResult composes the final report from the post-pipeline state.
func assembleResult(st *State, summary map[string]ElementSummary, gods Gods) *Result {
	nodes := make(map[string]NodeReport, len(st.Nodes))
	for _, n := range st.Nodes {
		nodes[string(n.ID)] = NodeReport{
			Stem:               n.Stem.String(),
			Element:            n.Element.String(),
			Polarity:           n.Polarity.String(),
			Initial:            n.InitialPoints,
			Final:              n.Points,
			Delta:              n.Points - n.InitialPoints,
			SeasonalMultiplier: n.SeasonalMultiplier,
		}
	}

	bonuses := make([]BonusReport, 0, len(st.BonusNodes))
	for _, bn := range st.BonusNodes {
		bonuses = append(bonuses, BonusReport{
			ID:         bn.ID,
			SourceNode: string(bn.SourceNode),
			Pillar:     bn.Pillar.String(),
			Element:    bn.Element.String(),
			Polarity:   bn.Polarity.String(),
			Points:     bn.Points,
			Source:     bn.Source,
		})
	}

	dmStem := st.Pillars[PillarDay].Stem
	dmPercent := summary[dmStem.Element().String()].Percent

	interactions := make([]Interaction, len(st.Interactions))
	copy(interactions, st.Interactions)

	return &Result{
		Nodes:      nodes,
		BonusNodes: bonuses,
		Elements:   summary,
		DayMaster: DayMaster{
			Stem:     dmStem.String(),
			Element:  dmStem.Element().String(),
			Percent:  dmPercent,
			Strength: strengthFor(dmPercent).String(),
		},
		Gods:         gods,
		Interactions: interactions,
	}
}

package wuxing

import (
	"encoding/json"
	"fmt"
	"sort"
)

type fixed4 float64

func (f fixed4) MarshalJSON() ([]byte, error) {
	// Always encode with exactly 4 decimal places for canonical stability
	return []byte(fmt.Sprintf("%.4f", float64(f))), nil
}

type canonicalNode struct {
	ID      string `json:"id"`
	Stem    string `json:"stem"`
	Element string `json:"element"`
	Initial fixed4 `json:"initial"`
	Final   fixed4 `json:"final"`
}

type canonicalElement struct {
	Name    string `json:"name"`
	Total   fixed4 `json:"total"`
	Percent fixed4 `json:"percent"`
	Rank    int    `json:"rank"`
}

type canonicalBonus struct {
	ID     string `json:"id"`
	Points fixed4 `json:"points"`
}

type canonicalReport struct {
	Chip       string             `json:"chip,omitempty"`
	Nodes      []canonicalNode    `json:"nodes"`
	BonusNodes []canonicalBonus   `json:"bonusNodes,omitempty"`
	Elements   []canonicalElement `json:"elements"`
	DayMaster  DayMaster          `json:"dayMaster"`
	Gods       Gods               `json:"gods"`
}

// CanonicalResult builds a canonical JSON representation of the analysis
// used for digests and signatures. The output is deterministic across runs:
// nodes are sorted by id, elements follow enumeration order, and floats are
// fixed to 4 decimal places.
func CanonicalResult(r *Result) ([]byte, error) {
	cr := canonicalReport{
		Chip:      r.Chip,
		DayMaster: r.DayMaster,
		Gods:      r.Gods,
	}

	ids := make([]string, 0, len(r.Nodes))
	for id := range r.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		n := r.Nodes[id]
		cr.Nodes = append(cr.Nodes, canonicalNode{
			ID:      id,
			Stem:    n.Stem,
			Element: n.Element,
			Initial: fixed4(n.Initial),
			Final:   fixed4(n.Final),
		})
	}

	for _, bn := range r.BonusNodes {
		cr.BonusNodes = append(cr.BonusNodes, canonicalBonus{
			ID:     bn.ID,
			Points: fixed4(bn.Points),
		})
	}

	for _, e := range Elements {
		s := r.Elements[e.String()]
		cr.Elements = append(cr.Elements, canonicalElement{
			Name:    e.String(),
			Total:   fixed4(s.Total),
			Percent: fixed4(s.Percent),
			Rank:    s.Rank,
		})
	}

	b, err := json.Marshal(cr)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal canonical report: %w", err)
	}
	return b, nil
}

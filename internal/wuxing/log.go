package wuxing

// Interaction is one append-only audit entry. Fields not meaningful for a
// given interaction family stay at their zero value and are omitted from the
// JSON rendering.
type Interaction struct {
	Step          int      `json:"step"`
	Type          string   `json:"type"`
	Nodes         []string `json:"nodes,omitempty"`
	Branches      []string `json:"branches,omitempty"`
	NodeA         string   `json:"node_a,omitempty"`
	NodeB         string   `json:"node_b,omitempty"`
	Relationship  string   `json:"relationship,omitempty"`
	Basis         float64  `json:"basis,omitempty"`
	ResultElement string   `json:"result_element,omitempty"`
	Transformed   bool     `json:"transformed,omitempty"`
	GapMultiplier float64  `json:"gap_multiplier,omitempty"`
	Attacker      string   `json:"attacker,omitempty"`
	Victim        string   `json:"victim,omitempty"`
	LogOnly       bool     `json:"log_only,omitempty"`
	Details       string   `json:"details,omitempty"`
}

func branchNamesOf(branches []Branch) []string {
	out := make([]string, len(branches))
	for i, b := range branches {
		out[i] = b.String()
	}
	return out
}

func nodeIDsOf(st *State, pillars []PillarPos) []string {
	out := make([]string, len(pillars))
	for i, p := range pillars {
		out[i] = string(makeNodeID(p, SlotEB))
	}
	return out
}

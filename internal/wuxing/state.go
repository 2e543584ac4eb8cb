package wuxing

import (
	"fmt"
	"sort"
)

// NodeID is the stable identifier of a chart node, e.g. "DP.EB.h1".
type NodeID string

func makeNodeID(p PillarPos, s Slot) NodeID {
	return NodeID(p.String() + "." + s.String())
}

// Node is one mutable point-carrying entity of the chart graph.
type Node struct {
	ID       NodeID
	Pillar   PillarPos
	Slot     Slot
	Stem     Stem
	Element  Element
	Polarity Polarity

	Points        float64
	InitialPoints float64

	// SeasonalMultiplier is recorded in Step 6 for audit; zero until then.
	SeasonalMultiplier float64
}

// damage subtracts points, clamping at zero.
func (n *Node) damage(x float64) {
	n.Points -= x
	if n.Points < 0 {
		n.Points = 0
	}
}

// BonusNode is an extra point carrier spawned by a positive combo.
type BonusNode struct {
	ID         string
	SourceNode NodeID
	Pillar     PillarPos
	Slot       Slot
	Element    Element
	Polarity   Polarity
	Points     float64
	Source     string

	consolidated bool
}

// AttentionEntry is one weighted interaction registered on a node.
type AttentionEntry struct {
	Type   string
	Weight float64
}

// State is the shared mutable graph the nine stages operate on.
type State struct {
	Input   *Input
	Pillars [4]Pillar

	Nodes      []*Node
	BonusNodes []*BonusNode

	Interactions []Interaction

	Season         Element
	PillarPriority []PillarPos
	Attention      map[NodeID][]AttentionEntry

	nodeIndex map[NodeID]*Node
	prioIndex [4]int
}

// NewState validates the input and runs Step 0: it resolves the pillars,
// emits the node graph with its starting points, sets the season from the
// month branch, and computes the pillar priority from the age.
func NewState(in *Input) (*State, error) {
	pillars, err := in.resolve()
	if err != nil {
		return nil, err
	}

	st := &State{
		Input:     in,
		Pillars:   pillars,
		Season:    monthBranchSeason[pillars[PillarMonth].Branch],
		Attention: make(map[NodeID][]AttentionEntry),
		nodeIndex: make(map[NodeID]*Node),
	}

	for _, pos := range PillarOrder {
		pl := pillars[pos]
		st.addNode(pos, SlotHS, pl.Stem, pl.Stem.Polarity(), 10)

		hidden := branchHiddenStems[pl.Branch]
		st.addNode(pos, SlotEB, hidden[0].Stem, pl.Branch.Polarity(), hidden[0].Points)
		if len(hidden) > 1 {
			st.addNode(pos, SlotH1, hidden[1].Stem, hidden[1].Stem.Polarity(), hidden[1].Points)
		}
		if len(hidden) > 2 {
			st.addNode(pos, SlotH2, hidden[2].Stem, hidden[2].Stem.Polarity(), hidden[2].Points)
		}
	}

	st.PillarPriority = pillarPriority(in.Age)
	for i, p := range st.PillarPriority {
		st.prioIndex[p] = i
	}

	return st, nil
}

func (st *State) addNode(pos PillarPos, slot Slot, stem Stem, pol Polarity, points float64) {
	n := &Node{
		ID:            makeNodeID(pos, slot),
		Pillar:        pos,
		Slot:          slot,
		Stem:          stem,
		Element:       stem.Element(),
		Polarity:      pol,
		Points:        points,
		InitialPoints: points,
	}
	st.Nodes = append(st.Nodes, n)
	st.nodeIndex[n.ID] = n
}

// node returns the primary node with the given id.
func (st *State) node(id NodeID) *Node {
	return st.nodeIndex[id]
}

// ebNode returns the main-qi node of a pillar's branch.
func (st *State) ebNode(p PillarPos) *Node {
	return st.nodeIndex[makeNodeID(p, SlotEB)]
}

// hsNode returns the stem node of a pillar.
func (st *State) hsNode(p PillarPos) *Node {
	return st.nodeIndex[makeNodeID(p, SlotHS)]
}

// branchAt returns the branch occupying a pillar column.
func (st *State) branchAt(p PillarPos) Branch {
	return st.Pillars[p].Branch
}

// priorityIndex returns a pillar's rank in the priority order (0 = first).
func (st *State) priorityIndex(p PillarPos) int {
	return st.prioIndex[p]
}

// addAttention registers one weighted interaction on a node.
func (st *State) addAttention(id NodeID, tag string) {
	st.Attention[id] = append(st.Attention[id], AttentionEntry{Type: tag, Weight: attentionWeights[tag]})
}

// attentionShare returns this interaction's fraction of the node's total
// attention weight. A node with no registered weight takes the full effect.
func (st *State) attentionShare(id NodeID, tag string) float64 {
	total := 0.0
	for _, e := range st.Attention[id] {
		total += e.Weight
	}
	if total <= 0 {
		return 1.0
	}
	return attentionWeights[tag] / total
}

// log appends one interaction entry.
func (st *State) log(e Interaction) {
	st.Interactions = append(st.Interactions, e)
}

// Age brackets for pillar priority.
type ageBracket struct {
	Pillar PillarPos
	Lo, Hi uint32
}

var ageBrackets = [4]ageBracket{
	{PillarYear, 0, 16},
	{PillarMonth, 17, 32},
	{PillarDay, 33, 48},
	{PillarHour, 49, 64},
}

func activePillar(age uint32) PillarPos {
	switch {
	case age <= 16:
		return PillarYear
	case age <= 32:
		return PillarMonth
	case age <= 48:
		return PillarDay
	default:
		return PillarHour
	}
}

func bracketDistance(age uint32, b ageBracket) uint32 {
	if age >= b.Lo && age <= b.Hi {
		return 0
	}
	lo := diffU32(age, b.Lo)
	hi := diffU32(age, b.Hi)
	if lo < hi {
		return lo
	}
	return hi
}

func diffU32(a, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return b - a
}

// pillarPriority orders the four pillars for the given age: the bracket's
// active pillar first, the day pillar second unless already first, and the
// rest by nearest-boundary distance (chart order breaks ties).
func pillarPriority(age uint32) []PillarPos {
	active := activePillar(age)

	order := []PillarPos{active}
	if active != PillarDay {
		order = append(order, PillarDay)
	}

	var rest []PillarPos
	for _, b := range ageBrackets {
		if b.Pillar == active || b.Pillar == PillarDay {
			continue
		}
		rest = append(rest, b.Pillar)
	}
	sort.SliceStable(rest, func(i, j int) bool {
		return bracketDistance(age, ageBrackets[rest[i]]) < bracketDistance(age, ageBrackets[rest[j]])
	})

	return append(order, rest...)
}

// runStep executes one mutating stage (1..7) on the state.
func (st *State) runStep(step int) error {
	switch step {
	case 1:
		st.runPillarPairs()
	case 2:
		st.runBranchCombos()
	case 3:
		st.runStemCombos()
	case 4:
		st.runBranchNegatives()
	case 5:
		st.runStemClashes()
	case 6:
		st.runSeasonal()
	case 7:
		return st.runNaturalFlow()
	default:
		return fmt.Errorf("%w: no such stage %d", ErrInternalInvariant, step)
	}
	return nil
}

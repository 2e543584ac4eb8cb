package wuxing

import (
	"sort"
	"strings"
)

// Production and control cycles, indexed by Element.
var (
	productionCycle = [5]Element{Fire, Earth, Metal, Water, Wood}
	producedByCycle = [5]Element{Water, Wood, Fire, Earth, Metal}
	controlCycle    = [5]Element{Earth, Metal, Water, Fire, Wood}
)

// Elements of the ten stems in enumeration order Jia..Gui.
var stemElements = [10]Element{Wood, Wood, Fire, Fire, Earth, Earth, Metal, Metal, Water, Water}

// hiddenStem is one resident of a branch with its fixed starting points.
type hiddenStem struct {
	Stem   Stem
	Points float64
}

// branchHiddenStems lists each branch's residents, main qi first.
var branchHiddenStems = [12][]hiddenStem{
	BranchZi:   {{StemGui, 10}},
	BranchChou: {{StemJi, 8}, {StemGui, 3}, {StemXin, 1}},
	BranchYin:  {{StemJia, 8}, {StemBing, 3}, {StemWu, 1}},
	BranchMao:  {{StemYi, 10}},
	BranchChen: {{StemWu, 8}, {StemYi, 3}, {StemGui, 1}},
	BranchSi:   {{StemBing, 8}, {StemGeng, 3}, {StemWu, 1}},
	BranchWu:   {{StemDing, 8}, {StemJi, 3}},
	BranchWei:  {{StemJi, 8}, {StemDing, 3}, {StemYi, 1}},
	BranchShen: {{StemGeng, 8}, {StemRen, 3}, {StemWu, 1}},
	BranchYou:  {{StemXin, 10}},
	BranchXu:   {{StemWu, 8}, {StemXin, 3}, {StemDing, 1}},
	BranchHai:  {{StemRen, 8}, {StemJia, 3}},
}

// branchPolarities fixes the Yang/Yin quality of each branch.
var branchPolarities = [12]Polarity{
	BranchZi:   Yang,
	BranchChou: Yin,
	BranchYin:  Yang,
	BranchMao:  Yin,
	BranchChen: Yang,
	BranchSi:   Yin,
	BranchWu:   Yang,
	BranchWei:  Yin,
	BranchShen: Yang,
	BranchYou:  Yin,
	BranchXu:   Yang,
	BranchHai:  Yin,
}

// monthBranchSeason maps the month branch to the chart season element.
var monthBranchSeason = [12]Element{
	BranchZi:   Water,
	BranchChou: Earth,
	BranchYin:  Wood,
	BranchMao:  Wood,
	BranchChen: Earth,
	BranchSi:   Fire,
	BranchWu:   Fire,
	BranchWei:  Earth,
	BranchShen: Metal,
	BranchYou:  Metal,
	BranchXu:   Earth,
	BranchHai:  Water,
}

// Interaction type tags. These are the stable strings used in the interaction
// log, the attention map, and bonus-node identifiers.
const (
	TagPillarPair    = "PILLAR_PAIR"
	TagThreeMeetings = "THREE_MEETINGS"
	TagThreeCombos   = "THREE_COMBOS"
	TagSixHarmonies  = "SIX_HARMONIES"
	TagHalfMeetings  = "HALF_MEETINGS"
	TagArchedCombos  = "ARCHED_COMBOS"
	TagStemCombos    = "STEM_COMBOS"
	TagSixClash      = "SIX_CLASH"
	TagPunishment    = "PUNISHMENT"
	TagSixHarm       = "SIX_HARM"
	TagDestruction   = "DESTRUCTION"
	TagStemClash     = "STEM_CLASH"
	TagSeasonal      = "SEASONAL"
	TagNaturalFlow   = "NATURAL_FLOW"
)

// comboEntry is one positive branch configuration and the element it produces.
type comboEntry struct {
	Branches []Branch
	Element  Element
}

// comboKey renders the table key for a set of branches: sorted alphabetically
// by romanized spelling and joined with "-".
func comboKey(branches []Branch) string {
	names := make([]string, len(branches))
	for i, b := range branches {
		names[i] = b.String()
	}
	sort.Strings(names)
	return strings.Join(names, "-")
}

var threeMeetings = []comboEntry{
	{[]Branch{BranchYin, BranchMao, BranchChen}, Wood},
	{[]Branch{BranchSi, BranchWu, BranchWei}, Fire},
	{[]Branch{BranchShen, BranchYou, BranchXu}, Metal},
	{[]Branch{BranchHai, BranchZi, BranchChou}, Water},
}

var threeCombos = []comboEntry{
	{[]Branch{BranchHai, BranchMao, BranchWei}, Wood},
	{[]Branch{BranchYin, BranchWu, BranchXu}, Fire},
	{[]Branch{BranchSi, BranchYou, BranchChou}, Metal},
	{[]Branch{BranchShen, BranchZi, BranchChen}, Water},
}

var sixHarmonies = []comboEntry{
	{[]Branch{BranchChou, BranchZi}, Earth},
	{[]Branch{BranchHai, BranchYin}, Wood},
	{[]Branch{BranchMao, BranchXu}, Fire},
	{[]Branch{BranchChen, BranchYou}, Metal},
	{[]Branch{BranchShen, BranchSi}, Water},
	{[]Branch{BranchWei, BranchWu}, Fire},
}

// halfMeetings are the three pair subsets of each seasonal trio.
var halfMeetings = []comboEntry{
	{[]Branch{BranchYin, BranchMao}, Wood},
	{[]Branch{BranchYin, BranchChen}, Wood},
	{[]Branch{BranchMao, BranchChen}, Wood},
	{[]Branch{BranchSi, BranchWu}, Fire},
	{[]Branch{BranchSi, BranchWei}, Fire},
	{[]Branch{BranchWu, BranchWei}, Fire},
	{[]Branch{BranchShen, BranchYou}, Metal},
	{[]Branch{BranchShen, BranchXu}, Metal},
	{[]Branch{BranchYou, BranchXu}, Metal},
	{[]Branch{BranchHai, BranchZi}, Water},
	{[]Branch{BranchHai, BranchChou}, Water},
	{[]Branch{BranchZi, BranchChou}, Water},
}

// archedCombos are the triangular pairs whose middle branch is absent.
var archedCombos = []comboEntry{
	{[]Branch{BranchHai, BranchWei}, Wood},
	{[]Branch{BranchYin, BranchXu}, Fire},
	{[]Branch{BranchChou, BranchSi}, Metal},
	{[]Branch{BranchChen, BranchShen}, Water},
}

// stemComboEntry is one of the five transforming stem pairs.
type stemComboEntry struct {
	A, B    Stem
	Element Element
}

var stemCombos = []stemComboEntry{
	{StemJia, StemJi, Earth},
	{StemGeng, StemYi, Metal},
	{StemBing, StemXin, Water},
	{StemDing, StemRen, Wood},
	{StemGui, StemWu, Fire},
}

// stemComboElement looks up the unordered stem pair in the combo table.
func stemComboElement(a, b Stem) (Element, bool) {
	for _, e := range stemCombos {
		if (e.A == a && e.B == b) || (e.A == b && e.B == a) {
			return e.Element, true
		}
	}
	return 0, false
}

// clashEntry is one of the six branch clashes. Attacker is meaningful only
// when the entry is not log-only.
type clashEntry struct {
	A, B     Branch
	Attacker Branch
	LogOnly  bool
}

var sixClashes = []clashEntry{
	{BranchZi, BranchWu, BranchZi, false},
	{BranchYin, BranchShen, BranchShen, false},
	{BranchMao, BranchYou, BranchYou, false},
	{BranchSi, BranchHai, BranchHai, false},
	{BranchChou, BranchWei, 0, true},
	{BranchChen, BranchXu, 0, true},
}

// directedPair is an attacker/victim branch pair.
type directedPair struct {
	Attacker, Victim Branch
}

// Punishment configurations. The Yin-Si-Shen trio acts through its three
// directed pairs independently; the Chou-Wei-Xu trio fires only when complete
// and never deals damage; Mao->Zi is a damaging directed pair; the four
// self-punishing branches only log.
var (
	punishmentShiPairs = []directedPair{
		{BranchYin, BranchSi},
		{BranchSi, BranchShen},
		{BranchShen, BranchYin},
	}
	punishmentWuLiTrio = []Branch{BranchChou, BranchWei, BranchXu}
	punishmentEnPair   = directedPair{BranchMao, BranchZi}
	punishmentSelf     = []Branch{BranchChen, BranchWu, BranchYou, BranchHai}
)

// sixHarms are the directed harm pairs. Where one element controls the other
// the controller attacks (Wei->Zi, Mao->Chen); the four production-related
// pairs have fixed directions: Wu->Chou, Si->Yin, Hai->Shen, You->Xu.
var sixHarms = []directedPair{
	{BranchWei, BranchZi},
	{BranchWu, BranchChou},
	{BranchSi, BranchYin},
	{BranchMao, BranchChen},
	{BranchHai, BranchShen},
	{BranchYou, BranchXu},
}

// destructionEntry is one of the six destructions; the two same-element
// entries only log.
type destructionEntry struct {
	Attacker, Victim Branch
	LogOnly          bool
}

var destructions = []destructionEntry{
	{BranchYou, BranchZi, false},
	{BranchMao, BranchWu, false},
	{BranchHai, BranchYin, false},
	{BranchSi, BranchShen, false},
	{BranchChen, BranchChou, true},
	{BranchWei, BranchXu, true},
}

// stemClashControllers maps controller stem to controlled stem for the four
// stem clashes.
var stemClashControllers = map[Stem]Stem{
	StemGeng: StemJia,
	StemXin:  StemYi,
	StemRen:  StemBing,
	StemGui:  StemDing,
}

// Positive combo rates per bonus-point formula.
var comboRates = map[string]float64{
	TagThreeMeetings: 0.30,
	TagThreeCombos:   0.25,
	TagSixHarmonies:  0.20,
	TagHalfMeetings:  0.20,
	TagArchedCombos:  0.15,
	TagStemCombos:    0.30,
}

// transformationMultiplier boosts a combo whose produced element is backed by
// a matching visible stem.
const transformationMultiplier = 2.5

// attentionWeights gives each interaction family its attention weight.
var attentionWeights = map[string]float64{
	TagThreeMeetings: 63,
	TagThreeCombos:   42,
	TagSixClash:      42,
	TagPunishment:    42,
	TagSixHarmonies:  28,
	TagDestruction:   28,
	TagSixHarm:       28,
	TagHalfMeetings:  12,
	TagArchedCombos:  7,
}

// negativeRate carries the loss fractions of a damaging interaction.
type negativeRate struct {
	Attacker, Victim float64
}

var negativeRates = map[string]negativeRate{
	TagSixClash:    {0.25, 0.50},
	TagStemClash:   {0.25, 0.50},
	TagPunishment:  {0.20, 0.40},
	TagSixHarm:     {0.20, 0.40},
	TagDestruction: {0.20, 0.40},
}

// seasonalMultipliers maps each seasonal state to its point multiplier.
var seasonalMultipliers = map[SeasonalState]float64{
	Prosperous: 1.25,
	Prime:      1.15,
	Rest:       1.0,
	Imprisoned: 0.85,
	Dead:       0.75,
}

// seasonalStateFor classifies a target element against the season element.
func seasonalStateFor(season, target Element) SeasonalState {
	switch {
	case season == target:
		return Prosperous
	case season.Produces() == target:
		return Prime
	case target.Produces() == season:
		return Rest
	case target.Controls() == season:
		return Imprisoned
	default:
		return Dead
	}
}

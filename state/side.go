package state

// SideConditionID indexes a column in the per-side conditions array. Each column holds either a remaining-turn count
// (screens, tailwind, safeguard, mist) or a layer count (hazards).
type SideConditionID int8

const (
	SideReflect SideConditionID = iota
	SideLightScreen
	SideAuroraVeil
	SideTailwind
	SideSafeguard
	SideMist
	SideSpikes
	SideToxicSpikes
	SideStealthRock
	SideStickyWeb

	NumSideConditions = int(iota)
)

// MaxLayers bounds the hazard-layer side conditions.
var MaxLayers = map[SideConditionID]int{
	SideSpikes:      3,
	SideToxicSpikes: 2,
	SideStealthRock: 1,
	SideStickyWeb:   1,
}

// SideState holds one side's condition columns and aggregate counters.
type SideState struct {
	Conditions [NumSideConditions]int
	Fainted    int // total fainted Pokemon on this side, monotonically non-decreasing
}

package state

import "github.com/pokesim/battlecore/data"

// stageMultiplier returns the exact numerator/denominator for a stat stage,
// the standard `(2+n)/2` (positive) or `2/(2-n)` (negative) table.
func stageMultiplier(n int8) (num, den int) {
	switch {
	case n > 0:
		return 2 + int(n), 2
	case n < 0:
		return 2, 2 - int(n)
	default:
		return 1, 1
	}
}

// BaseSpeed returns a Pokemon's Speed stat with its stage multiplier
// applied, before paralysis/ability/item/tailwind/trick-room (those are
// dispatcher concerns layered on top by the damage/scheduler packages). It
// stays a pure read of packed fields, recomputed every call rather than
// cached.
func (bs *BattleState) BaseSpeed(side, teamIndex int) int {
	p := &bs.Pokemon[side][teamIndex]
	num, den := stageMultiplier(p.Stages[data.StageSpe])
	return p.Stats[data.Spe] * num / den
}

// StageMultiplier exposes stageMultiplier for the damage pipeline so both
// packages use the exact same table.
func StageMultiplier(n int8) (num, den int) { return stageMultiplier(n) }

// AccuracyMultiplier and EvasionMultiplier use the same stage table as the
// other five axes.
func (bs *BattleState) AccuracyMultiplier(side, teamIndex int) (num, den int) {
	return stageMultiplier(bs.Pokemon[side][teamIndex].Stages[data.StageAccuracy])
}

func (bs *BattleState) EvasionMultiplier(side, teamIndex int) (num, den int) {
	return stageMultiplier(bs.Pokemon[side][teamIndex].Stages[data.StageEvasion])
}

// ParalysisSpeedNum/ParalysisSpeedDen is the fixed paralysis speed multiplier (1/4), kept
// separate from the stage table since it is an ability/status modifier, not
// a stage.
const (
	ParalysisSpeedNum = 1
	ParalysisSpeedDen = 4
)

// IsParalyzed reports whether the Pokemon's speed should take the
// paralysis penalty.
func (bs *BattleState) IsParalyzed(side, teamIndex int) bool {
	return bs.Pokemon[side][teamIndex].Status == data.StatusParalysis
}

package data

// PowerSource names a non-declared base-power computation a move can use
// instead of a fixed BasePower value.
type PowerSource int8

const (
	PowerFixed PowerSource = iota // use Move.BasePower as-is
	PowerFromLastRespects
	PowerFromTargetWeight
	PowerFromUserHPFraction
	PowerFromTargetHPFraction
	PowerFromSpeedRatio
	PowerFromStoredCounter // e.g. rollout/fury cutter style counters tracked as a volatile
)

// HitCountKind selects the distribution a multi-hit move draws its hit
// count from, resolved once before the hit loop.
type HitCountKind int8

const (
	HitCountNone   HitCountKind = iota // single hit
	HitCountTwo                        // always exactly 2 (e.g. double kick)
	HitCountStandardMulti              // 2/3/4/5 hits at weights 37.5/37.5/12.5/12.5 (2-hit Technician interacts upstream)
	HitCountFixedThree
)

// SecondaryEffectKind is the category of a move's secondary roll.
type SecondaryEffectKind int8

const (
	SecondaryNone SecondaryEffectKind = iota
	SecondaryStatus
	SecondaryStatDrop
	SecondaryStatBoost
	SecondaryFlinch
	SecondaryVolatile
)

// Secondary is one declared secondary effect on a move, with the chance it
// triggers expressed as the exact fraction ChanceN/ChanceD.
type Secondary struct {
	Kind     SecondaryEffectKind
	ChanceN  int
	ChanceD  int
	Status   Status
	StageAxis StageAxis
	Delta    int
	HandlerID HandlerID
}

// SelfEffectKind names a move's own after-hit self-behavior: recoil, drain,
// a self-stat boost, or a forced switch.
type SelfEffectKind int8

const (
	SelfNone SelfEffectKind = iota
	SelfRecoil
	SelfDrain
	SelfBoost
	SelfSwitchOnHit
	SelfSwitchAlways
	SelfFieldSet
)

// HandlerID names a registered hook handler bound to an ability, item,
// move, or condition. The dispatcher resolves the concrete Go function
// from the static registry by this ID.
type HandlerID int32

// NoHandler marks the absence of a bound handler.
const NoHandler HandlerID = 0

package data

// Type is one of the 18 elemental types.
type Type int8

const (
	Normal Type = iota
	Fighting
	Flying
	Poison
	Ground
	Rock
	Bug
	Ghost
	Steel
	Fire
	Water
	Grass
	Electric
	Psychic
	Ice
	Dragon
	Dark
	Fairy

	NumTypes = int(iota)
)

// Stat indexes the six base stats.
type Stat int8

const (
	HP Stat = iota
	Atk
	Def
	SpA
	SpD
	Spe

	NumStats = int(iota)
)

// StageAxis indexes the seven stat-stage axes: the five modifiable battle
// stats (Atk..Spe) plus Accuracy and Evasion.
type StageAxis int8

const (
	StageAtk StageAxis = iota
	StageDef
	StageSpA
	StageSpD
	StageSpe
	StageAccuracy
	StageEvasion

	NumStageAxes = int(iota)
)

// MinStage and MaxStage bound every stage axis.
const (
	MinStage = -6
	MaxStage = 6
)

// Status is a primary status condition. Exactly one applies per Pokemon.
type Status int8

const (
	StatusNone Status = iota
	StatusBurn
	StatusPoison
	StatusBadlyPoisoned
	StatusParalysis
	StatusSleep
	StatusFreeze
	StatusFainted

	NumStatuses = int(iota)
)

// MoveCategory distinguishes how a move's power resolves against stats.
type MoveCategory int8

const (
	CategoryPhysical MoveCategory = iota
	CategorySpecial
	CategoryStatus
)

// TargetMode enumerates a move's declared target shape.
type TargetMode int8

const (
	TargetSelf TargetMode = iota
	TargetOneAdjacentFoe
	TargetAllAdjacentFoes
	TargetAllOthers
	TargetUserSide
	TargetFoeSide
	TargetAll
	TargetRandomFoe
	TargetAdjacentAlly
)

// MoveFlag is a bit in a move's flag set.
type MoveFlag uint32

const (
	FlagContact MoveFlag = 1 << iota
	FlagSound
	FlagPowder
	FlagWind
	FlagPunch
	FlagBite
	FlagSlicing
	FlagProtectRespecting
	FlagHeal
	FlagBullet
	FlagDance
	FlagHighCritRatio // e.g. slash, razor leaf: +1 crit stage intrinsic to the move
)

// AccuracyAlwaysHits is the sentinel accuracy value meaning "never rolls".
const AccuracyAlwaysHits = 0

// NoPriorityOverride is the default (no on_modify_priority bonus).
const NoPriorityOverride = 0

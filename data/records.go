package data

// Species is an immutable species record.
type Species struct {
	ID                 SpeciesID
	Name               string
	BaseStats          [NumStats]int
	PrimaryType        Type
	SecondaryType      TypeID // NoSecondaryType if monotype
	WeightHectograms   int
	HeightDecimeters   int
	PermittedAbilities []AbilityID
}

// Move is an immutable move record. Moves that deviate from the
// standard damage formula reference handler IDs, not code.
type Move struct {
	ID             MoveID
	Name           string
	Type           Type
	Category       MoveCategory
	BasePower      int // 0 for status moves or variable-power moves (see PowerSource)
	Accuracy       int // 0..100, or AccuracyAlwaysHits
	Priority       int
	MaxPP          int
	Target         TargetMode
	Flags          MoveFlag
	PowerSource    PowerSource
	HitCount       HitCountKind
	Secondaries    []Secondary
	SelfEffect     SelfEffectKind
	RecoilNum      int // recoil/drain fraction numerator; the denominator is RecoilDen
	RecoilDen      int
	OnTryHandler   HandlerID
	OnHitHandler   HandlerID
	FieldHandlerID HandlerID // for field/side-targeting moves (step 4 skip path)
}

// HasFlag reports whether the move carries the given flag.
func (m Move) HasFlag(f MoveFlag) bool { return m.Flags&f != 0 }

// TargetsField reports whether the move resolves against the field or a
// side rather than an individual Pokemon.
func (m Move) TargetsField() bool {
	return m.Target == TargetUserSide || m.Target == TargetFoeSide || (m.Target == TargetAll && m.FieldHandlerID != NoHandler)
}

// HookBinding associates a hook name with a handler and its priority within
// that hook.
type HookBinding struct {
	Hook     HookName
	Handler  HandlerID
	Priority int
}

// Ability is an immutable ability record.
type Ability struct {
	ID       AbilityID
	Name     string
	Rating   float32
	Bindings []HookBinding
}

// ItemCategory loosely classifies items for legality/interaction checks
// (e.g. berries are consumable, choice items lock moves).
type ItemCategory int8

const (
	ItemCategoryGeneral ItemCategory = iota
	ItemCategoryBerry
	ItemCategoryChoice
	ItemCategoryPlate
	ItemCategoryMega
)

// Item is an immutable item record.
type Item struct {
	ID       ItemID
	Name     string
	Category ItemCategory
	Bindings []HookBinding
}

// HookName enumerates the dispatcher's hook points. Declared here (not in package dispatch) so data records
// can bind to hooks without importing the dispatcher.
type HookName int8

const (
	HookSwitchIn HookName = iota
	HookSwitchOut
	HookTryHit
	HookModifyType
	HookModifyPriority
	HookModifyAtk
	HookModifySpA
	HookModifyDef
	HookModifySpD
	HookModifySpe
	HookModifyAccuracy
	HookBasePower
	HookModifyDamage
	HookModifySTAB
	HookModifyCritStage
	HookDamagingHit
	HookAfterMove
	HookSideStart
	HookSideEnd
	HookSideResidual
	HookFieldStart
	HookFieldEnd
	HookFieldResidual
	HookResidual
	HookDisableMove
	HookBeforeMove
	HookTry
	HookFaint

	NumHooks = int(iota)
)

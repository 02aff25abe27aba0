package data

// Concrete HandlerID values for the small set of abilities/items this
// engine ships real effect implementations for (package effects). Every
// Ability/Item row that wants behavior beyond "does nothing" binds one of
// these in its Bindings slice; the dispatcher never sees or cares which one
// it is, only that effects.Resolve can turn the ID into a HandlerFunc.
const (
	_ HandlerID = iota // reserve 0 for NoHandler

	HandlerIntimidate
	HandlerLevitate
	HandlerStatic
	HandlerLeftovers
	HandlerLifeOrb
	HandlerChoiceBand
	HandlerRoughSkin
	HandlerAdaptability
	HandlerLifeOrbRecoil
	HandlerFocusEnergyBoost
	HandlerSetStealthRock
	HandlerSetSpikes
	HandlerSetReflect
	HandlerLeechSeedOnHit
	HandlerDreamEaterRequiresSleep
)

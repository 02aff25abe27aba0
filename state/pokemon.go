package state

import "github.com/pokesim/battlecore/data"

// PokemonRecord is the fixed-width packed record for one roster slot. The
// struct's field order is this engine's single source of truth for a
// Pokemon's battle data, in place of literal integer-array indices. HP,
// status and stage changes go through BattleState's accessor methods; other
// packages read these fields directly and also write volatiles and counters
// directly.
type PokemonRecord struct {
	Species       data.SpeciesID
	Level         int8
	Nature        int8
	Ability       data.AbilityID
	Item          data.ItemID
	PrimaryType   data.Type
	SecondaryType data.TypeID // data.NoSecondaryType if monotype
	TeraType      data.Type
	Terastallized bool

	Stats     [data.NumStats]int // final computed stats (nature/IV/EV applied)
	CurrentHP int

	Status        data.Status
	StatusCounter int // sleep turns remaining, toxic counter, etc.

	Stages [data.NumStageAxes]int8

	Moves [4]data.MoveID

	Volatiles Volatiles

	AbilitySuppressed bool // neutralizing gas / gastro acid: ability ID stays, effect doesn't

	IVs [data.NumStats]int8
	EVs [data.NumStats]int8
}

// MaxHP returns the Pokemon's maximum HP, i.e. its computed HP stat.
func (p *PokemonRecord) MaxHP() int { return p.Stats[data.HP] }

// IsFainted reports whether the Pokemon has fainted.
func (p *PokemonRecord) IsFainted() bool { return p.Status == data.StatusFainted }

// EffectiveAbility returns the bound ability, or data.NoAbility if
// suppressed.
func (p *PokemonRecord) EffectiveAbility() data.AbilityID {
	if p.AbilitySuppressed {
		return data.NoAbility
	}
	return p.Ability
}

// DefendingTypes returns the types the damage pipeline should check
// effectiveness against: the single Tera type if terastallized, else the
// Pokemon's original one or two types.
func (p *PokemonRecord) DefendingTypes() []data.Type {
	if p.Terastallized {
		return []data.Type{p.TeraType}
	}
	if p.SecondaryType == data.NoSecondaryType {
		return []data.Type{p.PrimaryType}
	}
	return []data.Type{p.PrimaryType, data.Type(p.SecondaryType)}
}

// HasOriginalType reports whether t is one of the Pokemon's pre-Tera
// types, used for STAB when terastallized.
func (p *PokemonRecord) HasOriginalType(t data.Type) bool {
	if p.PrimaryType == t {
		return true
	}
	return p.SecondaryType != data.NoSecondaryType && data.Type(p.SecondaryType) == t
}

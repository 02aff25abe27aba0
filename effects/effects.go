// Package effects is where ability and item behavior actually lives: a
// static table mapping each data.HandlerID to the dispatch.HandlerFunc
// closure that implements it. data.Ability and data.Item only carry the
// opaque ID (so the data package stays free of any dependency on dispatch or
// state); engine.New resolves the ID through this table at bind time.
//
// Adding a new ability or item means adding a constant in data/handlers.go
// and a case here — nothing in dispatch or engine changes.
package effects

import (
	"github.com/pokesim/battlecore/data"
	"github.com/pokesim/battlecore/dispatch"
	"github.com/pokesim/battlecore/numeric"
	"github.com/pokesim/battlecore/state"
)

var table = map[data.HandlerID]dispatch.HandlerFunc{
	data.HandlerIntimidate:              intimidate,
	data.HandlerLevitate:                levitate,
	data.HandlerStatic:                  static,
	data.HandlerLeftovers:               leftovers,
	data.HandlerLifeOrb:                 lifeOrb,
	data.HandlerChoiceBand:              choiceBand,
	data.HandlerRoughSkin:               roughSkin,
	data.HandlerAdaptability:            adaptability,
	data.HandlerLifeOrbRecoil:           lifeOrbRecoil,
	data.HandlerFocusEnergyBoost:        focusEnergyBoost,
	data.HandlerSetStealthRock:          setStealthRock,
	data.HandlerSetSpikes:               setSpikes,
	data.HandlerSetReflect:              setReflect,
	data.HandlerLeechSeedOnHit:          leechSeedOnHit,
	data.HandlerDreamEaterRequiresSleep: dreamEaterRequiresSleep,
}

// Resolve returns the HandlerFunc bound to id, or nil if id has no
// implementation (NoHandler, or a data-table entry referencing a handler
// this build doesn't ship yet).
func Resolve(id data.HandlerID) dispatch.HandlerFunc {
	return table[id]
}

// intimidate fires on switch-in, dropping every adjacent foe's Attack by one
// stage.
func intimidate(ctx *dispatch.Context) dispatch.Result {
	side := ctx.Attacker.Side
	for foeSide := range ctx.State.Pokemon {
		if foeSide == side {
			continue
		}
		for _, foeTeam := range ctx.State.Active[foeSide] {
			p := ctx.State.TeamPokemon(foeSide, foeTeam)
			if p.IsFainted() {
				continue
			}
			ctx.State.AdjustStage(foeSide, foeTeam, data.StageAtk, -1, "ability:intimidate")
		}
	}
	return dispatch.Result{}
}

// levitate grants immunity to Ground-type moves, unless the move ignores
// type immunities by targeting the field directly (handled upstream by the
// pipeline before this ever fires).
func levitate(ctx *dispatch.Context) dispatch.Result {
	if ctx.RunningType == data.Ground {
		return dispatch.Result{Cancel: true, Immune: true}
	}
	return dispatch.Result{}
}

// static has a 3/10 chance to paralyze the attacker on a contact hit.
func static(ctx *dispatch.Context) dispatch.Result {
	if ctx.Move == nil || !ctx.Move.HasFlag(data.FlagContact) {
		return dispatch.Result{}
	}
	if ctx.State.RNG.Bool(3, 10) {
		ctx.State.SetStatus(ctx.Attacker.Side, ctx.Attacker.Team, data.StatusParalysis, "ability:static")
	}
	return dispatch.Result{}
}

// leftovers heals 1/16 max HP at the end of every turn.
func leftovers(ctx *dispatch.Context) dispatch.Result {
	p := ctx.TargetPokemon()
	if p.IsFainted() {
		return dispatch.Result{}
	}
	amount := p.MaxHP() / 16
	if amount < 1 {
		amount = 1
	}
	ctx.State.Heal(ctx.Target.Side, ctx.Target.Team, amount, "item:leftovers")
	return dispatch.Result{}
}

// lifeOrb boosts damage by 1.3x. It binds on_base_power/on_modify_damage;
// the accompanying 1/10 max-HP recoil binds separately on on_damaging_hit
// (lifeOrbRecoil), since that's the hook that fires once HP has actually
// been applied and Life Orb's own multiplier has already been folded in.
func lifeOrb(ctx *dispatch.Context) dispatch.Result {
	return dispatch.Result{Multiplier: numeric.R(13, 10), HasMultiplier: true}
}

// lifeOrbRecoil damages the holder for 1/10 its max HP whenever its move
// actually dealt damage. Binds on_damaging_hit alongside lifeOrb's
// on_base_power binding.
func lifeOrbRecoil(ctx *dispatch.Context) dispatch.Result {
	if ctx.Damage <= 0 {
		return dispatch.Result{}
	}
	attacker := ctx.AttackerPokemon()
	if attacker.IsFainted() {
		return dispatch.Result{}
	}
	dmg := attacker.MaxHP() / 10
	if dmg < 1 {
		dmg = 1
	}
	ctx.State.Damage(ctx.Attacker.Side, ctx.Attacker.Team, dmg, "item:lifeorb")
	return dispatch.Result{}
}

// adaptability overrides STAB to exactly 2x for moves that match one of the
// attacker's types, replacing the normal 1.5x/2x tiers rather than stacking
// with them.
func adaptability(ctx *dispatch.Context) dispatch.Result {
	atk := ctx.AttackerPokemon()
	match := atk.HasOriginalType(ctx.RunningType) || (atk.Terastallized && atk.TeraType == ctx.RunningType)
	if !match {
		return dispatch.Result{}
	}
	return dispatch.Result{Multiplier: numeric.R(2, 1), HasMultiplier: true}
}

// focusEnergyBoost adds two crit stages while Focus Energy is active. Binds
// on_modify_crit_stage; mutates ctx.Extra directly the way on_modify_type
// handlers mutate ctx.RunningType, since a stage count isn't a multiplier.
func focusEnergyBoost(ctx *dispatch.Context) dispatch.Result {
	if ctx.AttackerPokemon().Volatiles.Has(state.VolatileFocusEnergy) {
		ctx.Extra += 2
	}
	return dispatch.Result{}
}

// setStealthRock registers Stealth Rock on the target side. Fails if
// already set; Stealth Rock doesn't stack in layers.
func setStealthRock(ctx *dispatch.Context) dispatch.Result {
	sd := &ctx.State.Sides[ctx.Target.Side]
	if sd.Conditions[state.SideStealthRock] > 0 {
		return dispatch.Result{Cancel: true}
	}
	sd.Conditions[state.SideStealthRock] = 1
	ctx.State.Log.Append(state.LogRecord{Kind: state.LogSideStart, Side: ctx.Target.Side, Condition: "stealthrock"})
	return dispatch.Result{}
}

// setSpikes adds one layer of Spikes to the target side, up to MaxLayers.
func setSpikes(ctx *dispatch.Context) dispatch.Result {
	sd := &ctx.State.Sides[ctx.Target.Side]
	if sd.Conditions[state.SideSpikes] >= state.MaxLayers[state.SideSpikes] {
		return dispatch.Result{Cancel: true}
	}
	sd.Conditions[state.SideSpikes]++
	ctx.State.Log.Append(state.LogRecord{Kind: state.LogSideStart, Side: ctx.Target.Side, Condition: "spikes"})
	return dispatch.Result{}
}

// setReflect sets a 5-turn Reflect on the target side (the user's own side,
// since Reflect targets TargetUserSide).
func setReflect(ctx *dispatch.Context) dispatch.Result {
	sd := &ctx.State.Sides[ctx.Target.Side]
	if sd.Conditions[state.SideReflect] > 0 {
		return dispatch.Result{Cancel: true}
	}
	sd.Conditions[state.SideReflect] = 5
	ctx.State.Log.Append(state.LogRecord{Kind: state.LogSideStart, Side: ctx.Target.Side, Condition: "reflect"})
	return dispatch.Result{}
}

// leechSeedOnHit plants Leech Seed on the target, unless it's Grass-type
// (the one type immunity to the seed). Binds a move's OnHitHandler.
func leechSeedOnHit(ctx *dispatch.Context) dispatch.Result {
	tgt := ctx.TargetPokemon()
	for _, t := range tgt.DefendingTypes() {
		if t == data.Grass {
			return dispatch.Result{Cancel: true}
		}
	}
	tgt.Volatiles.Set(state.VolatileLeechSeed)
	return dispatch.Result{}
}

// dreamEaterRequiresSleep cancels the move's on_try step unless the target
// is already asleep. Binds a move's OnTryHandler.
func dreamEaterRequiresSleep(ctx *dispatch.Context) dispatch.Result {
	tgt := ctx.TargetPokemon()
	if tgt.Status != data.StatusSleep {
		return dispatch.Result{Cancel: true}
	}
	return dispatch.Result{}
}

// choiceBand boosts Attack by 1.5x; move-locking is enforced by the
// scheduler's legality check against the held item category, not here.
func choiceBand(ctx *dispatch.Context) dispatch.Result {
	return dispatch.Result{Multiplier: numeric.R(3, 2), HasMultiplier: true}
}

// roughSkin damages an attacker for 1/8 its max HP on a contact hit.
func roughSkin(ctx *dispatch.Context) dispatch.Result {
	if ctx.Move == nil || !ctx.Move.HasFlag(data.FlagContact) {
		return dispatch.Result{}
	}
	attacker := ctx.AttackerPokemon()
	if attacker.IsFainted() {
		return dispatch.Result{}
	}
	dmg := attacker.MaxHP() / 8
	if dmg < 1 {
		dmg = 1
	}
	ctx.State.Damage(ctx.Attacker.Side, ctx.Attacker.Team, dmg, "ability:roughskin")
	return dispatch.Result{}
}

package damage

import (
	"github.com/pokesim/battlecore/data"
	"github.com/pokesim/battlecore/dispatch"
	"github.com/pokesim/battlecore/state"
)

// PreMoveOutcome reports whether an attacker's move action is consumed by
// a pre-move condition rather than executing.
type PreMoveOutcome struct {
	Prevented bool
	Reason    string // "sleep", "frozen", "paralyzed", "flinch", "confused_hit_self", "recharge"
	SelfHit   int    // damage dealt by a confusion self-hit, if any
}

// ResolvePreMove draws, in the fixed documented order, the rolls that can
// stop a move before it ever reaches on_try: sleep wake check (a
// StatusCounter countdown, no draw), freeze thaw check, full-paralysis
// check, flinch (no draw here — the flincher's source already rolled when it
// hit), and confusion self-hit.
func (p *Pipeline) ResolvePreMove(actor dispatch.Ref) PreMoveOutcome {
	pk := p.State.TeamPokemon(actor.Side, actor.Team)

	if pk.Volatiles.Has(state.VolatileMustRecharge) {
		pk.Volatiles.Clear(state.VolatileMustRecharge)
		return PreMoveOutcome{Prevented: true, Reason: "recharge"}
	}

	switch pk.Status {
	case data.StatusSleep:
		if pk.StatusCounter <= 0 {
			p.State.CureStatus(actor.Side, actor.Team, "sleep_wake")
			break
		}
		pk.StatusCounter--
		return PreMoveOutcome{Prevented: true, Reason: "sleep"}
	case data.StatusFreeze:
		if p.State.RNG.Bool(1, 5) {
			p.State.CureStatus(actor.Side, actor.Team, "thaw")
			break
		}
		return PreMoveOutcome{Prevented: true, Reason: "frozen"}
	}

	if pk.Status == data.StatusParalysis {
		if p.State.RNG.Bool(1, 4) {
			return PreMoveOutcome{Prevented: true, Reason: "paralyzed"}
		}
	}

	if pk.Volatiles.Has(state.VolatileFlinch) {
		return PreMoveOutcome{Prevented: true, Reason: "flinch"}
	}

	if pk.Volatiles.Has(state.VolatileConfusion) {
		if pk.Volatiles.ConfuseTurns <= 0 {
			pk.Volatiles.Clear(state.VolatileConfusion)
		} else {
			pk.Volatiles.ConfuseTurns--
			if p.State.RNG.Bool(1, 3) {
				dmg := BaseDamage(int(pk.Level), 40, pk.Stats[data.Atk], pk.Stats[data.Def])
				actual := p.State.Damage(actor.Side, actor.Team, dmg, "confusion")
				return PreMoveOutcome{Prevented: true, Reason: "confused_hit_self", SelfHit: actual}
			}
		}
	}

	return PreMoveOutcome{}
}

package scheduler

import (
	"github.com/pkg/errors"

	"github.com/pokesim/battlecore/data"
	"github.com/pokesim/battlecore/dispatch"
	"github.com/pokesim/battlecore/state"
)

// validateAction checks one submitted action against the legality rules:
// legal target, PP > 0 unless struggle, not disabled, not trapped, matches
// encore override, matches choice-lock. It never mutates state.
func (s *Scheduler) validateAction(side int, a Action) error {
	if a.ActiveSlot < 0 || a.ActiveSlot >= s.State.Format.ActiveSlots {
		return errors.Wrapf(ErrInvalidAction, "side %d: active slot %d out of range", side, a.ActiveSlot)
	}
	actor := s.State.ActivePokemon(side, a.ActiveSlot)
	if actor.IsFainted() && a.Kind == ActionMove {
		return errors.Wrapf(ErrInvalidAction, "side %d slot %d: fainted pokemon cannot act", side, a.ActiveSlot)
	}

	switch a.Kind {
	case ActionPass:
		return nil

	case ActionSwitch:
		if a.SwitchTeamIndex < 0 || a.SwitchTeamIndex >= s.State.Format.TeamSize {
			return errors.Wrapf(ErrInvalidAction, "side %d: switch target %d out of range", side, a.SwitchTeamIndex)
		}
		target := s.State.TeamPokemon(side, a.SwitchTeamIndex)
		if target.IsFainted() {
			return errors.Wrapf(ErrInvalidAction, "side %d: switch target %d has fainted", side, a.SwitchTeamIndex)
		}
		for _, activeIdx := range s.State.Active[side] {
			if activeIdx == a.SwitchTeamIndex {
				return errors.Wrapf(ErrInvalidAction, "side %d: %d is already active", side, a.SwitchTeamIndex)
			}
		}
		if actor.Volatiles.Has(state.VolatileTrapped) {
			return errors.Wrapf(ErrInvalidAction, "side %d slot %d: trapped", side, a.ActiveSlot)
		}
		return nil

	case ActionMove:
		if a.MoveSlot < 0 || a.MoveSlot >= 4 {
			return errors.Wrapf(ErrInvalidAction, "side %d slot %d: move slot %d out of range", side, a.ActiveSlot, a.MoveSlot)
		}
		teamIdx := s.State.Active[side][a.ActiveSlot]
		if s.State.PP[side][teamIdx][a.MoveSlot] <= 0 && !allPPExhausted(s.State, side, teamIdx) {
			return errors.Wrapf(ErrInvalidAction, "side %d slot %d: move %d has no PP", side, a.ActiveSlot, a.MoveSlot)
		}
		if int8(a.MoveSlot) == actor.Volatiles.DisableSlot {
			return errors.Wrapf(ErrInvalidAction, "side %d slot %d: move %d is disabled", side, a.ActiveSlot, a.MoveSlot)
		}
		if actor.Volatiles.EncoreTurns > 0 && actor.Volatiles.EncoreMove >= 0 && int8(a.MoveSlot) != actor.Volatiles.EncoreMove {
			return errors.Wrapf(ErrInvalidAction, "side %d slot %d: encored into move %d", side, a.ActiveSlot, actor.Volatiles.EncoreMove)
		}
		if actor.Volatiles.Has(state.VolatileChoiceLocked) && actor.Volatiles.LockedSlot >= 0 && int8(a.MoveSlot) != actor.Volatiles.LockedSlot {
			return errors.Wrapf(ErrInvalidAction, "side %d slot %d: choice-locked into move %d", side, a.ActiveSlot, actor.Volatiles.LockedSlot)
		}
		move, err := s.Registry.Move(actor.Moves[a.MoveSlot])
		if err != nil {
			return errors.Wrapf(err, "side %d slot %d: move %d", side, a.ActiveSlot, a.MoveSlot)
		}
		if !move.TargetsField() && (move.Target == data.TargetOneAdjacentFoe || move.Target == data.TargetAdjacentAlly) {
			if a.Target.Side < 0 || a.Target.Side >= s.State.Format.NumSides || a.Target.Slot < 0 || a.Target.Slot >= s.State.Format.ActiveSlots {
				return errors.Wrapf(ErrInvalidAction, "side %d slot %d: target side %d slot %d out of range", side, a.ActiveSlot, a.Target.Side, a.Target.Slot)
			}
		}
		if actor.Volatiles.TaunTurns > 0 && move.Category == data.CategoryStatus {
			return errors.Wrapf(ErrInvalidAction, "side %d slot %d: taunted, cannot use status move %d", side, a.ActiveSlot, a.MoveSlot)
		}
		dctx := &dispatch.Context{Attacker: dispatch.Ref{Side: side, Team: teamIdx}, Move: &move}
		if disabled, _ := s.Dispatch.FireCancel(data.HookDisableMove, dctx); disabled {
			return errors.Wrapf(ErrInvalidAction, "side %d slot %d: move %d disabled by an active handler", side, a.ActiveSlot, a.MoveSlot)
		}
		return nil
	}
	return errors.Wrapf(ErrInvalidAction, "side %d slot %d: unknown action kind", side, a.ActiveSlot)
}

// allPPExhausted reports whether every move slot is at 0 PP, the condition
// under which a move slot's PP check is bypassed (the Struggle case). The
// submitted slot's own move then executes; there is no separate Struggle
// move.
func allPPExhausted(bs *state.BattleState, side, team int) bool {
	for _, pp := range bs.PP[side][team] {
		if pp > 0 {
			return false
		}
	}
	return true
}

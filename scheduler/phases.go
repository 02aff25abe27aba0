package scheduler

import (
	"github.com/pkg/errors"

	"github.com/pokesim/battlecore/damage"
	"github.com/pokesim/battlecore/data"
	"github.com/pokesim/battlecore/dispatch"
	"github.com/pokesim/battlecore/effects"
	"github.com/pokesim/battlecore/logx"
	"github.com/pokesim/battlecore/state"
)

// executeOneMove runs one queued move action: skip a fainted attacker, run
// pre-move checks, resolve targets at execution time (they may have moved,
// fainted, or been redirected since move order was computed), and run the
// Damage & Accuracy Pipeline.
func (s *Scheduler) executeOneMove(mo moveOrderEntry) {
	side := mo.side
	pk := s.State.TeamPokemon(side, mo.originalTeam)
	if pk.IsFainted() {
		return
	}
	if s.State.Active[side][mo.action.ActiveSlot] != mo.originalTeam {
		return // the mover was switched out of this slot earlier this turn
	}
	attacker := dispatch.Ref{Side: side, Team: mo.originalTeam}

	move, err := s.Registry.Move(pk.Moves[mo.action.MoveSlot])
	if err != nil {
		return
	}

	pre := s.Pipeline.ResolvePreMove(attacker)
	if pre.Prevented {
		// PP is decremented only for moves "actually attempted (not
		// moves that failed pre-checks that the rules treat as non-use)".
		return
	}

	ctx := &dispatch.Context{Attacker: attacker, Move: &move}
	s.Dispatch.Fire(data.HookBeforeMove, ctx)
	if cancelled, _ := s.Dispatch.FireCancel(data.HookTry, ctx); cancelled {
		s.State.ConsumePP(side, mo.originalTeam, mo.action.MoveSlot)
		s.State.Log.Append(state.LogRecord{Kind: state.LogFail, Side: side, Slot: mo.originalTeam, Reason: "on_try"})
		return
	}

	s.State.ConsumePP(side, mo.originalTeam, mo.action.MoveSlot)
	s.State.Log.Append(state.LogRecord{Kind: state.LogMove, Side: side, Slot: mo.originalTeam, MoveID: int32(move.ID)})

	if move.TargetsField() {
		fieldSide := side
		if move.Target == data.TargetFoeSide {
			fieldSide = 1 - side
		}
		if handler := effects.Resolve(move.FieldHandlerID); handler != nil {
			fctx := &dispatch.Context{State: s.State, Attacker: attacker, Target: dispatch.Ref{Side: fieldSide}, HasTarget: true, Move: &move}
			handler(fctx)
		}
		s.Dispatch.Fire(data.HookFieldStart, ctx)
		s.Dispatch.Fire(data.HookAfterMove, ctx)
		return
	}

	targets := s.resolveTargets(mo, move)
	if len(targets) == 0 {
		s.State.Log.Append(state.LogRecord{Kind: state.LogFail, Side: side, Slot: mo.originalTeam, Reason: "no_target"})
		return
	}

	if handler := effects.Resolve(move.OnTryHandler); handler != nil {
		tctx := &dispatch.Context{State: s.State, Attacker: attacker, Target: targets[0], HasTarget: true, Move: &move}
		if res := handler(tctx); res.Cancel {
			s.State.Log.Append(state.LogRecord{Kind: state.LogFail, Side: side, Slot: mo.originalTeam, Reason: "on_try"})
			return
		}
	}

	spreadHit := len(targets) > 1

	hitCount := 1
	switch move.HitCount {
	case data.HitCountTwo:
		hitCount = 2
	case data.HitCountFixedThree:
		hitCount = 3
	case data.HitCountStandardMulti:
		draw := s.State.RNG.Intn(8)
		hitCount = damage.ResolveMultiHitCount(draw)
	}

	anyHit := false
	for _, tgt := range targets {
		for hit := 0; hit < hitCount; hit++ {
			if s.State.TeamPokemon(tgt.Side, tgt.Team).IsFainted() {
				break
			}
			out, err := s.Pipeline.ResolveHit(attacker, tgt, &move, spreadHit, hit)
			if err != nil {
				continue
			}
			if !out.Missed && !out.Immune {
				anyHit = true
				if handler := effects.Resolve(move.OnHitHandler); handler != nil {
					hctx := &dispatch.Context{State: s.State, Attacker: attacker, Target: tgt, HasTarget: true, Move: &move, HitNum: hit}
					handler(hctx)
				}
			}
		}
	}

	s.Dispatch.Fire(data.HookAfterMove, ctx)

	if (anyHit && move.SelfEffect == data.SelfSwitchOnHit) || move.SelfEffect == data.SelfSwitchAlways {
		s.pendingSelfSwitch = append(s.pendingSelfSwitch, selfSwitchRequest{side: side, activeSlot: mo.action.ActiveSlot})
	}
}

type selfSwitchRequest struct {
	side       int
	activeSlot int
}

// resolveTargets expands a move's declared target mode into concrete
// (side, team) refs at execution time.
func (s *Scheduler) resolveTargets(mo moveOrderEntry, move data.Move) []dispatch.Ref {
	side := mo.side
	attackerTeam := s.State.Active[side][mo.action.ActiveSlot]

	switch move.Target {
	case data.TargetSelf:
		return []dispatch.Ref{{Side: side, Team: attackerTeam}}

	case data.TargetAllAdjacentFoes, data.TargetAllOthers, data.TargetAll:
		var refs []dispatch.Ref
		for s2 := 0; s2 < s.State.Format.NumSides; s2++ {
			for slot := 0; slot < s.State.Format.ActiveSlots; slot++ {
				if move.Target == data.TargetAllAdjacentFoes && s2 == side {
					continue
				}
				if s2 == side && slot == mo.action.ActiveSlot && move.Target != data.TargetAll {
					continue
				}
				team := s.State.Active[s2][slot]
				if s.State.TeamPokemon(s2, team).IsFainted() {
					continue
				}
				refs = append(refs, dispatch.Ref{Side: s2, Team: team})
			}
		}
		return refs

	case data.TargetRandomFoe:
		var foes []dispatch.Ref
		for s2 := 0; s2 < s.State.Format.NumSides; s2++ {
			if s2 == side {
				continue
			}
			for slot := 0; slot < s.State.Format.ActiveSlots; slot++ {
				team := s.State.Active[s2][slot]
				if !s.State.TeamPokemon(s2, team).IsFainted() {
					foes = append(foes, dispatch.Ref{Side: s2, Team: team})
				}
			}
		}
		if len(foes) == 0 {
			return nil
		}
		return []dispatch.Ref{foes[s.State.RNG.Intn(len(foes))]}

	default: // one adjacent foe / adjacent ally: caller named the slot explicitly
		tgtTeam := s.State.Active[mo.action.Target.Side][mo.action.Target.Slot]
		if s.State.TeamPokemon(mo.action.Target.Side, tgtTeam).IsFainted() {
			return nil
		}
		return []dispatch.Ref{{Side: mo.action.Target.Side, Team: tgtTeam}}
	}
}

// checkEnd detects the instant-end condition.
func (s *Scheduler) checkEnd() (StepOutcome, bool) {
	wiped := make([]bool, s.State.Format.NumSides)
	any := false
	for side := 0; side < s.State.Format.NumSides; side++ {
		wiped[side] = s.State.AllFainted(side)
		any = any || wiped[side]
	}
	if !any {
		return StepOutcome{}, false
	}
	s.phase = Ended
	allWiped := true
	for _, w := range wiped {
		allWiped = allWiped && w
	}
	if allWiped {
		return StepOutcome{Phase: Ended, Draw: true, Winner: -1}, true
	}
	winner := -1
	for side, w := range wiped {
		if !w {
			winner = side
		}
	}
	return StepOutcome{Phase: Ended, Winner: winner}, true
}

// runResidual fires field residual, then every side's residual, then
// per-Pokemon residual, decrementing the weather, terrain, room and timed
// side-condition counters. When weather, terrain or a timed side condition
// reaches zero a field_end/side_end log record is appended; no
// on_field_end/on_side_end handlers are fired, and the room counters reach
// zero without a log record.
func (s *Scheduler) runResidual() {
	s.Logger.Debug("residual phase start", logx.F("turn", int(s.State.Field.Turn)))

	fctx := &dispatch.Context{}
	s.Dispatch.Fire(data.HookFieldResidual, fctx)
	s.decrementFieldDurations()

	for side := 0; side < s.State.Format.NumSides; side++ {
		sctx := &dispatch.Context{Attacker: dispatch.Ref{Side: side}}
		s.Dispatch.Fire(data.HookSideResidual, sctx)
		s.decrementSideDurations(side)
	}

	for side := 0; side < s.State.Format.NumSides; side++ {
		for slot := 0; slot < s.State.Format.ActiveSlots; slot++ {
			team := s.State.Active[side][slot]
			if s.State.TeamPokemon(side, team).IsFainted() {
				continue
			}
			pctx := &dispatch.Context{Attacker: dispatch.Ref{Side: side, Team: team}}
			s.Dispatch.Fire(data.HookResidual, pctx)
			before := s.State.TeamPokemon(side, team).CurrentHP
			s.applyStatusResidual(side, team)
			if after := s.State.TeamPokemon(side, team).CurrentHP; after != before {
				s.Logger.Debug("residual damage", logx.F("side", side), logx.F("team", team), logx.F("hp", after))
			}
		}
	}
}

func (s *Scheduler) applyStatusResidual(side, team int) {
	pk := s.State.TeamPokemon(side, team)
	switch pk.Status {
	case data.StatusBurn:
		s.State.Damage(side, team, pk.MaxHP()/16, "residual:burn")
	case data.StatusPoison:
		s.State.Damage(side, team, pk.MaxHP()/8, "residual:poison")
	case data.StatusBadlyPoisoned:
		pk.StatusCounter++
		s.State.Damage(side, team, pk.MaxHP()*pk.StatusCounter/16, "residual:toxic")
	}
	if pk.Volatiles.Has(state.VolatileLeechSeed) {
		dmg := s.State.Damage(side, team, pk.MaxHP()/8, "residual:leechseed")
		foeSide := 1 - side
		if foeSide >= 0 && foeSide < s.State.Format.NumSides {
			for slot := 0; slot < s.State.Format.ActiveSlots; slot++ {
				foeTeam := s.State.Active[foeSide][slot]
				if !s.State.TeamPokemon(foeSide, foeTeam).IsFainted() {
					s.State.Heal(foeSide, foeTeam, dmg, "leechseed:drain")
					break
				}
			}
		}
	}
}

func (s *Scheduler) decrementFieldDurations() {
	f := &s.State.Field
	if f.WeatherTurns > 0 {
		f.WeatherTurns--
		if f.WeatherTurns == 0 {
			f.Weather = state.WeatherNone
			s.State.Log.Append(state.LogRecord{Kind: state.LogFieldEnd})
		}
	}
	if f.TerrainTurns > 0 {
		f.TerrainTurns--
		if f.TerrainTurns == 0 {
			f.Terrain = state.TerrainNone
			s.State.Log.Append(state.LogRecord{Kind: state.LogFieldEnd})
		}
	}
	decr := func(v *int8) {
		if *v > 0 {
			*v--
		}
	}
	decr(&f.TrickRoom)
	decr(&f.MagicRoom)
	decr(&f.WonderRoom)
}

func (s *Scheduler) decrementSideDurations(side int) {
	sd := &s.State.Sides[side]
	for _, col := range []state.SideConditionID{state.SideReflect, state.SideLightScreen, state.SideAuroraVeil, state.SideTailwind, state.SideSafeguard, state.SideMist} {
		if sd.Conditions[col] > 0 {
			sd.Conditions[col]--
			if sd.Conditions[col] == 0 {
				s.State.Log.Append(state.LogRecord{Kind: state.LogSideEnd, Side: side, Condition: sideConditionName(col)})
			}
		}
	}
}

func sideConditionName(c state.SideConditionID) string {
	names := map[state.SideConditionID]string{
		state.SideReflect: "reflect", state.SideLightScreen: "lightscreen", state.SideAuroraVeil: "auroraveil",
		state.SideTailwind: "tailwind", state.SideSafeguard: "safeguard", state.SideMist: "mist",
	}
	return names[c]
}

// resolveFaints fires on_faint for every newly fainted Pokemon and
// increments the side's fainted counter once per Pokemon.
func (s *Scheduler) resolveFaints() {
	for side := 0; side < s.State.Format.NumSides; side++ {
		for team := range s.State.Pokemon[side] {
			pk := &s.State.Pokemon[side][team]
			if pk.IsFainted() && !s.alreadyCountedFaint(side, team) {
				s.Dispatch.Fire(data.HookFaint, &dispatch.Context{Attacker: dispatch.Ref{Side: side, Team: team}})
				s.Dispatch.UnregisterScope(side, team)
				s.State.Sides[side].Fainted++
				s.markFaintCounted(side, team)
			}
		}
	}
}

// alreadyCountedFaint reports, from countedFaints, whether a (side, team) faint has already incremented
// the side total, since resolveFaints may observe the same fainted Pokemon
// across multiple turns while it waits in a forced-switch queue.
func (s *Scheduler) alreadyCountedFaint(side, team int) bool {
	if s.countedFaints == nil {
		return false
	}
	return s.countedFaints[[2]int{side, team}]
}

func (s *Scheduler) markFaintCounted(side, team int) {
	if s.countedFaints == nil {
		s.countedFaints = make(map[[2]int]bool)
	}
	s.countedFaints[[2]int{side, team}] = true
}

// pendingForcedSwitches finds every active slot that needs a switch before
// the next ordinary Step: a slot whose Pokemon fainted this turn, plus any
// slot that raised a self-switch request (U-turn, Volt Switch, Baton Pass)
// during the move loop, provided the side still has a reserve to send in.
func (s *Scheduler) pendingForcedSwitches() map[int][]int {
	out := map[int][]int{}
	seen := map[[2]int]bool{}
	add := func(side, slot int) {
		if seen[[2]int{side, slot}] {
			return
		}
		seen[[2]int{side, slot}] = true
		out[side] = append(out[side], slot)
	}

	for side := 0; side < s.State.Format.NumSides; side++ {
		for slot := 0; slot < s.State.Format.ActiveSlots; slot++ {
			team := s.State.Active[side][slot]
			if s.State.TeamPokemon(side, team).IsFainted() && s.State.HasReserve(side) {
				add(side, slot)
			}
		}
	}
	for _, req := range s.pendingSelfSwitch {
		if s.State.HasReserve(req.side) {
			add(req.side, req.activeSlot)
		}
	}
	s.pendingSelfSwitch = nil

	if len(out) == 0 {
		return nil
	}
	return out
}

// resolveForcedSwitches applies the caller's switch-in choices, fires
// on_switch_in and hazards, then hands control back to AwaitingActions (or
// re-enters AwaitingForcedSwitches if a chain faint from hazards leaves
// another slot empty).
func (s *Scheduler) resolveForcedSwitches(actions map[int][]Action) (StepOutcome, error) {
	for side, list := range actions {
		for _, a := range list {
			if a.Kind != ActionSwitch {
				continue
			}
			outgoing := s.State.Active[side][a.ActiveSlot]
			if !s.State.TeamPokemon(side, outgoing).IsFainted() {
				// a self-switch (U-turn/Volt Switch/Baton Pass), not a faint: the
				// outgoing Pokemon unregisters and resets the same way a voluntary
				// switch does.
				s.Dispatch.Fire(data.HookSwitchOut, &dispatch.Context{Attacker: dispatch.Ref{Side: side, Team: outgoing}})
				s.Dispatch.UnregisterScope(side, outgoing)
				s.State.Pokemon[side][outgoing].Volatiles.ResetOnSwitchOut()
				s.State.ClearStages(side, outgoing)
			}
			s.State.Active[side][a.ActiveSlot] = a.SwitchTeamIndex
			s.State.Log.Append(state.LogRecord{Kind: state.LogSwitch, Side: side, Slot: a.SwitchTeamIndex, Species: int32(s.State.Pokemon[side][a.SwitchTeamIndex].Species)})
			s.Dispatch.Fire(data.HookSwitchIn, &dispatch.Context{Attacker: dispatch.Ref{Side: side, Team: a.SwitchTeamIndex}})
			s.applyHazards(side, a.SwitchTeamIndex)
		}
	}

	if outcome, ended := s.checkEnd(); ended {
		return outcome, nil
	}
	s.resolveFaints()
	if outcome, ended := s.checkEnd(); ended {
		return outcome, nil
	}

	if err := s.State.CheckInvariants(); err != nil {
		return StepOutcome{Phase: s.phase}, errors.Wrap(err, "invariant violation after forced switch")
	}

	if forced := s.pendingForcedSwitches(); len(forced) > 0 {
		return StepOutcome{Phase: AwaitingForcedSwitches, ForcedSwitches: forced}, nil
	}
	s.phase = AwaitingActions
	return StepOutcome{Phase: AwaitingActions}, nil
}

// applyHazards applies entry hazards on switch-in: stealth rock scaled by
// rock effectiveness, spikes scaled by layer count, toxic spikes poisoning
// unless immune, sticky web lowering Speed. Hazards draw no RNG.
func (s *Scheduler) applyHazards(side, team int) {
	sd := &s.State.Sides[side]
	pk := s.State.TeamPokemon(side, team)

	if sd.Conditions[state.SideStealthRock] > 0 {
		eff := data.CombinedEffectiveness(data.Rock, pk.DefendingTypes()...)
		dmg := int(eff.ApplyFloor(int64(pk.MaxHP()))) / 8
		s.State.Damage(side, team, dmg, "hazard:stealthrock")
	}
	if layers := sd.Conditions[state.SideSpikes]; layers > 0 && !contains(pk.DefendingTypes(), data.Flying) {
		denom := 8 - 2*(layers-1) // 1 layer -> /8, 2 -> /6, 3 -> /4
		s.State.Damage(side, team, pk.MaxHP()/denom, "hazard:spikes")
	}
	if sd.Conditions[state.SideToxicSpikes] > 0 && !contains(pk.DefendingTypes(), data.Flying) {
		if contains(pk.DefendingTypes(), data.Poison) {
			sd.Conditions[state.SideToxicSpikes] = 0
		} else if !contains(pk.DefendingTypes(), data.Steel) {
			if sd.Conditions[state.SideToxicSpikes] >= 2 {
				s.State.SetStatus(side, team, data.StatusBadlyPoisoned, "hazard:toxicspikes")
			} else {
				s.State.SetStatus(side, team, data.StatusPoison, "hazard:toxicspikes")
			}
		}
	}
	if sd.Conditions[state.SideStickyWeb] > 0 && !contains(pk.DefendingTypes(), data.Flying) {
		s.State.AdjustStage(side, team, data.StageSpe, -1, "hazard:stickyweb")
	}
}

func contains(types []data.Type, t data.Type) bool {
	for _, x := range types {
		if x == t {
			return true
		}
	}
	return false
}

// decrementCounters clears single-turn volatiles and decrements multi-turn
// volatile counters for every Pokemon.
func (s *Scheduler) decrementCounters() {
	for side := range s.State.Pokemon {
		for team := range s.State.Pokemon[side] {
			v := &s.State.Pokemon[side][team].Volatiles
			v.ResetSingleTurn()
			if v.TaunTurns > 0 {
				v.TaunTurns--
			}
			if v.DisableTurns > 0 {
				v.DisableTurns--
				if v.DisableTurns == 0 {
					v.DisableSlot = -1
				}
			}
			if v.EncoreTurns > 0 {
				v.EncoreTurns--
				if v.EncoreTurns == 0 {
					v.EncoreMove = -1
				}
			}
		}
	}
}

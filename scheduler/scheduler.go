package scheduler

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/pokesim/battlecore/data"
	"github.com/pokesim/battlecore/damage"
	"github.com/pokesim/battlecore/dispatch"
	"github.com/pokesim/battlecore/logx"
	"github.com/pokesim/battlecore/state"
)

// Phase is the scheduler's state machine position.
type Phase int8

const (
	AwaitingActions Phase = iota
	AwaitingForcedSwitches
	Ended
)

// StepOutcome is what Step returns after processing one batch of actions.
type StepOutcome struct {
	Phase Phase

	// ForcedSwitches lists, per side, the active slots that need a switch
	// action before the next ordinary Step call.
	ForcedSwitches map[int][]int

	// Winner is the side index that won, or -1 for a draw. Only meaningful
	// when Phase == Ended.
	Winner int
	Draw   bool
}

// Scheduler drives one battle's turns. It is the only component
// that consumes all five others.
type Scheduler struct {
	State    *state.BattleState
	Dispatch *dispatch.Dispatcher
	Registry *data.Registry
	Pipeline *damage.Pipeline
	Logger   logx.Logger

	phase Phase

	// pendingSelfSwitch queues U-turn/Volt-Switch/Baton-Pass style requests
	// raised during the move loop; they are folded into the next forced-
	// switch batch alongside faint-driven switches.
	pendingSelfSwitch []selfSwitchRequest

	// countedFaints remembers which (side, team) faints have already been
	// folded into Sides[side].Fainted, so a Pokemon sitting fainted across
	// multiple Step calls (waiting on a forced switch) is never counted twice.
	countedFaints map[[2]int]bool
}

// New builds a Scheduler wired to one battle's state/dispatcher/registry.
func New(bs *state.BattleState, d *dispatch.Dispatcher, reg *data.Registry, logger logx.Logger) *Scheduler {
	if logger == nil {
		logger = logx.NewNop()
	}
	return &Scheduler{
		State:    bs,
		Dispatch: d,
		Registry: reg,
		Pipeline: damage.New(bs, d, reg),
		Logger:   logger,
		phase:    AwaitingActions,
	}
}

// Phase reports the scheduler's current state-machine position.
func (s *Scheduler) Phase() Phase { return s.phase }

// Step validates and executes one batch of actions, driving the battle
// from its current phase to the next await point or to Ended.
func (s *Scheduler) Step(actions map[int][]Action) (StepOutcome, error) {
	if s.phase == Ended {
		return StepOutcome{Phase: Ended}, errors.New("scheduler: battle has already ended")
	}

	for side, list := range actions {
		for _, a := range list {
			if err := s.validateAction(side, a); err != nil {
				return StepOutcome{}, err
			}
		}
	}

	if s.phase == AwaitingForcedSwitches {
		return s.resolveForcedSwitches(actions)
	}

	return s.executeTurn(actions)
}

func (s *Scheduler) executeTurn(actions map[int][]Action) (StepOutcome, error) {
	turn := s.State.Field.Turn + 1
	s.Logger.Info("turn start", logx.F("turn", int(turn)))
	s.Log(state.LogRecord{Kind: state.LogTurnStart, Turn: turn})

	s.resolveVoluntarySwitches(actions)

	order := s.buildMoveOrder(actions)
	for _, mo := range order {
		s.executeOneMove(mo)
		if outcome, ended := s.checkEnd(); ended {
			return outcome, nil
		}
	}

	s.runResidual()
	if outcome, ended := s.checkEnd(); ended {
		return outcome, nil
	}

	s.resolveFaints()
	if outcome, ended := s.checkEnd(); ended {
		return outcome, nil
	}

	if err := s.State.CheckInvariants(); err != nil {
		return StepOutcome{Phase: s.phase}, errors.Wrap(err, "invariant violation after turn")
	}

	forced := s.pendingForcedSwitches()
	s.State.Field.Turn++
	s.decrementCounters()

	s.Logger.Info("turn end", logx.F("turn", int(turn)), logx.F("forced_switches", len(forced)))

	if len(forced) > 0 {
		s.phase = AwaitingForcedSwitches
		return StepOutcome{Phase: AwaitingForcedSwitches, ForcedSwitches: forced}, nil
	}

	s.phase = AwaitingActions
	return StepOutcome{Phase: AwaitingActions}, nil
}

func (s *Scheduler) resolveVoluntarySwitches(actions map[int][]Action) {
	for side := 0; side < s.State.Format.NumSides; side++ {
		for _, a := range actions[side] {
			if a.Kind != ActionSwitch {
				continue
			}
			s.performSwitch(side, a.ActiveSlot, a.SwitchTeamIndex)
		}
	}
}

func (s *Scheduler) performSwitch(side, activeSlot, newTeamIndex int) {
	outgoing := s.State.Active[side][activeSlot]
	s.Dispatch.Fire(data.HookSwitchOut, &dispatch.Context{Attacker: dispatch.Ref{Side: side, Team: outgoing}})
	s.Dispatch.UnregisterScope(side, outgoing)
	s.State.Pokemon[side][outgoing].Volatiles.ResetOnSwitchOut()
	s.State.ClearStages(side, outgoing)

	s.State.Active[side][activeSlot] = newTeamIndex
	s.State.Log.Append(state.LogRecord{Kind: state.LogSwitch, Side: side, Slot: newTeamIndex, Species: int32(s.State.Pokemon[side][newTeamIndex].Species)})
	s.Dispatch.Fire(data.HookSwitchIn, &dispatch.Context{Attacker: dispatch.Ref{Side: side, Team: newTeamIndex}})
}

// moveOrderEntry pairs a submitted move action with the keys it sorts by.
type moveOrderEntry struct {
	side         int
	action       Action
	originalTeam int
	priority     int
	speedTier    int
	tieBreak     int
}

// buildMoveOrder computes the ordering key for every move action and
// resolves speed ties with one fresh RNG draw per tie, drawn on demand in
// the order ties are encountered during the sort.
func (s *Scheduler) buildMoveOrder(actions map[int][]Action) []moveOrderEntry {
	var entries []moveOrderEntry
	for side := 0; side < s.State.Format.NumSides; side++ {
		for _, a := range actions[side] {
			if a.Kind != ActionMove {
				continue
			}
			teamIdx := s.State.Active[side][a.ActiveSlot]
			pk := s.State.ActivePokemon(side, a.ActiveSlot)
			move, err := s.Registry.Move(pk.Moves[a.MoveSlot])
			priority := 0
			if err == nil {
				priority = move.Priority
			}
			ctx := &dispatch.Context{Attacker: dispatch.Ref{Side: side, Team: teamIdx}}
			if mult, _ := s.Dispatch.FireMultiplier(data.HookModifyPriority, ctx); !mult.IsOne() {
				priority += int(mult.ApplyFloor(1)) - 1
			}
			speed := s.effectiveSpeed(side, teamIdx)
			if s.State.Field.TrickRoomActive() {
				speed = -speed
			}
			entries = append(entries, moveOrderEntry{side: side, action: a, originalTeam: teamIdx, priority: priority, speedTier: speed})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].priority != entries[j].priority {
			return entries[i].priority > entries[j].priority
		}
		if entries[i].speedTier != entries[j].speedTier {
			return entries[i].speedTier > entries[j].speedTier
		}
		// speed tie: draw a fresh coin per encountered tie.
		if entries[i].tieBreak == 0 && entries[j].tieBreak == 0 {
			coin := s.State.RNG.Intn(2)
			if coin == 0 {
				entries[i].tieBreak, entries[j].tieBreak = 1, -1
			} else {
				entries[i].tieBreak, entries[j].tieBreak = -1, 1
			}
		}
		return entries[i].tieBreak > entries[j].tieBreak
	})
	return entries
}

// effectiveSpeed folds paralysis and on_modify_spe handlers into a
// Pokemon's current Speed.
func (s *Scheduler) effectiveSpeed(side, teamIdx int) int {
	base := s.State.BaseSpeed(side, teamIdx)
	if s.State.IsParalyzed(side, teamIdx) {
		base = base * state.ParalysisSpeedNum / state.ParalysisSpeedDen
	}
	mult, _ := s.Dispatch.FireMultiplier(data.HookModifySpe, &dispatch.Context{Attacker: dispatch.Ref{Side: side, Team: teamIdx}})
	if s.State.Sides[side].Conditions[state.SideTailwind] > 0 {
		base *= 2
	}
	return int(mult.ApplyFloor(int64(base)))
}

func (s *Scheduler) Log(r state.LogRecord) { s.State.Log.Append(r) }

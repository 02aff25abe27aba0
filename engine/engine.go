// Package engine is the external entry point for running one battle: it
// wires the Static Data Registry, Packed Battle State, Event Dispatcher,
// Damage & Accuracy Pipeline, and Turn Scheduler into a single handle and
// exposes the small surface a caller (a CLI, a matchmaking service, an RL
// training loop) needs: create a battle, submit actions, read the log.
package engine

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/pokesim/battlecore/data"
	"github.com/pokesim/battlecore/dispatch"
	"github.com/pokesim/battlecore/effects"
	"github.com/pokesim/battlecore/logx"
	"github.com/pokesim/battlecore/scheduler"
	"github.com/pokesim/battlecore/state"
)

// Config holds everything needed to start a battle that doesn't vary once
// the battle is running: the format, the static data registry, and the
// logger every component should share.
type Config struct {
	Format   state.Format
	Registry *data.Registry
	Logger   logx.Logger
}

// Battle is one running battle: state plus the components operating on it.
type Battle struct {
	ID        string
	State     *state.BattleState
	Dispatch  *dispatch.Dispatcher
	Scheduler *scheduler.Scheduler
	cfg       Config
}

// New starts a battle: constructs the packed state from the supplied
// rosters, binds a fresh dispatcher, registers every roster member's
// starting ability/item handlers, and returns a ready Scheduler in
// AwaitingActions. battleID, if empty, is filled in with a fresh UUID for
// log correlation; it never participates in the deterministic RNG stream.
func New(cfg Config, battleID string, seed uint64, rosters [][]state.PokemonRecord) (*Battle, error) {
	if cfg.Registry == nil {
		return nil, errors.New("engine: Config.Registry is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = logx.NewNop()
	}
	if battleID == "" {
		battleID = uuid.NewString()
	}

	if err := computeRosterStats(cfg.Registry, rosters); err != nil {
		return nil, errors.Wrap(err, "engine: computing roster stats")
	}

	bs, err := state.New(cfg.Format, battleID, seed, rosters)
	if err != nil {
		return nil, errors.Wrap(err, "engine: building battle state")
	}

	if err := initStartingPP(bs, cfg.Registry); err != nil {
		return nil, errors.Wrap(err, "engine: initializing starting PP")
	}

	d := dispatch.New(bs)
	b := &Battle{ID: battleID, State: bs, Dispatch: d, cfg: cfg}
	if err := b.registerStartingHandlers(); err != nil {
		return nil, err
	}

	b.Scheduler = scheduler.New(bs, d, cfg.Registry, cfg.Logger)

	for side := 0; side < cfg.Format.NumSides; side++ {
		for slot := 0; slot < cfg.Format.ActiveSlots; slot++ {
			team := bs.Active[side][slot]
			b.Dispatch.Fire(data.HookSwitchIn, &dispatch.Context{Attacker: dispatch.Ref{Side: side, Team: team}})
		}
	}

	return b, nil
}

// registerStartingHandlers binds every roster member's ability and item
// bindings up front; volatiles and side/field conditions register and
// unregister dynamically as the battle proceeds (switch, status, hazard
// handlers all call Dispatch.Register/Unregister directly).
func (b *Battle) registerStartingHandlers() error {
	for side, roster := range b.State.Pokemon {
		for team := range roster {
			pk := &b.State.Pokemon[side][team]
			if pk.Ability != data.NoAbility {
				ability, err := b.cfg.Registry.Ability(pk.Ability)
				if err != nil {
					return errors.Wrapf(err, "engine: side %d pokemon %d ability", side, team)
				}
				bindAll(b.Dispatch, ability.Bindings, dispatch.SourceAbility, data.HandlerID(pk.Ability), side, team)
			}
			if pk.Item != data.NoItem {
				item, err := b.cfg.Registry.Item(pk.Item)
				if err != nil {
					return errors.Wrapf(err, "engine: side %d pokemon %d item", side, team)
				}
				bindAll(b.Dispatch, item.Bindings, dispatch.SourceItem, data.HandlerID(pk.Item), side, team)
			}
		}
	}
	return nil
}

// computeRosterStats fills in Stats (and CurrentHP) for any roster entry
// left at its zero value, deriving it from the entry's Species/Level/
// Nature/IVs/EVs through the registry's memoized stat calculator. Callers
// that already know a Pokemon's final stats (e.g. a fixed test fixture) can
// set Stats directly and skip this path entirely; computeRosterStats never
// overwrites a non-zero Stats array.
func computeRosterStats(reg *data.Registry, rosters [][]state.PokemonRecord) error {
	for side := range rosters {
		for team := range rosters[side] {
			pk := &rosters[side][team]
			if pk.Stats != ([data.NumStats]int{}) {
				continue
			}
			stats, err := reg.FinalStats(pk.Species, pk.Level, pk.Nature, pk.IVs, pk.EVs)
			if err != nil {
				return errors.Wrapf(err, "side %d pokemon %d", side, team)
			}
			pk.Stats = stats
			pk.CurrentHP = stats[data.HP]
		}
	}
	return nil
}

// initStartingPP fills in each roster member's PP from its moveset's MaxPP.
// state.New leaves PP zeroed since it has no registry access to look up a
// move's MaxPP; this is the first thing engine.New does with one.
func initStartingPP(bs *state.BattleState, reg *data.Registry) error {
	for side := range bs.Pokemon {
		for team := range bs.Pokemon[side] {
			pk := &bs.Pokemon[side][team]
			for slot, moveID := range pk.Moves {
				if moveID == data.NoMoveID {
					continue
				}
				move, err := reg.Move(moveID)
				if err != nil {
					return errors.Wrapf(err, "side %d pokemon %d move slot %d", side, team, slot)
				}
				bs.PP[side][team][slot] = move.MaxPP
			}
		}
	}
	return nil
}

func bindAll(d *dispatch.Dispatcher, bindings []data.HookBinding, source dispatch.SourceKind, effectID data.HandlerID, side, team int) {
	for _, hb := range bindings {
		handler := effects.Resolve(hb.Handler)
		if handler == nil {
			continue
		}
		d.Register(dispatch.Binding{
			Hook: hb.Hook, Handler: handler, Priority: hb.Priority,
			Source: source, EffectID: effectID, Side: side, Slot: team,
		})
	}
}

// Step submits one batch of actions and advances the battle (see
// scheduler.Scheduler.Step for the full state machine).
func (b *Battle) Step(actions map[int][]scheduler.Action) (scheduler.StepOutcome, error) {
	return b.Scheduler.Step(actions)
}

// Log returns every log record emitted so far.
func (b *Battle) Log() []state.LogRecord {
	return b.State.Log.Records()
}

// LegalMoveSlots reports which of an active slot's four move slots can
// currently be submitted as an ActionMove, honoring PP, disable, encore,
// and choice-lock. It returns nil outside AwaitingActions, since no move
// action is legal while a forced switch is pending or the battle has ended.
func (b *Battle) LegalMoveSlots(side, activeSlot int) []int {
	if b.Scheduler.Phase() != scheduler.AwaitingActions {
		return nil
	}
	pk := b.State.ActivePokemon(side, activeSlot)
	team := b.State.Active[side][activeSlot]
	exhausted := true
	for _, pp := range b.State.PP[side][team] {
		if pp > 0 {
			exhausted = false
			break
		}
	}

	var legal []int
	for slot := 0; slot < 4; slot++ {
		if pk.Moves[slot] == data.NoMoveID {
			continue
		}
		if b.State.PP[side][team][slot] <= 0 && !exhausted {
			continue
		}
		if int8(slot) == pk.Volatiles.DisableSlot {
			continue
		}
		if pk.Volatiles.EncoreTurns > 0 && pk.Volatiles.EncoreMove >= 0 && int8(slot) != pk.Volatiles.EncoreMove {
			continue
		}
		if pk.Volatiles.Has(state.VolatileChoiceLocked) && pk.Volatiles.LockedSlot >= 0 && int8(slot) != pk.Volatiles.LockedSlot {
			continue
		}
		legal = append(legal, slot)
	}
	return legal
}

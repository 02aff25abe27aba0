package dispatch

import (
	"github.com/pokesim/battlecore/data"
	"github.com/pokesim/battlecore/state"
)

// Ref identifies one roster slot: (side, team index).
type Ref struct {
	Side  int
	Team  int
}

// Context is the event context passed to every handler invocation. Not every
// field is meaningful for every hook; handlers read only the fields their
// hook documents.
type Context struct {
	State *state.BattleState

	Attacker Ref
	Target   Ref
	HasTarget bool

	Move   *data.Move
	HitNum int // which hit of a multi-hit sequence, 0-indexed

	// Damage carries the in-flight damage value for on_damaging_hit and
	// on_modify_damage style hooks.
	Damage int

	// RunningType carries the move's effective type after on_modify_type.
	RunningType data.Type

	// Extra is an escape hatch for hook-specific scalars (e.g. the crit
	// stage accumulated by on_modify_crit_stage handlers) without
	// growing Context per-hook; handlers for a given hook agree on its
	// meaning out of band.
	Extra int
}

// Attacker side/team helpers keep call sites terse.
func (c *Context) AttackerPokemon() *state.PokemonRecord {
	return c.State.TeamPokemon(c.Attacker.Side, c.Attacker.Team)
}

func (c *Context) TargetPokemon() *state.PokemonRecord {
	return c.State.TeamPokemon(c.Target.Side, c.Target.Team)
}

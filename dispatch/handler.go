// Package dispatch implements the Event Dispatcher: the
// registry that routes named hook points through an ordered set of
// registered handlers. Every ability, item, status, side condition, field
// condition, and move secondary behavior in the game is expressed as one
// or more Bindings here, never as ad-hoc code reached for in the pipeline.
package dispatch

import (
	"github.com/pokesim/battlecore/data"
	"github.com/pokesim/battlecore/numeric"
)

// SourceKind classifies what registered a handler, used as a tie-break
// among handlers of equal priority within one hook.
type SourceKind int8

const (
	SourceAbility SourceKind = iota
	SourceItem
	SourceVolatile
	SourceSide
	SourceField
	SourceMove
)

// HandlerFunc is a pure function of (battle state, event context), returning
// an optional mutation and, where applicable, a modified numeric value. It
// is given write access to the battle state for the duration of one
// invocation and holds no reference afterward.
type HandlerFunc func(ctx *Context) Result

// Result is a handler's return value:
// either a block signal, a multiplier, or a pure side effect already
// applied to ctx.State.
type Result struct {
	// Cancel signals "block further processing" (e.g. good-as-gold cancels
	// a status move, an immunity absorbs a hit).
	Cancel bool

	// Immune additionally marks that Cancel happened because of a type/
	// ability immunity rather than an arbitrary block, so the pipeline logs
	// `immune` instead of `fail`.
	Immune bool

	// Multiplier is returned by modify_* and base_power hooks. Exact
	// rational arithmetic keeps the product of many handlers precise.
	Multiplier    numeric.Rational
	HasMultiplier bool
}

// Binding is one registered handler: a hook, the function, its priority
// within that hook, and enough identity to unregister it later without holding a direct pointer cycle back into the
// owning Pokemon/side/field.
type Binding struct {
	Hook     data.HookName
	Handler  HandlerFunc
	Priority int
	Source   SourceKind
	EffectID data.HandlerID

	// Scope identifies what the binding is attached to, for unregistration
	// and for the speed tie-break (ability/item/volatile bindings carry the
	// owning Pokemon's side+slot so the dispatcher can break priority ties
	// by that Pokemon's current Speed).
	Side int
	Slot int // team index, not active slot; -1 for side/field scope
}

package dispatch

import (
	"github.com/pokesim/battlecore/data"
	"github.com/pokesim/battlecore/numeric"
	"github.com/pokesim/battlecore/state"
)

// Dispatcher routes hook invocations through the set of currently
// registered Bindings, in the order orderBindings fixes.
// One Dispatcher instance belongs to exactly one battle.
type Dispatcher struct {
	bindings map[data.HookName][]Binding
	bs       *state.BattleState
}

// New builds a Dispatcher bound to a battle state. The dispatcher never
// outlives the battle it was built for.
func New(bs *state.BattleState) *Dispatcher {
	return &Dispatcher{bindings: make(map[data.HookName][]Binding), bs: bs}
}

func (d *Dispatcher) state() *state.BattleState { return d.bs }

// Register adds a handler binding for one hook.
func (d *Dispatcher) Register(b Binding) {
	d.bindings[b.Hook] = append(d.bindings[b.Hook], b)
}

// Unregister removes every binding matching (hook, effectID, source, side,
// slot), identifying bindings by that tuple rather than a direct pointer so
// switch-out/faint/suppression/removal can drop a handler without the
// dispatcher ever holding a live reference into a Pokemon.
func (d *Dispatcher) Unregister(hook data.HookName, effectID data.HandlerID, source SourceKind, side, slot int) {
	list := d.bindings[hook]
	out := list[:0]
	for _, b := range list {
		if b.EffectID == effectID && b.Source == source && b.Side == side && b.Slot == slot {
			continue
		}
		out = append(out, b)
	}
	d.bindings[hook] = out
}

// UnregisterScope removes every binding owned by (side, slot) across all
// hooks, regardless of source or effect — used on switch-out and faint to
// atomically drop everything a Pokemon had registered (ability, item,
// volatiles).
func (d *Dispatcher) UnregisterScope(side, slot int) {
	for hook, list := range d.bindings {
		out := list[:0]
		for _, b := range list {
			if b.Side == side && b.Slot == slot {
				continue
			}
			out = append(out, b)
		}
		d.bindings[hook] = out
	}
}

// Fire invokes every handler bound to hook, in deterministic order, and
// returns their raw results. Most callers want one of the folding helpers
// below instead of the raw slice.
func (d *Dispatcher) Fire(hook data.HookName, ctx *Context) []Result {
	ordered := d.orderBindings(d.bindings[hook])
	results := make([]Result, 0, len(ordered))
	for _, b := range ordered {
		ctx.State = d.bs
		results = append(results, b.Handler(ctx))
	}
	return results
}

// FireMultiplier folds every handler's returned multiplier into one exact
// product, stopping early (product forced to zero) if any handler signals
// immunity.
func (d *Dispatcher) FireMultiplier(hook data.HookName, ctx *Context) (numeric.Rational, bool) {
	acc := numeric.One
	cancelled := false
	for _, r := range d.Fire(hook, ctx) {
		if r.Cancel {
			cancelled = true
		}
		if r.HasMultiplier {
			acc = acc.Mul(r.Multiplier)
		}
	}
	return acc, cancelled
}

// FireCancel reports whether any handler bound to hook signalled Cancel,
// and whether the first such signal was an immunity, distinguishing
// `immune` from `fail` logging at the call site.
func (d *Dispatcher) FireCancel(hook data.HookName, ctx *Context) (cancelled, immune bool) {
	for _, r := range d.Fire(hook, ctx) {
		if r.Cancel {
			return true, r.Immune
		}
	}
	return false, false
}

// NumBound reports how many handlers are currently bound to a hook, mostly
// useful for tests asserting registration/unregistration behaved.
func (d *Dispatcher) NumBound(hook data.HookName) int { return len(d.bindings[hook]) }

package dispatch

import "sort"

// sourceRank fixes the tie-break order among handler-source kinds.
func sourceRank(k SourceKind) int {
	switch k {
	case SourceAbility:
		return 0
	case SourceItem:
		return 1
	case SourceMove:
		return 2
	case SourceVolatile:
		return 3
	case SourceSide:
		return 4
	case SourceField:
		return 5
	default:
		return 6
	}
}

// speedOf returns the stage-adjusted Speed from State.BaseSpeed (paralysis,
// tailwind and on_modify_spe are not applied) used for tie-breaking, 0 for
// bindings with no owning Pokemon (side/field scope never race a Pokemon's
// own handlers within a hook in this implementation's rule set).
func speedOf(b Binding, d *Dispatcher) int {
	if b.Slot < 0 {
		return 0
	}
	return d.state().BaseSpeed(b.Side, b.Slot)
}

// orderBindings sorts a snapshot of bindings into the dispatcher's fully
// deterministic total order:
// priority descending, then source-kind rank, then speed descending, then
// slot index ascending. The sort is stable so handlers registered in the
// same (priority, source, speed, slot) bucket keep their registration
// order. Slot is a team index, so bindings of two sides can share a bucket.
func (d *Dispatcher) orderBindings(bindings []Binding) []Binding {
	out := make([]Binding, len(bindings))
	copy(out, bindings)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		if ra, rb := sourceRank(a.Source), sourceRank(b.Source); ra != rb {
			return ra < rb
		}
		if sa, sb := speedOf(a, d), speedOf(b, d); sa != sb {
			return sa > sb
		}
		return a.Slot < b.Slot
	})
	return out
}

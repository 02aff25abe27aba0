// Package damage implements the Damage & Accuracy Pipeline: the
// ten-step sequence that decides whether a move hits and, if so, the
// integer HP delta it inflicts.
package damage

import "github.com/pokesim/battlecore/numeric"

// CritChance returns the numerator/denominator chance of a critical hit at
// a given crit stage. Stages above 3 all roll "always", same as stage 3.
func CritChance(stage int) (num, den int) {
	switch {
	case stage <= 0:
		return 1, 24
	case stage == 1:
		return 1, 8
	case stage == 2:
		return 1, 2
	default:
		return 1, 1
	}
}

// CritMultiplier is the fixed damage multiplier applied on a critical hit.
var CritMultiplier = numeric.R(3, 2)

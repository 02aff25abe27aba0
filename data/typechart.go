package data

import "github.com/pokesim/battlecore/numeric"

// The four possible per-type factors (immune, resist, neutral, weak) are
// Rationals so the damage pipeline's product-of-factors step stays exact.
var (
	immune  = numeric.R(0, 1)
	resist  = numeric.R(1, 2)
	neutral = numeric.R(1, 1)
	weak    = numeric.R(2, 1)
)

// TypeChart is the 18x18 attacking-type x defending-type effectiveness
// table. Row = attacking type, column = defending type.
var TypeChart = buildTypeChart()

// Effectiveness returns the exact multiplier for an attacking type against
// a single defending type.
func Effectiveness(attacking, defending Type) numeric.Rational {
	return TypeChart[attacking][defending]
}

// CombinedEffectiveness folds effectiveness across 1 or 2 defending types,
// short-circuiting to zero if either type is immune.
func CombinedEffectiveness(attacking Type, defending ...Type) numeric.Rational {
	acc := numeric.One
	for _, d := range defending {
		f := Effectiveness(attacking, d)
		if f.IsZero() {
			return f
		}
		acc = acc.Mul(f)
	}
	return acc
}

func buildTypeChart() [NumTypes][NumTypes]numeric.Rational {
	var t [NumTypes][NumTypes]numeric.Rational
	for a := 0; a < NumTypes; a++ {
		for d := 0; d < NumTypes; d++ {
			t[a][d] = neutral
		}
	}

	set := func(atk Type, factor numeric.Rational, defs ...Type) {
		for _, d := range defs {
			t[atk][d] = factor
		}
	}

	set(Normal, resist, Rock, Steel)
	set(Normal, immune, Ghost)

	set(Fighting, weak, Normal, Rock, Steel, Ice, Dark)
	set(Fighting, resist, Flying, Poison, Bug, Psychic, Fairy)
	set(Fighting, immune, Ghost)

	set(Flying, weak, Fighting, Bug, Grass)
	set(Flying, resist, Rock, Steel, Electric)

	set(Poison, weak, Grass, Fairy)
	set(Poison, resist, Poison, Ground, Rock, Ghost)
	set(Poison, immune, Steel)

	set(Ground, weak, Poison, Rock, Steel, Fire, Electric)
	set(Ground, resist, Bug, Grass)
	set(Ground, immune, Flying)

	set(Rock, weak, Flying, Bug, Fire, Ice)
	set(Rock, resist, Fighting, Ground, Steel)

	set(Bug, weak, Grass, Psychic, Dark)
	set(Bug, resist, Fighting, Flying, Poison, Ghost, Steel, Fire, Fairy)

	set(Ghost, weak, Ghost, Psychic)
	set(Ghost, resist, Dark)
	set(Ghost, immune, Normal)

	set(Steel, weak, Rock, Ice, Fairy)
	set(Steel, resist, Steel, Fire, Water, Electric)

	set(Fire, weak, Bug, Steel, Grass, Ice)
	set(Fire, resist, Rock, Fire, Water, Dragon)

	set(Water, weak, Ground, Rock, Fire)
	set(Water, resist, Water, Grass, Dragon)

	set(Grass, weak, Ground, Rock, Water)
	set(Grass, resist, Flying, Poison, Bug, Steel, Fire, Grass, Dragon)

	set(Electric, weak, Flying, Water)
	set(Electric, resist, Grass, Electric, Dragon)
	set(Electric, immune, Ground)

	set(Psychic, weak, Fighting, Poison)
	set(Psychic, resist, Steel, Psychic)
	set(Psychic, immune, Dark)

	set(Ice, weak, Flying, Ground, Grass, Dragon)
	set(Ice, resist, Steel, Fire, Water, Ice)

	set(Dragon, weak, Dragon)
	set(Dragon, resist, Steel)
	set(Dragon, immune, Fairy)

	set(Dark, weak, Ghost, Psychic)
	set(Dark, resist, Fighting, Dark, Fairy)

	set(Fairy, weak, Fighting, Dragon, Dark)
	set(Fairy, resist, Poison, Steel, Fire)

	return t
}

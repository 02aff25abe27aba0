package data

// Nature encodes one of the 25 standard natures as boost*5+cut over the
// five modifiable stats (Atk, Def, SpA, SpD, Spe), the same compact
// encoding the numeric IDs use elsewhere in this package (see Stat). The
// five natures where boost==cut (Hardy, Docile, Serious, Bashful, Quirky)
// are neutral: no stat is affected.
type Nature = int8

// natureAxis maps a Stat to its 0..4 position within the boost/cut
// encoding. HP has no axis; natureAxis panics if asked for it.
func natureAxis(s Stat) int {
	switch s {
	case Atk:
		return 0
	case Def:
		return 1
	case SpA:
		return 2
	case SpD:
		return 3
	case Spe:
		return 4
	default:
		panic("data: HP has no nature axis")
	}
}

// natureAxes decodes a nature ID into the stat it boosts and the stat it
// cuts. boost==cut for a neutral nature.
func natureAxes(nature Nature) (boost, cut Stat) {
	n := int(nature)
	axisToStat := [5]Stat{Atk, Def, SpA, SpD, Spe}
	return axisToStat[n/5], axisToStat[n%5]
}

// natureMultiplier returns the numerator/10 multiplier a nature applies to
// stat: 11/10 if nature boosts it, 9/10 if it cuts it, 10/10 otherwise. HP
// is never affected by nature.
func natureMultiplier(nature Nature, stat Stat) (num, den int) {
	if stat == HP {
		return 10, 10
	}
	boost, cut := natureAxes(nature)
	switch {
	case boost == cut:
		return 10, 10
	case stat == boost:
		return 11, 10
	case stat == cut:
		return 9, 10
	default:
		return 10, 10
	}
}

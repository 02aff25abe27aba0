package damage

// BaseDamage computes `((2*level/5 + 2) * power * atk / def) / 50 + 2`
// using integer arithmetic throughout, matching the
// standard order of operations so every intermediate truncation matches a
// reference implementation bit-for-bit.
func BaseDamage(level, power, atk, def int) int {
	return ((2*level/5+2)*power*atk/def)/50 + 2
}

// MultiHitOutcome is one hit count and its probability: 2 hits and 3 hits
// are each 3/8, 4 and 5 hits are each 1/8.
type MultiHitOutcome struct {
	Hits int
	Num  int
	Den  int
}

// StandardMultiHitTable lists each hit count's weight out of 8;
// ResolveMultiHitCount accumulates these weights.
var StandardMultiHitTable = []MultiHitOutcome{
	{Hits: 2, Num: 3, Den: 8},
	{Hits: 3, Num: 3, Den: 8},
	{Hits: 4, Num: 1, Den: 8},
	{Hits: 5, Num: 1, Den: 8},
}

// ResolveMultiHitCount draws one uniform integer in [0, 8) and maps it to a
// hit count via StandardMultiHitTable's cumulative weights, so the whole
// draw is a single RNG call.
func ResolveMultiHitCount(draw8 int) int {
	acc := 0
	for _, o := range StandardMultiHitTable {
		acc += o.Num
		if draw8 < acc {
			return o.Hits
		}
	}
	return StandardMultiHitTable[len(StandardMultiHitTable)-1].Hits
}

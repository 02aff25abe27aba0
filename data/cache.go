package data

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// StatKey identifies one final-stat computation: a tuple. Final stats are a pure function of these five inputs, so
// unlike the battle state's "derived values", this result is safe to
// memoize for the lifetime of the registry.
type StatKey struct {
	Species SpeciesID
	Level   int8
	Nature  int8
	IVs     [NumStats]int8
	EVs     [NumStats]int8
}

// StatCache memoizes computed final stats keyed by StatKey, backed by an LRU
// so a long-running process (a matchmaking server, a training loop) doesn't
// grow this table unbounded across many distinct rosters.
type StatCache struct {
	lru *lru.Cache[StatKey, [NumStats]int]
}

// NewStatCache builds a cache holding up to size entries.
func NewStatCache(size int) (*StatCache, error) {
	c, err := lru.New[StatKey, [NumStats]int](size)
	if err != nil {
		return nil, err
	}
	return &StatCache{lru: c}, nil
}

// GetOrCompute returns the cached final stats for key, computing and
// storing them via compute on a miss.
func (c *StatCache) GetOrCompute(key StatKey, compute func() [NumStats]int) [NumStats]int {
	if v, ok := c.lru.Get(key); ok {
		return v
	}
	v := compute()
	c.lru.Add(key, v)
	return v
}

// FinalStats computes a Pokemon's complete final stat line from its species
// base stats, level, nature and IV/EV spread, memoized through the
// registry's StatCache so repeated roster construction (e.g. running the
// same team through many battles) doesn't recompute identical stat lines.
func (r *Registry) FinalStats(species SpeciesID, level int8, nature Nature, ivs, evs [NumStats]int8) ([NumStats]int, error) {
	sp, err := r.Species(species)
	if err != nil {
		return [NumStats]int{}, err
	}
	key := StatKey{Species: species, Level: level, Nature: nature, IVs: ivs, EVs: evs}
	return r.derivedCache.GetOrCompute(key, func() [NumStats]int {
		var out [NumStats]int
		for stat := Stat(0); int(stat) < NumStats; stat++ {
			num, den := natureMultiplier(nature, stat)
			out[stat] = FinalStat(stat, sp.BaseStats[stat], int(level), int(ivs[stat]), int(evs[stat]), num, den)
		}
		return out
	}), nil
}

// FinalStat computes one of the six final stats from base stat, level, IV,
// EV and nature multiplier (numerator/10, denominator 10 — e.g. 11/10 for a
// boosting nature, 9/10 for a hindering one, 10/10 neutral). HP uses the
// standard additive formula; the other five use the multiplicative one.
func FinalStat(stat Stat, base, level, iv, ev int, natureNum, natureDen int) int {
	if stat == HP {
		if base == 1 { // shedinja-style fixed 1 HP base
			return 1
		}
		return ((2*base+iv+ev/4)*level)/100 + level + 10
	}
	raw := (2*base+iv+ev/4)*level/100 + 5
	return (raw * natureNum) / natureDen
}

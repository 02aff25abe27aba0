package data

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNatureMultiplierBoostAndCut(t *testing.T) {
	// nature 1 = boost axis 0 (Atk), cut axis 1 (Def): encodes boost*5+cut.
	num, den := natureMultiplier(1, Atk)
	require.Equal(t, 11, num)
	require.Equal(t, 10, den)

	num, den = natureMultiplier(1, Def)
	require.Equal(t, 9, num)
	require.Equal(t, 10, den)

	num, den = natureMultiplier(1, Spe)
	require.Equal(t, 10, num)
	require.Equal(t, 10, den)
}

func TestNatureMultiplierNeutralOnDiagonal(t *testing.T) {
	// nature 6 = boost*5+cut with boost==cut==1: a neutral nature.
	for _, s := range []Stat{Atk, Def, SpA, SpD, Spe} {
		num, den := natureMultiplier(6, s)
		require.Equal(t, 10, num, "stat %d should be unaffected", s)
		require.Equal(t, 10, den)
	}
}

func TestNatureNeverAffectsHP(t *testing.T) {
	num, den := natureMultiplier(1, HP)
	require.Equal(t, 10, num)
	require.Equal(t, 10, den)
}

func TestRegistryFinalStatsMatchesFinalStatPerAxis(t *testing.T) {
	species := []Species{
		{ID: 0, Name: "garchomp", BaseStats: [NumStats]int{108, 130, 95, 80, 85, 102}, PrimaryType: Dragon, SecondaryType: TypeID(Ground)},
	}
	reg, err := NewRegistry(species, nil, nil, nil)
	require.NoError(t, err)

	ivs := [NumStats]int8{31, 31, 31, 31, 31, 31}
	evs := [NumStats]int8{4, 0, 0, 0, 0, 0}
	stats, err := reg.FinalStats(0, 100, 1, ivs, evs)
	require.NoError(t, err)

	require.Equal(t, FinalStat(HP, 108, 100, 31, 4, 10, 10), stats[HP])
	require.Equal(t, FinalStat(Atk, 130, 100, 31, 0, 11, 10), stats[Atk])
	require.Equal(t, FinalStat(Def, 95, 100, 31, 0, 9, 10), stats[Def])
	require.Equal(t, FinalStat(Spe, 102, 100, 31, 0, 10, 10), stats[Spe])
}

func TestRegistryFinalStatsMemoizesIdenticalKeys(t *testing.T) {
	species := []Species{
		{ID: 0, Name: "garchomp", BaseStats: [NumStats]int{108, 130, 95, 80, 85, 102}, PrimaryType: Dragon, SecondaryType: TypeID(Ground)},
	}
	reg, err := NewRegistry(species, nil, nil, nil)
	require.NoError(t, err)

	ivs := [NumStats]int8{31, 31, 31, 31, 31, 31}
	evs := [NumStats]int8{}
	first, err := reg.FinalStats(0, 50, 6, ivs, evs)
	require.NoError(t, err)
	second, err := reg.FinalStats(0, 50, 6, ivs, evs)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestRegistryFinalStatsUnknownSpecies(t *testing.T) {
	reg, err := NewRegistry(nil, nil, nil, nil)
	require.NoError(t, err)
	_, err = reg.FinalStats(0, 100, 0, [NumStats]int8{}, [NumStats]int8{})
	require.ErrorIs(t, err, ErrUnknownID)
}

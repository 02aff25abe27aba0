package data

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAssignIDsSortsKeys(t *testing.T) {
	ids, err := AssignIDs([]string{"pikachu", "bulbasaur", "charmander"})
	require.NoError(t, err)
	require.Equal(t, int32(0), ids["bulbasaur"])
	require.Equal(t, int32(1), ids["charmander"])
	require.Equal(t, int32(2), ids["pikachu"])
}

func TestAssignIDsRejectsDuplicates(t *testing.T) {
	_, err := AssignIDs([]string{"fakeout", "aquajet", "fakeout"})
	require.ErrorIs(t, err, ErrDuplicateID)
}

func TestRegistryLookup(t *testing.T) {
	species := []Species{
		{ID: 0, Name: "bulbasaur", PrimaryType: Grass, SecondaryType: TypeID(Poison)},
	}
	moves := []Move{
		{ID: 0, Name: "tackle", Type: Normal, Category: CategoryPhysical, BasePower: 40, Accuracy: 100, MaxPP: 35, Target: TargetOneAdjacentFoe},
	}
	reg, err := NewRegistry(species, moves, nil, nil)
	require.NoError(t, err)

	got, err := reg.Species(0)
	require.NoError(t, err)
	require.Equal(t, "bulbasaur", got.Name)

	_, err = reg.Move(5)
	require.ErrorIs(t, err, ErrUnknownID)
}

func TestCombinedEffectivenessShortCircuitsOnImmunity(t *testing.T) {
	got := CombinedEffectiveness(Normal, Rock, Ghost)
	require.True(t, got.IsZero())
}

func TestFourTimesWeakness(t *testing.T) {
	// a 4x weakness takes exactly 4x neutral damage before randomness.
	got := CombinedEffectiveness(Ice, Dragon, Flying)
	require.Equal(t, int64(4), got.Num)
	require.Equal(t, int64(1), got.Den)
}

func TestStatCacheMemoizes(t *testing.T) {
	c, err := NewStatCache(8)
	require.NoError(t, err)
	calls := 0
	compute := func() [NumStats]int {
		calls++
		return [NumStats]int{1, 2, 3, 4, 5, 6}
	}
	k := StatKey{Species: 1, Level: 50}
	c.GetOrCompute(k, compute)
	c.GetOrCompute(k, compute)
	require.Equal(t, 1, calls)
}

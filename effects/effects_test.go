package effects

import (
	"testing"

	"github.com/pokesim/battlecore/data"
	"github.com/pokesim/battlecore/dispatch"
	"github.com/pokesim/battlecore/state"
	"github.com/stretchr/testify/require"
)

func newDoublesState(t *testing.T) *state.BattleState {
	t.Helper()
	format := state.Doubles()
	mk := func() []state.PokemonRecord {
		roster := make([]state.PokemonRecord, format.TeamSize)
		for i := range roster {
			roster[i] = state.PokemonRecord{
				Ability:       data.NoAbility,
				Item:          data.NoItem,
				PrimaryType:   data.Normal,
				SecondaryType: data.NoSecondaryType,
				Stats:         [data.NumStats]int{150, 100, 100, 100, 100, 100},
			}
			roster[i].CurrentHP = roster[i].Stats[data.HP]
		}
		return roster
	}
	bs, err := state.New(format, "t", 3, [][]state.PokemonRecord{mk(), mk()})
	require.NoError(t, err)
	return bs
}

func TestResolveUnknownHandlerReturnsNil(t *testing.T) {
	require.Nil(t, Resolve(data.NoHandler))
}

func TestResolveReturnsEveryShippedHandler(t *testing.T) {
	for _, id := range []data.HandlerID{
		data.HandlerIntimidate, data.HandlerLevitate, data.HandlerStatic,
		data.HandlerLeftovers, data.HandlerLifeOrb, data.HandlerChoiceBand,
		data.HandlerRoughSkin, data.HandlerAdaptability, data.HandlerLifeOrbRecoil,
		data.HandlerFocusEnergyBoost, data.HandlerSetStealthRock, data.HandlerSetSpikes,
		data.HandlerSetReflect, data.HandlerLeechSeedOnHit, data.HandlerDreamEaterRequiresSleep,
	} {
		require.NotNil(t, Resolve(id), "handler %d should resolve", id)
	}
}

func TestAdaptabilityOverridesStabToDouble(t *testing.T) {
	bs := newDoublesState(t)
	bs.Pokemon[0][0].PrimaryType = data.Fire
	bs.Pokemon[0][0].SecondaryType = data.NoSecondaryType
	ctx := &dispatch.Context{State: bs, Attacker: dispatch.Ref{Side: 0, Team: 0}, RunningType: data.Fire}
	res := adaptability(ctx)
	require.True(t, res.HasMultiplier)
	require.Equal(t, int64(2), res.Multiplier.Num)
	require.Equal(t, int64(1), res.Multiplier.Den)
}

func TestAdaptabilityNoOpOnTypeMismatch(t *testing.T) {
	bs := newDoublesState(t)
	ctx := &dispatch.Context{State: bs, Attacker: dispatch.Ref{Side: 0, Team: 0}, RunningType: data.Fire}
	res := adaptability(ctx)
	require.False(t, res.HasMultiplier)
}

func TestLifeOrbRecoilDamagesOneTenthMaxHPOnDamagingHit(t *testing.T) {
	bs := newDoublesState(t)
	ctx := &dispatch.Context{State: bs, Attacker: dispatch.Ref{Side: 0, Team: 0}, Damage: 40}
	lifeOrbRecoil(ctx)
	require.Equal(t, 150-150/10, bs.TeamPokemon(0, 0).CurrentHP)
}

func TestLifeOrbRecoilNoOpWhenNoDamageDealt(t *testing.T) {
	bs := newDoublesState(t)
	ctx := &dispatch.Context{State: bs, Attacker: dispatch.Ref{Side: 0, Team: 0}, Damage: 0}
	lifeOrbRecoil(ctx)
	require.Equal(t, 150, bs.TeamPokemon(0, 0).CurrentHP)
}

func TestFocusEnergyBoostAddsTwoCritStagesOnlyWhenSet(t *testing.T) {
	bs := newDoublesState(t)
	ctx := &dispatch.Context{State: bs, Attacker: dispatch.Ref{Side: 0, Team: 0}}
	focusEnergyBoost(ctx)
	require.Equal(t, 0, ctx.Extra)

	bs.Pokemon[0][0].Volatiles.Set(state.VolatileFocusEnergy)
	ctx2 := &dispatch.Context{State: bs, Attacker: dispatch.Ref{Side: 0, Team: 0}}
	focusEnergyBoost(ctx2)
	require.Equal(t, 2, ctx2.Extra)
}

func TestSetStealthRockFailsOnceAlreadySet(t *testing.T) {
	bs := newDoublesState(t)
	ctx := &dispatch.Context{State: bs, Target: dispatch.Ref{Side: 1}}
	res := setStealthRock(ctx)
	require.False(t, res.Cancel)
	require.Equal(t, 1, bs.Sides[1].Conditions[state.SideStealthRock])

	res = setStealthRock(ctx)
	require.True(t, res.Cancel)
}

func TestSetSpikesStopsAtMaxLayers(t *testing.T) {
	bs := newDoublesState(t)
	ctx := &dispatch.Context{State: bs, Target: dispatch.Ref{Side: 1}}
	for i := 0; i < state.MaxLayers[state.SideSpikes]; i++ {
		res := setSpikes(ctx)
		require.False(t, res.Cancel)
	}
	res := setSpikes(ctx)
	require.True(t, res.Cancel)
	require.Equal(t, state.MaxLayers[state.SideSpikes], bs.Sides[1].Conditions[state.SideSpikes])
}

func TestSetReflectSetsFiveTurnDuration(t *testing.T) {
	bs := newDoublesState(t)
	ctx := &dispatch.Context{State: bs, Target: dispatch.Ref{Side: 0}}
	res := setReflect(ctx)
	require.False(t, res.Cancel)
	require.Equal(t, 5, bs.Sides[0].Conditions[state.SideReflect])

	res = setReflect(ctx)
	require.True(t, res.Cancel)
}

func TestLeechSeedOnHitBlockedByGrassType(t *testing.T) {
	bs := newDoublesState(t)
	bs.Pokemon[1][0].PrimaryType = data.Grass
	bs.Pokemon[1][0].SecondaryType = data.NoSecondaryType
	ctx := &dispatch.Context{State: bs, Target: dispatch.Ref{Side: 1, Team: 0}}
	res := leechSeedOnHit(ctx)
	require.True(t, res.Cancel)
	require.False(t, bs.TeamPokemon(1, 0).Volatiles.Has(state.VolatileLeechSeed))

	ctx2 := &dispatch.Context{State: bs, Target: dispatch.Ref{Side: 0, Team: 0}}
	res = leechSeedOnHit(ctx2)
	require.False(t, res.Cancel)
	require.True(t, bs.TeamPokemon(0, 0).Volatiles.Has(state.VolatileLeechSeed))
}

func TestDreamEaterRequiresSleepingTarget(t *testing.T) {
	bs := newDoublesState(t)
	ctx := &dispatch.Context{State: bs, Target: dispatch.Ref{Side: 1, Team: 0}}
	res := dreamEaterRequiresSleep(ctx)
	require.True(t, res.Cancel)

	bs.Pokemon[1][0].Status = data.StatusSleep
	res = dreamEaterRequiresSleep(ctx)
	require.False(t, res.Cancel)
}

func TestIntimidateDropsBothFoesAttackOneStage(t *testing.T) {
	bs := newDoublesState(t)
	ctx := &dispatch.Context{State: bs, Attacker: dispatch.Ref{Side: 0, Team: 0}}
	intimidate(ctx)

	require.Equal(t, int8(-1), bs.TeamPokemon(1, 0).Stages[data.StageAtk])
	require.Equal(t, int8(-1), bs.TeamPokemon(1, 1).Stages[data.StageAtk])
	require.Equal(t, int8(0), bs.TeamPokemon(0, 0).Stages[data.StageAtk], "intimidate never touches its own side")
}

func TestIntimidateSkipsFaintedFoes(t *testing.T) {
	bs := newDoublesState(t)
	bs.Damage(1, 0, 9999, "test")
	ctx := &dispatch.Context{State: bs, Attacker: dispatch.Ref{Side: 0, Team: 0}}
	intimidate(ctx)

	require.Equal(t, int8(0), bs.TeamPokemon(1, 0).Stages[data.StageAtk])
	require.Equal(t, int8(-1), bs.TeamPokemon(1, 1).Stages[data.StageAtk])
}

func TestLevitateCancelsGroundMovesOnly(t *testing.T) {
	ctx := &dispatch.Context{RunningType: data.Ground}
	res := levitate(ctx)
	require.True(t, res.Cancel)
	require.True(t, res.Immune)

	ctx = &dispatch.Context{RunningType: data.Water}
	res = levitate(ctx)
	require.False(t, res.Cancel)
}

func TestStaticIgnoresNonContactMoves(t *testing.T) {
	bs := newDoublesState(t)
	move := &data.Move{Flags: 0}
	ctx := &dispatch.Context{State: bs, Attacker: dispatch.Ref{Side: 0, Team: 0}, Move: move}
	static(ctx)
	require.Equal(t, data.StatusNone, bs.TeamPokemon(0, 0).Status)
}

func TestStaticCanParalyzeOnContact(t *testing.T) {
	bs := newDoublesState(t)
	move := &data.Move{Flags: data.FlagContact}
	paralyzed := false
	for seed := uint64(0); seed < 200 && !paralyzed; seed++ {
		bs.RNG.SetState([4]uint64{seed + 1, seed + 2, seed + 3, seed + 4})
		bs.Pokemon[0][0].Status = data.StatusNone
		ctx := &dispatch.Context{State: bs, Attacker: dispatch.Ref{Side: 0, Team: 0}, Move: move}
		static(ctx)
		if bs.TeamPokemon(0, 0).Status == data.StatusParalysis {
			paralyzed = true
		}
	}
	require.True(t, paralyzed, "static should eventually paralyze across enough draws")
}

func TestLeftoversHealsSixteenthMaxHP(t *testing.T) {
	bs := newDoublesState(t)
	bs.Damage(0, 0, 100, "test")
	ctx := &dispatch.Context{State: bs, Target: dispatch.Ref{Side: 0, Team: 0}}
	leftovers(ctx)
	require.Equal(t, 50+150/16, bs.TeamPokemon(0, 0).CurrentHP)
}

func TestLeftoversNoOpOnFainted(t *testing.T) {
	bs := newDoublesState(t)
	bs.Damage(0, 0, 9999, "test")
	ctx := &dispatch.Context{State: bs, Target: dispatch.Ref{Side: 0, Team: 0}}
	leftovers(ctx)
	require.Equal(t, 0, bs.TeamPokemon(0, 0).CurrentHP)
}

func TestLifeOrbAndChoiceBandMultipliers(t *testing.T) {
	res := lifeOrb(&dispatch.Context{})
	require.Equal(t, int64(13), res.Multiplier.Num)
	require.Equal(t, int64(10), res.Multiplier.Den)

	res = choiceBand(&dispatch.Context{})
	require.Equal(t, int64(3), res.Multiplier.Num)
	require.Equal(t, int64(2), res.Multiplier.Den)
}

func TestRoughSkinDamagesOnContactOnly(t *testing.T) {
	bs := newDoublesState(t)
	move := &data.Move{Flags: data.FlagContact}
	ctx := &dispatch.Context{State: bs, Attacker: dispatch.Ref{Side: 0, Team: 0}, Move: move}
	roughSkin(ctx)
	require.Equal(t, 150-150/8, bs.TeamPokemon(0, 0).CurrentHP)

	bs2 := newDoublesState(t)
	ctx2 := &dispatch.Context{State: bs2, Attacker: dispatch.Ref{Side: 0, Team: 0}, Move: &data.Move{}}
	roughSkin(ctx2)
	require.Equal(t, 150, bs2.TeamPokemon(0, 0).CurrentHP)
}

package scheduler

import (
	"testing"

	"github.com/pokesim/battlecore/data"
	"github.com/pokesim/battlecore/dispatch"
	"github.com/pokesim/battlecore/state"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T) *data.Registry {
	t.Helper()
	moves := []data.Move{
		{ID: 0, Name: "tackle", Type: data.Normal, Category: data.CategoryPhysical, BasePower: 40, Accuracy: data.AccuracyAlwaysHits, MaxPP: 35, Target: data.TargetOneAdjacentFoe},
		{ID: 1, Name: "quickattack", Type: data.Normal, Category: data.CategoryPhysical, BasePower: 40, Accuracy: data.AccuracyAlwaysHits, Priority: 1, MaxPP: 30, Target: data.TargetOneAdjacentFoe},
		{ID: 2, Name: "voltswitch", Type: data.Electric, Category: data.CategorySpecial, BasePower: 70, Accuracy: data.AccuracyAlwaysHits, MaxPP: 20, Target: data.TargetOneAdjacentFoe, SelfEffect: data.SelfSwitchOnHit},
	}
	reg, err := data.NewRegistry(nil, moves, nil, nil)
	require.NoError(t, err)
	return reg
}

func newTestScheduler(t *testing.T, teamSize int) (*Scheduler, *state.BattleState) {
	t.Helper()
	format := state.Format{NumSides: 2, TeamSize: teamSize, ActiveSlots: 1, ScreenDamageMode: state.ScreenDamageGen9}
	mk := func() []state.PokemonRecord {
		roster := make([]state.PokemonRecord, teamSize)
		for i := range roster {
			roster[i] = state.PokemonRecord{
				Ability:       data.NoAbility,
				Item:          data.NoItem,
				PrimaryType:   data.Normal,
				SecondaryType: data.NoSecondaryType,
				Stats:         [data.NumStats]int{150, 100, 100, 100, 100, 100},
				Moves:         [4]data.MoveID{0, 1, 2, data.NoMoveID},
			}
			roster[i].CurrentHP = roster[i].Stats[data.HP]
		}
		return roster
	}
	bs, err := state.New(format, "t", 11, [][]state.PokemonRecord{mk(), mk()})
	require.NoError(t, err)
	for side := range bs.PP {
		for team := range bs.PP[side] {
			bs.PP[side][team] = [4]int{35, 30, 20, 0}
		}
	}
	reg := newTestRegistry(t)
	d := dispatch.New(bs)
	s := New(bs, d, reg, nil)
	return s, bs
}

func TestPriorityMoveGoesFirstRegardlessOfSpeed(t *testing.T) {
	s, bs := newTestScheduler(t, 2)
	bs.Pokemon[0][0].Stats[data.Spe] = 50
	bs.Pokemon[1][0].Stats[data.Spe] = 200

	actions := map[int][]Action{
		0: {{ActiveSlot: 0, Kind: ActionMove, MoveSlot: 1, Target: TargetSpec{Side: 1, Slot: 0}}}, // quick attack, +1 priority
		1: {{ActiveSlot: 0, Kind: ActionMove, MoveSlot: 0, Target: TargetSpec{Side: 0, Slot: 0}}}, // tackle
	}
	order := s.buildMoveOrder(actions)
	require.Len(t, order, 2)
	require.Equal(t, 0, order[0].side, "the priority move should be ordered first despite lower speed")
}

func TestTrickRoomInvertsSpeedOrder(t *testing.T) {
	s, bs := newTestScheduler(t, 2)
	bs.Pokemon[0][0].Stats[data.Spe] = 50
	bs.Pokemon[1][0].Stats[data.Spe] = 200
	bs.Field.TrickRoom = 5

	actions := map[int][]Action{
		0: {{ActiveSlot: 0, Kind: ActionMove, MoveSlot: 0, Target: TargetSpec{Side: 1, Slot: 0}}},
		1: {{ActiveSlot: 0, Kind: ActionMove, MoveSlot: 0, Target: TargetSpec{Side: 0, Slot: 0}}},
	}
	order := s.buildMoveOrder(actions)
	require.Equal(t, 0, order[0].side, "under Trick Room the slower side should move first")
}

func TestFaintTriggersForcedSwitchThenReturnsToAwaitingActions(t *testing.T) {
	s, bs := newTestScheduler(t, 2)
	bs.Pokemon[1][0].CurrentHP = 1

	actions := map[int][]Action{
		0: {{ActiveSlot: 0, Kind: ActionMove, MoveSlot: 0, Target: TargetSpec{Side: 1, Slot: 0}}},
		1: {{ActiveSlot: 0, Kind: ActionMove, MoveSlot: 0, Target: TargetSpec{Side: 0, Slot: 0}}},
	}
	out, err := s.Step(actions)
	require.NoError(t, err)
	require.Equal(t, AwaitingForcedSwitches, out.Phase)
	require.Equal(t, []int{0}, out.ForcedSwitches[1])
	require.Equal(t, 1, bs.Sides[1].Fainted)

	out, err = s.Step(map[int][]Action{1: {{ActiveSlot: 0, Kind: ActionSwitch, SwitchTeamIndex: 1}}})
	require.NoError(t, err)
	require.Equal(t, AwaitingActions, out.Phase)
	require.Equal(t, 1, bs.Active[1][0])
}

func TestVoltSwitchQueuesSelfSwitchOnHit(t *testing.T) {
	s, bs := newTestScheduler(t, 2)

	actions := map[int][]Action{
		0: {{ActiveSlot: 0, Kind: ActionMove, MoveSlot: 2, Target: TargetSpec{Side: 1, Slot: 0}}}, // volt switch
		1: {{ActiveSlot: 0, Kind: ActionPass}},
	}
	out, err := s.Step(actions)
	require.NoError(t, err)
	require.Equal(t, AwaitingForcedSwitches, out.Phase)
	require.Equal(t, []int{0}, out.ForcedSwitches[0])
	require.Equal(t, 0, bs.Sides[0].Fainted, "a self-switch is not a faint")
}

func TestStealthRockDamagesOnSwitchInByEffectiveness(t *testing.T) {
	s, bs := newTestScheduler(t, 2)
	bs.Sides[1].Conditions[state.SideStealthRock] = 1
	bs.Pokemon[1][1].PrimaryType = data.Fire // 2x weak to rock

	s.applyHazards(1, 1)
	maxHP := bs.Pokemon[1][1].Stats[data.HP]
	require.Equal(t, maxHP-maxHP/4, bs.Pokemon[1][1].CurrentHP)
}

func TestSpikesScaleWithLayerCount(t *testing.T) {
	s, bs := newTestScheduler(t, 2)
	bs.Sides[1].Conditions[state.SideSpikes] = 3

	s.applyHazards(1, 1)
	maxHP := bs.Pokemon[1][1].Stats[data.HP]
	require.Equal(t, maxHP-maxHP/4, bs.Pokemon[1][1].CurrentHP)
}

func TestFlyingTypeImmuneToGroundHazards(t *testing.T) {
	s, bs := newTestScheduler(t, 2)
	bs.Sides[1].Conditions[state.SideSpikes] = 3
	bs.Sides[1].Conditions[state.SideStickyWeb] = 1
	bs.Pokemon[1][1].SecondaryType = data.TypeID(data.Flying)

	s.applyHazards(1, 1)
	require.Equal(t, bs.Pokemon[1][1].Stats[data.HP], bs.Pokemon[1][1].CurrentHP)
	require.Equal(t, int8(0), bs.Pokemon[1][1].Stages[data.StageSpe])
}

func TestAllFaintedOnOneSideEndsTheBattle(t *testing.T) {
	s, bs := newTestScheduler(t, 1)
	bs.Pokemon[1][0].CurrentHP = 1

	out, err := s.Step(map[int][]Action{
		0: {{ActiveSlot: 0, Kind: ActionMove, MoveSlot: 0, Target: TargetSpec{Side: 1, Slot: 0}}},
		1: {{ActiveSlot: 0, Kind: ActionMove, MoveSlot: 0, Target: TargetSpec{Side: 0, Slot: 0}}},
	})
	require.NoError(t, err)
	require.Equal(t, Ended, out.Phase)
	require.Equal(t, 0, out.Winner)
	require.Equal(t, Ended, s.Phase())
}

func TestStepAfterEndedReturnsError(t *testing.T) {
	s, bs := newTestScheduler(t, 1)
	bs.Pokemon[1][0].CurrentHP = 1
	_, err := s.Step(map[int][]Action{
		0: {{ActiveSlot: 0, Kind: ActionMove, MoveSlot: 0, Target: TargetSpec{Side: 1, Slot: 0}}},
		1: {{ActiveSlot: 0, Kind: ActionMove, MoveSlot: 0, Target: TargetSpec{Side: 0, Slot: 0}}},
	})
	require.NoError(t, err)

	_, err = s.Step(map[int][]Action{})
	require.Error(t, err)
}

func TestBurnAndLeechSeedResidualDamageAndDrain(t *testing.T) {
	s, bs := newTestScheduler(t, 1)
	bs.Pokemon[0][0].Status = data.StatusBurn
	bs.Pokemon[1][0].Volatiles.Set(state.VolatileLeechSeed)

	s.runResidual()

	maxHP := bs.Pokemon[0][0].Stats[data.HP]
	foeMax := bs.Pokemon[1][0].Stats[data.HP]
	drained := foeMax / 8
	wantHealed := maxHP - maxHP/16 + drained
	if wantHealed > maxHP {
		wantHealed = maxHP
	}

	require.Equal(t, foeMax-drained, bs.Pokemon[1][0].CurrentHP)
	require.Equal(t, wantHealed, bs.Pokemon[0][0].CurrentHP)
}

func TestValidateActionRejectsFaintedActorMove(t *testing.T) {
	s, bs := newTestScheduler(t, 1)
	bs.Pokemon[0][0].CurrentHP = 0
	bs.Pokemon[0][0].Status = data.StatusFainted

	err := s.validateAction(0, Action{ActiveSlot: 0, Kind: ActionMove, MoveSlot: 0, Target: TargetSpec{Side: 1, Slot: 0}})
	require.ErrorIs(t, err, ErrInvalidAction)
}

func TestValidateActionRejectsDisabledMove(t *testing.T) {
	s, bs := newTestScheduler(t, 1)
	bs.Pokemon[0][0].Volatiles.DisableSlot = 0

	err := s.validateAction(0, Action{ActiveSlot: 0, Kind: ActionMove, MoveSlot: 0, Target: TargetSpec{Side: 1, Slot: 0}})
	require.ErrorIs(t, err, ErrInvalidAction)
}

func TestValidateActionAllowsStruggleWhenAllPPExhausted(t *testing.T) {
	s, bs := newTestScheduler(t, 1)
	bs.PP[0][0] = [4]int{0, 0, 0, 0}

	err := s.validateAction(0, Action{ActiveSlot: 0, Kind: ActionMove, MoveSlot: 0, Target: TargetSpec{Side: 1, Slot: 0}})
	require.NoError(t, err)
}

func TestValidateActionRejectsStatusMoveWhileTaunted(t *testing.T) {
	moves := []data.Move{
		{ID: 0, Name: "tackle", Type: data.Normal, Category: data.CategoryPhysical, BasePower: 40, Accuracy: data.AccuracyAlwaysHits, MaxPP: 35, Target: data.TargetOneAdjacentFoe},
		{ID: 1, Name: "growl", Type: data.Normal, Category: data.CategoryStatus, Accuracy: 100, MaxPP: 40, Target: data.TargetAllAdjacentFoes},
	}
	reg, err := data.NewRegistry(nil, moves, nil, nil)
	require.NoError(t, err)
	format := state.Format{NumSides: 2, TeamSize: 1, ActiveSlots: 1, ScreenDamageMode: state.ScreenDamageGen9}
	mk := func() state.PokemonRecord {
		pk := state.PokemonRecord{PrimaryType: data.Normal, SecondaryType: data.NoSecondaryType, Stats: [data.NumStats]int{150, 100, 100, 100, 100, 100}, Moves: [4]data.MoveID{0, 1, data.NoMoveID, data.NoMoveID}}
		pk.CurrentHP = pk.Stats[data.HP]
		return pk
	}
	bs, err := state.New(format, "t", 1, [][]state.PokemonRecord{{mk()}, {mk()}})
	require.NoError(t, err)
	bs.PP[0][0] = [4]int{35, 40, 0, 0}
	s := New(bs, dispatch.New(bs), reg, nil)

	bs.Pokemon[0][0].Volatiles.TaunTurns = 3
	err = s.validateAction(0, Action{ActiveSlot: 0, Kind: ActionMove, MoveSlot: 1, Target: TargetSpec{Side: 1, Slot: 0}})
	require.ErrorIs(t, err, ErrInvalidAction)

	err = s.validateAction(0, Action{ActiveSlot: 0, Kind: ActionMove, MoveSlot: 0, Target: TargetSpec{Side: 1, Slot: 0}})
	require.NoError(t, err, "damaging moves are unaffected by taunt")
}

func TestHazardMoveSetsSideConditionOnFoeSide(t *testing.T) {
	moves := []data.Move{
		{ID: 0, Name: "tackle", Type: data.Normal, Category: data.CategoryPhysical, BasePower: 40, Accuracy: data.AccuracyAlwaysHits, MaxPP: 35, Target: data.TargetOneAdjacentFoe},
		{ID: 1, Name: "stealthrock", Category: data.CategoryStatus, Accuracy: data.AccuracyAlwaysHits, MaxPP: 20, Target: data.TargetFoeSide, FieldHandlerID: data.HandlerSetStealthRock},
	}
	reg, err := data.NewRegistry(nil, moves, nil, nil)
	require.NoError(t, err)
	format := state.Format{NumSides: 2, TeamSize: 1, ActiveSlots: 1, ScreenDamageMode: state.ScreenDamageGen9}
	mk := func() state.PokemonRecord {
		pk := state.PokemonRecord{PrimaryType: data.Normal, SecondaryType: data.NoSecondaryType, Stats: [data.NumStats]int{150, 100, 100, 100, 100, 100}, Moves: [4]data.MoveID{0, 1, data.NoMoveID, data.NoMoveID}}
		pk.CurrentHP = pk.Stats[data.HP]
		return pk
	}
	bs, err := state.New(format, "t", 1, [][]state.PokemonRecord{{mk()}, {mk()}})
	require.NoError(t, err)
	bs.PP[0][0] = [4]int{35, 20, 0, 0}
	s := New(bs, dispatch.New(bs), reg, nil)

	s.executeOneMove(moveOrderEntry{side: 0, action: Action{ActiveSlot: 0, Kind: ActionMove, MoveSlot: 1}, originalTeam: 0})
	require.Equal(t, 1, bs.Sides[1].Conditions[state.SideStealthRock], "stealth rock should land on the foe's side, not the user's")
	require.Equal(t, 0, bs.Sides[0].Conditions[state.SideStealthRock])
}

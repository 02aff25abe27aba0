// Command pokebattle is a thin reference driver around package engine: it
// builds a small fixture registry and two single-Pokemon teams with one
// move each, runs a scripted singles battle to completion at a fixed seed, and
// prints the resulting log stream. It exists for manual inspection of the
// engine's behavior, not as part of the engine's contract.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pokesim/battlecore/data"
	"github.com/pokesim/battlecore/engine"
	"github.com/pokesim/battlecore/logx"
	"github.com/pokesim/battlecore/scheduler"
	"github.com/pokesim/battlecore/state"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var seed uint64
	var verbose bool

	cmd := &cobra.Command{
		Use:   "pokebattle",
		Short: "Run a fixed-seed single-Pokemon battle and print the log",
		RunE: func(cmd *cobra.Command, args []string) error {
			level := zerolog.InfoLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			zl := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}).
				Level(level).With().Timestamp().Logger()
			logger := logx.NewZerolog(zl)
			return runFixtureBattle(logger, seed)
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 1, "deterministic RNG seed")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "emit debug-level engine logs")
	return cmd
}

func runFixtureBattle(logger logx.Logger, seed uint64) error {
	reg, rosters, err := buildFixture()
	if err != nil {
		return err
	}

	format := state.Format{NumSides: 2, TeamSize: 1, ActiveSlots: 1, ScreenDamageMode: state.ScreenDamageGen9}
	b, err := engine.New(engine.Config{
		Format:   format,
		Registry: reg,
		Logger:   logger,
	}, "", seed, rosters)
	if err != nil {
		return fmt.Errorf("starting battle: %w", err)
	}

	for turn := 0; turn < 50 && b.Scheduler.Phase() != scheduler.Ended; turn++ {
		actions := map[int][]scheduler.Action{
			0: {{ActiveSlot: 0, Kind: scheduler.ActionMove, MoveSlot: 0, Target: scheduler.TargetSpec{Side: 1, Slot: 0}}},
			1: {{ActiveSlot: 0, Kind: scheduler.ActionMove, MoveSlot: 0, Target: scheduler.TargetSpec{Side: 0, Slot: 0}}},
		}
		if _, err := b.Step(actions); err != nil {
			return fmt.Errorf("turn %d: %w", turn, err)
		}
	}

	for _, rec := range b.Log() {
		printRecord(logger, rec)
	}
	return nil
}

func printRecord(logger logx.Logger, rec state.LogRecord) {
	logger.Info("log record", logx.F("record", fmt.Sprintf("%+v", rec)))
}

// buildFixture constructs a minimal in-memory registry and two rosters: two
// species with one damaging move each, no abilities or items. Loading real game data
// from disk is a separate concern this reference driver doesn't take on.
func buildFixture() (*data.Registry, [][]state.PokemonRecord, error) {
	species := []data.Species{
		{ID: 0, Name: "Machamp", BaseStats: [data.NumStats]int{90, 130, 80, 65, 85, 55}, PrimaryType: data.Fighting, SecondaryType: data.NoSecondaryType},
		{ID: 1, Name: "Gyarados", BaseStats: [data.NumStats]int{95, 125, 79, 60, 100, 81}, PrimaryType: data.Water, SecondaryType: data.TypeID(data.Flying)},
	}
	moves := []data.Move{
		{ID: 0, Name: "Close Combat", Type: data.Fighting, Category: data.CategoryPhysical, BasePower: 120, Accuracy: 100, MaxPP: 8, Target: data.TargetOneAdjacentFoe, Flags: data.FlagContact},
		{ID: 1, Name: "Waterfall", Type: data.Water, Category: data.CategoryPhysical, BasePower: 80, Accuracy: 100, MaxPP: 15, Target: data.TargetOneAdjacentFoe, Flags: data.FlagContact},
	}

	reg, err := data.NewRegistry(species, moves, nil, nil)
	if err != nil {
		return nil, nil, err
	}

	machamp := state.PokemonRecord{
		Species: 0, Level: 100, Ability: data.NoAbility, Item: data.NoItem,
		PrimaryType: data.Fighting, SecondaryType: data.NoSecondaryType, TeraType: data.Fighting,
		Stats: [data.NumStats]int{299, 328, 211, 183, 213, 153},
		Moves: [4]data.MoveID{0, data.NoMoveID, data.NoMoveID, data.NoMoveID},
	}
	machamp.CurrentHP = machamp.Stats[data.HP]

	gyarados := state.PokemonRecord{
		Species: 1, Level: 100, Ability: data.NoAbility, Item: data.NoItem,
		PrimaryType: data.Water, SecondaryType: data.TypeID(data.Flying), TeraType: data.Water,
		Stats: [data.NumStats]int{307, 304, 194, 164, 214, 207},
		Moves: [4]data.MoveID{1, data.NoMoveID, data.NoMoveID, data.NoMoveID},
	}
	gyarados.CurrentHP = gyarados.Stats[data.HP]

	rosters := [][]state.PokemonRecord{{machamp}, {gyarados}}
	return reg, rosters, nil
}

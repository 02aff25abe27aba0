package state

import (
	"github.com/pkg/errors"
	"github.com/pokesim/battlecore/data"
	"github.com/pokesim/battlecore/rng"
)

// ErrInvariantViolation marks an engine-internal invariant break found by
// CheckInvariants: HP out of range, fainted status not matching 0 HP, a stat
// stage out of range, negative PP, or a wrong active-slot count. An active
// slot pointing at a fainted Pokemon is not checked. The scheduler halts
// rather than papering over these.
var ErrInvariantViolation = errors.New("state: invariant violation")

// BattleState is the Packed Battle State: every mutable fact
// about a battle, created once, mutated only through the methods below and
// the Scheduler built on top of them, and discarded by the caller when the
// battle ends.
type BattleState struct {
	Format Format

	// Pokemon[side][teamIndex] is the dense roster array.
	Pokemon [][]PokemonRecord

	// PP[side][teamIndex][moveSlot] mirrors team_size, 4].
	PP [][][4]int

	// Active[side][activeSlot] holds the roster index currently battling.
	Active [][]int

	Sides []SideState
	Field FieldState

	RNG *rng.Stream
	Log *LogStream

	BattleID string
}

// New constructs a battle state from a format and per-side rosters. Each
// side's PokemonRecord slice must have length == format.TeamSize. The
// first format.ActiveSlots entries of each side are sent out immediately;
// New only allocates storage, it doesn't fire on_switch_in or populate
// starting PP — those need the static data registry and are the caller's
// job (engine.New does both right after this returns).
func New(format Format, battleID string, seed uint64, rosters [][]PokemonRecord) (*BattleState, error) {
	if len(rosters) != format.NumSides {
		return nil, errors.Errorf("state: expected %d rosters, got %d", format.NumSides, len(rosters))
	}
	bs := &BattleState{
		Format:   format,
		Pokemon:  make([][]PokemonRecord, format.NumSides),
		PP:       make([][][4]int, format.NumSides),
		Active:   make([][]int, format.NumSides),
		Sides:    make([]SideState, format.NumSides),
		RNG:      rng.New(seed),
		Log:      &LogStream{},
		BattleID: battleID,
	}
	for side := 0; side < format.NumSides; side++ {
		if len(rosters[side]) != format.TeamSize {
			return nil, errors.Errorf("state: side %d expected %d Pokemon, got %d", side, format.TeamSize, len(rosters[side]))
		}
		bs.Pokemon[side] = append([]PokemonRecord(nil), rosters[side]...)
		bs.PP[side] = make([][4]int, format.TeamSize)
		for i, p := range bs.Pokemon[side] {
			bs.Pokemon[side][i].Volatiles = Volatiles{EncoreMove: -1, DisableSlot: -1, LockedSlot: -1}
			_ = p
		}
		bs.Active[side] = make([]int, format.ActiveSlots)
		for slot := 0; slot < format.ActiveSlots; slot++ {
			bs.Active[side][slot] = slot
		}
	}
	return bs, nil
}

// ActivePokemon returns the record currently battling in (side, activeSlot).
func (bs *BattleState) ActivePokemon(side, activeSlot int) *PokemonRecord {
	idx := bs.Active[side][activeSlot]
	return &bs.Pokemon[side][idx]
}

// TeamPokemon returns the record at a raw roster index.
func (bs *BattleState) TeamPokemon(side, teamIndex int) *PokemonRecord {
	return &bs.Pokemon[side][teamIndex]
}

// AllFainted reports whether every Pokemon on a side has fainted.
func (bs *BattleState) AllFainted(side int) bool {
	for i := range bs.Pokemon[side] {
		if !bs.Pokemon[side][i].IsFainted() {
			return false
		}
	}
	return true
}

// HasReserve reports whether a side has a non-active, non-fainted Pokemon
// available to switch in.
func (bs *BattleState) HasReserve(side int) bool {
	active := map[int]bool{}
	for _, idx := range bs.Active[side] {
		active[idx] = true
	}
	for i := range bs.Pokemon[side] {
		if active[i] {
			continue
		}
		if !bs.Pokemon[side][i].IsFainted() {
			return true
		}
	}
	return false
}

// CheckInvariants validates the universal invariants requires to
// hold after every legal action sequence. It is meant to be called by the
// Scheduler after each phase; a violation is a programmer/engine error, not
// a rule-driven outcome.
func (bs *BattleState) CheckInvariants() error {
	for side := range bs.Pokemon {
		for i := range bs.Pokemon[side] {
			p := &bs.Pokemon[side][i]
			if p.CurrentHP < 0 || p.CurrentHP > p.MaxHP() {
				return errors.Wrapf(ErrInvariantViolation, "side %d pokemon %d hp %d out of [0,%d]", side, i, p.CurrentHP, p.MaxHP())
			}
			if (p.Status == data.StatusFainted) != (p.CurrentHP == 0) {
				return errors.Wrapf(ErrInvariantViolation, "side %d pokemon %d fainted/hp mismatch", side, i)
			}
			for axis, v := range p.Stages {
				if v < data.MinStage || v > data.MaxStage {
					return errors.Wrapf(ErrInvariantViolation, "side %d pokemon %d stage axis %d out of range: %d", side, i, axis, v)
				}
			}
		}
		for i := range bs.PP[side] {
			for slot, pp := range bs.PP[side][i] {
				if pp < 0 {
					return errors.Wrapf(ErrInvariantViolation, "side %d pokemon %d move slot %d pp negative: %d", side, i, slot, pp)
				}
			}
		}
		if len(bs.Active[side]) != bs.Format.ActiveSlots {
			return errors.Wrapf(ErrInvariantViolation, "side %d has %d active slots, want %d", side, len(bs.Active[side]), bs.Format.ActiveSlots)
		}
	}
	return nil
}

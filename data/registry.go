package data

import "github.com/pkg/errors"

// ErrUnknownID is a caller error: the requested ID has no
// row in the registry.
var ErrUnknownID = errors.New("data: unknown id")

// Registry is the write-once, read-only Static Data Registry.
// Once NewRegistry returns, every lookup method is safe for concurrent use by any
// number of battles.
type Registry struct {
	species   []Species
	moves     []Move
	abilities []Ability
	items     []Item

	derivedCache *StatCache
}

// NewRegistry builds a Registry from fully-formed slices, indexed by ID.
// The caller (an external loader) is responsible for assigning contiguous
// IDs via AssignIDs before calling this.
func NewRegistry(species []Species, moves []Move, abilities []Ability, items []Item) (*Registry, error) {
	if err := checkContiguous(len(species), func(i int) int32 { return int32(species[i].ID) }); err != nil {
		return nil, errors.Wrap(err, "species")
	}
	if err := checkContiguous(len(moves), func(i int) int32 { return int32(moves[i].ID) }); err != nil {
		return nil, errors.Wrap(err, "moves")
	}
	if err := checkContiguous(len(abilities), func(i int) int32 { return int32(abilities[i].ID) }); err != nil {
		return nil, errors.Wrap(err, "abilities")
	}
	if err := checkContiguous(len(items), func(i int) int32 { return int32(items[i].ID) }); err != nil {
		return nil, errors.Wrap(err, "items")
	}

	cache, err := NewStatCache(1024)
	if err != nil {
		return nil, err
	}

	return &Registry{
		species:      species,
		moves:        moves,
		abilities:    abilities,
		items:        items,
		derivedCache: cache,
	}, nil
}

func checkContiguous(n int, idAt func(i int) int32) error {
	for i := 0; i < n; i++ {
		if idAt(i) != int32(i) {
			return errors.Wrapf(ErrDuplicateID, "expected id %d at index %d, got %d", i, i, idAt(i))
		}
	}
	return nil
}

// Species looks up a species row by ID.
func (r *Registry) Species(id SpeciesID) (Species, error) {
	if int(id) < 0 || int(id) >= len(r.species) {
		return Species{}, errors.Wrapf(ErrUnknownID, "species %d", id)
	}
	return r.species[id], nil
}

// Move looks up a move row by ID.
func (r *Registry) Move(id MoveID) (Move, error) {
	if int(id) < 0 || int(id) >= len(r.moves) {
		return Move{}, errors.Wrapf(ErrUnknownID, "move %d", id)
	}
	return r.moves[id], nil
}

// Ability looks up an ability row by ID.
func (r *Registry) Ability(id AbilityID) (Ability, error) {
	if id == NoAbility {
		return Ability{}, errors.Wrap(ErrUnknownID, "no ability bound")
	}
	if int(id) < 0 || int(id) >= len(r.abilities) {
		return Ability{}, errors.Wrapf(ErrUnknownID, "ability %d", id)
	}
	return r.abilities[id], nil
}

// Item looks up an item row by ID.
func (r *Registry) Item(id ItemID) (Item, error) {
	if id == NoItem {
		return Item{}, errors.Wrap(ErrUnknownID, "no item bound")
	}
	if int(id) < 0 || int(id) >= len(r.items) {
		return Item{}, errors.Wrapf(ErrUnknownID, "item %d", id)
	}
	return r.items[id], nil
}

// NumSpecies, NumMoves, NumAbilities, NumItems report table sizes, mostly
// useful for loader-side validation.
func (r *Registry) NumSpecies() int   { return len(r.species) }
func (r *Registry) NumMoves() int     { return len(r.moves) }
func (r *Registry) NumAbilities() int { return len(r.abilities) }
func (r *Registry) NumItems() int     { return len(r.items) }

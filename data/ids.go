// Package data implements the Static Data Registry: write-once,
// read-only tables of species/move/ability/item/type records keyed by small
// integer IDs. IDs are assigned by sorting canonical string keys at load
// time so two independent loaders produce the same
// ID map; the runtime itself never compares strings.
package data

import (
	"sort"

	"github.com/pkg/errors"
)

// SpeciesID, MoveID, AbilityID, ItemID, TypeID identify rows in their
// respective tables. -1 (NoX constants) marks "absent" where the field
// layout requires a sentinel, e.g. a Pokemon's secondary type.
type (
	SpeciesID int32
	MoveID    int32
	AbilityID int32
	ItemID    int32
	TypeID    int8
)

const (
	NoSecondaryType TypeID    = -1
	NoItem          ItemID    = -1
	NoAbility       AbilityID = -1
	NoMoveID        MoveID    = -1
)

// ErrDuplicateID is returned at load time when two entries canonicalize to
// the same string key: a load-time error, never silently letting the later
// entry win.
var ErrDuplicateID = errors.New("data: duplicate canonical key at load time")

// AssignIDs sorts keys and returns a key->ID map, erroring on duplicates.
// This is the one mechanism by which every *ID type above is produced, so
// that a loader built from the same key set on a different host computes
// the same mapping.
func AssignIDs(keys []string) (map[string]int32, error) {
	sorted := make([]string, len(keys))
	copy(sorted, keys)
	sort.Strings(sorted)

	out := make(map[string]int32, len(sorted))
	for i, k := range sorted {
		if _, dup := out[k]; dup {
			return nil, errors.Wrapf(ErrDuplicateID, "key %q", k)
		}
		out[k] = int32(i)
	}
	if len(out) != len(keys) {
		return nil, errors.Wrap(ErrDuplicateID, "input key list contained duplicates")
	}
	return out, nil
}

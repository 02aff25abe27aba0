// Package scheduler implements the Turn Scheduler: the
// component that validates submitted actions, orders and executes moves,
// drives residuals and faint/forced-switch handling, and reports battle
// end.
package scheduler

import (
	"github.com/pkg/errors"
	"github.com/pokesim/battlecore/data"
)

// ActionKind distinguishes the three action shapes defines.
type ActionKind int8

const (
	ActionMove ActionKind = iota
	ActionSwitch
	ActionPass
)

// TargetSpec names a move's resolved target descriptor. Side/Slot are meaningful only for the slot-addressed modes.
type TargetSpec struct {
	Mode data.TargetMode
	Side int
	Slot int // active slot index on Side
}

// Action is one caller-submitted action for one active slot.
type Action struct {
	ActiveSlot int
	Kind       ActionKind

	MoveSlot int // 0..3, for ActionMove
	Target   TargetSpec

	SwitchTeamIndex int // roster index to send in, for ActionSwitch
}

// ErrInvalidAction is the caller-error sentinel for a synchronously
// rejected action.
var ErrInvalidAction = errors.New("scheduler: invalid action")

// ErrWrongPhase is returned when Step is called while the scheduler isn't
// accepting the kind of input it received (e.g. ordinary actions during
// AwaitingForcedSwitches).
var ErrWrongPhase = errors.New("scheduler: action submitted in wrong phase")

package session

import (
	"errors"
	"fmt"
)

var (
	// ErrNoPendingSelection is returned for a pick with no table open,
	// e.g. a stray pick while thz-ready.
	ErrNoPendingSelection = errors.New("no selection is pending")
	// ErrSelectionPending is returned when a new table is requested while
	// another one still awaits a pick.
	ErrSelectionPending = errors.New("another selection is still pending")
	// ErrStaleSelection is returned for a pick against a superseded table.
	ErrStaleSelection = errors.New("selection is no longer current")
)

type ActionDisabledError struct {
	Action Action
	State  State
}

func (e ActionDisabledError) Error() string {
	return fmt.Sprintf("%q is not available in state %s", e.Action.String(), e.State)
}

type RowError struct {
	Row int
	Len int
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d out of range (%d rows)", e.Row, e.Len)
}

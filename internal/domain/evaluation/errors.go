package evaluation

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("evaluation record not found")
	ErrPeriodClosed    = errors.New("evaluation period is not open")
	ErrNotAssigned     = errors.New("committee member is not assigned to this evaluatee")
	ErrScoreOutOfRange = errors.New("score must be between 0 and 4")
)

// StateError reports an attempt to act on a record whose status does not
// permit the operation.
type StateError struct {
	Current string
	Wanted  string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("record is %s, operation requires %s", e.Current, e.Wanted)
}

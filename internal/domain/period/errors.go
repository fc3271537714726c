package period

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound       = errors.New("evaluation period not found")
	ErrHasEvaluations = errors.New("period has evaluation records and cannot be deleted")
)

// OverlapError reports a date-range conflict with another active period.
type OverlapError struct {
	ConflictID string
	Start      time.Time
	End        time.Time
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("date range %s..%s overlaps active period %s",
		e.Start.Format("2006-01-02"), e.End.Format("2006-01-02"), e.ConflictID)
}

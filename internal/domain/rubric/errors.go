package rubric

import (
	"errors"
	"fmt"
)

var (
	ErrPeriodNotFound    = errors.New("evaluation period not found")
	ErrTopicNotFound     = errors.New("evaluation topic not found")
	ErrCriterionNotFound = errors.New("evaluation criterion not found")
	ErrHasEvaluations    = errors.New("referenced by evaluation records and cannot be deleted")
	ErrOptionsRequired   = errors.New("custom_options criteria require caller-supplied options")
	ErrInvalidWeight     = errors.New("weight must be greater than 0 and at most 100")
	ErrInvalidType       = errors.New("evaluation type must be binary, scale_1_4 or custom_options")
)

// OverBudgetError reports a sibling-weight total that would exceed the budget.
type OverBudgetError struct {
	CurrentTotal   float64
	AttemptedTotal float64
}

func (e *OverBudgetError) Error() string {
	return fmt.Sprintf("weight budget exceeded: current total %.2f%% + new weight pushes total to %.2f%% (limit %.0f%%)",
		e.CurrentTotal, e.AttemptedTotal, WeightBudget)
}

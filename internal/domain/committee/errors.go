package committee

import "errors"

var (
	ErrNotFound            = errors.New("committee assignment not found")
	ErrDuplicateAssignment = errors.New("committee member already assigned to this evaluatee for this period")
	ErrSelfAssignment      = errors.New("a committee member cannot be assigned to evaluate themselves")
	ErrInvalidRole         = errors.New("role must be chairman or member")
	ErrHasEvaluations      = errors.New("assignment has recorded evaluations and cannot be deleted")
	ErrNotAssigned         = errors.New("committee member is not assigned to this evaluatee for this period")
)

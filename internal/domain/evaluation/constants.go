package evaluation

const (
	StatusDraft     = "draft"
	StatusSubmitted = "submitted"
	StatusEvaluated = "evaluated"
	StatusApproved  = "approved"

	// Scores live on a fixed 0-4 scale; binary and custom types scale externally.
	MinScore = 0.0
	MaxScore = 4.0
)

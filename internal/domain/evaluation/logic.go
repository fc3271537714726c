package evaluation

var statusRank = map[string]int{
	StatusDraft:     0,
	StatusSubmitted: 1,
	StatusEvaluated: 2,
	StatusApproved:  3,
}

// ValidStatus reports whether s is a known record status.
func ValidStatus(s string) bool {
	_, ok := statusRank[s]
	return ok
}

// CanTransition reports whether a record may move from one status to the
// next. Transitions are strictly forward and single-step.
func CanTransition(from, to string) bool {
	a, ok := statusRank[from]
	if !ok {
		return false
	}
	b, ok := statusRank[to]
	if !ok {
		return false
	}
	return b == a+1
}

// ValidateScore checks a raw score against the 0-4 scale. A nil score is
// allowed; selections may carry only an option.
func ValidateScore(score *float64) error {
	if score == nil {
		return nil
	}
	if *score < MinScore || *score > MaxScore {
		return ErrScoreOutOfRange
	}
	return nil
}

// BuildStatus derives the per-user period status from raw state counts.
// Submission is allowed once the rubric is non-empty and no record is still
// in draft.
func BuildStatus(total, draft, submitted, evaluated, approved int) Status {
	completed := submitted + evaluated + approved
	st := Status{
		TotalCriteria:  total,
		DraftCount:     draft,
		SubmittedCount: submitted,
		EvaluatedCount: evaluated,
		ApprovedCount:  approved,
	}
	if total > 0 {
		st.CompletionRate = float64(completed) / float64(total) * 100
		st.CanSubmit = draft == 0
	}
	return st
}

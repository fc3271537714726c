package evaluation

import "time"

// Record is one criterion's evaluation for one user in one period. The
// self-assessment half is written by the evaluatee while the record is in
// draft; the committee half is written after submission.
type Record struct {
	ID         string `json:"id"`
	UserID     string `json:"userId"`
	CriteriaID string `json:"criteriaId"`
	PeriodID   string `json:"periodId"`

	SelfOptionID  *string  `json:"selfSelectedOptionId,omitempty"`
	SelfScore     *float64 `json:"selfScore,omitempty"`
	SelfComment   string   `json:"selfComment,omitempty"`
	EvidenceFiles []string `json:"evidenceFiles,omitempty"`
	EvidenceURLs  []string `json:"evidenceUrls,omitempty"`
	EvidenceText  string   `json:"evidenceText,omitempty"`

	CommitteeOptionID    *string  `json:"committeeSelectedOptionId,omitempty"`
	CommitteeScore       *float64 `json:"committeeScore,omitempty"`
	CommitteeComment     string   `json:"committeeComment,omitempty"`
	CommitteeEvaluatedBy *string  `json:"committeeEvaluatedBy,omitempty"`

	Status      string     `json:"status"`
	SubmittedAt *time.Time `json:"submittedAt,omitempty"`
	EvaluatedAt *time.Time `json:"evaluatedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	// Joined context for list views.
	CriteriaName   string   `json:"criteriaName,omitempty"`
	CriteriaWeight float64  `json:"criteriaWeight,omitempty"`
	EvaluationType string   `json:"evaluationType,omitempty"`
	TopicID        string   `json:"topicId,omitempty"`
	TopicName      string   `json:"topicName,omitempty"`
	TopicWeight    float64  `json:"topicWeight,omitempty"`
	EvaluatorName  *string  `json:"evaluatorName,omitempty"`
}

// SelfSelection carries the evaluatee's answer for a single criterion.
type SelfSelection struct {
	OptionID      *string  `json:"selectedOptionId"`
	Score         *float64 `json:"score"`
	Comment       string   `json:"comment"`
	EvidenceFiles []string `json:"evidenceFiles"`
	EvidenceURLs  []string `json:"evidenceUrls"`
	EvidenceText  string   `json:"evidenceText"`
}

// CommitteeSelection carries a committee member's judgement on a submitted
// record.
type CommitteeSelection struct {
	OptionID *string  `json:"selectedOptionId"`
	Score    *float64 `json:"score"`
	Comment  string   `json:"comment"`
}

// Status summarizes where a user stands in a period.
type Status struct {
	TotalCriteria  int     `json:"totalCriteria"`
	DraftCount     int     `json:"draftCount"`
	SubmittedCount int     `json:"submittedCount"`
	EvaluatedCount int     `json:"evaluatedCount"`
	ApprovedCount  int     `json:"approvedCount"`
	CompletionRate float64 `json:"completionRate"`
	CanSubmit      bool    `json:"canSubmit"`
}

// WorklistEntry is one evaluatee on a committee member's queue.
type WorklistEntry struct {
	EvaluateeID    string `json:"evaluateeId"`
	EvaluateeName  string `json:"evaluateeName"`
	Department     string `json:"department,omitempty"`
	Position       string `json:"position,omitempty"`
	CommitteeRole  string `json:"committeeRole"`
	SubmittedCount int    `json:"submittedCount"`
	EvaluatedCount int    `json:"evaluatedCount"`
	ApprovedCount  int    `json:"approvedCount"`
}

// PeriodSummary aggregates record states across all participants of a period.
type PeriodSummary struct {
	TotalParticipants int `json:"totalParticipants"`
	DraftCount        int `json:"draftCount"`
	SubmittedCount    int `json:"submittedCount"`
	EvaluatedCount    int `json:"evaluatedCount"`
	ApprovedCount     int `json:"approvedCount"`
}

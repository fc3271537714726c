package period

import "time"

type Period struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
	IsActive      bool      `json:"isActive"`
	CreatedBy     string    `json:"createdBy"`
	CreatedByName string    `json:"createdByName,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type ListFilter struct {
	IsActive *bool
	From     time.Time
	To       time.Time
}

type Statistics struct {
	TotalParticipants int `json:"totalParticipants"`
	SubmittedCount    int `json:"submittedCount"`
	EvaluatedCount    int `json:"evaluatedCount"`
	ApprovedCount     int `json:"approvedCount"`
}

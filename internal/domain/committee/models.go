package committee

import "time"

const (
	RoleChairman = "chairman"
	RoleMember   = "member"
)

func ValidRole(role string) bool {
	return role == RoleChairman || role == RoleMember
}

type Assignment struct {
	ID             string    `json:"id"`
	CommitteeID    string    `json:"committeeId"`
	EvaluateeID    string    `json:"evaluateeId"`
	PeriodID       string    `json:"periodId"`
	Role           string    `json:"role"`
	AssignedBy     string    `json:"assignedBy,omitempty"`
	AssignedAt     time.Time `json:"assignedAt"`
	CommitteeName  string    `json:"committeeName,omitempty"`
	EvaluateeName  string    `json:"evaluateeName,omitempty"`
	AssignedByName string    `json:"assignedByName,omitempty"`
	PeriodName     string    `json:"periodName,omitempty"`
}

// Pair is one committee/evaluatee combination from a bulk request.
type Pair struct {
	CommitteeID string `json:"committeeId"`
	EvaluateeID string `json:"evaluateeId"`
}

type SkippedPair struct {
	Pair
	Reason string `json:"reason"`
}

// BulkResult collects per-pair outcomes; bulk creation is best-effort, not
// all-or-nothing.
type BulkResult struct {
	Created []Assignment  `json:"created"`
	Skipped []SkippedPair `json:"skipped"`
}

type WorkloadEntry struct {
	CommitteeID    string `json:"committeeId"`
	CommitteeName  string `json:"committeeName"`
	EvaluateeCount int    `json:"evaluateeCount"`
}

type Statistics struct {
	TotalAssignments int             `json:"totalAssignments"`
	TotalCommittees  int             `json:"totalCommittees"`
	TotalEvaluatees  int             `json:"totalEvaluatees"`
	ChairmanCount    int             `json:"chairmanCount"`
	MemberCount      int             `json:"memberCount"`
	Workload         []WorkloadEntry `json:"workloadDistribution"`
}

package users

import "time"

const (
	RoleHR        = "hr"
	RoleCommittee = "committee"
	RoleEvaluatee = "evaluatee"

	StatusActive   = "active"
	StatusInactive = "inactive"
)

type User struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Role       string    `json:"role"`
	FullName   string    `json:"fullName"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	Position   string    `json:"position"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Credentials is the login projection; the password hash never leaves the package boundary otherwise.
type Credentials struct {
	ID           string
	Username     string
	Role         string
	FullName     string
	PasswordHash string
	Status       string
}

func ValidRole(role string) bool {
	switch role {
	case RoleHR, RoleCommittee, RoleEvaluatee:
		return true
	}
	return false
}

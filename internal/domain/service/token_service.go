package service

import "github.com/google/uuid"

// TokenService issues and verifies staff session tokens for the dashboard.
type TokenService interface {
	// IssueStaffToken creates a signed token for a staff account.
	IssueStaffToken(staffID uuid.UUID) (string, error)

	// VerifyStaffToken validates a token and returns the staff account ID.
	VerifyStaffToken(token string) (uuid.UUID, error)
}

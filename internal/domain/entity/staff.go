package entity

import (
	"time"

	"github.com/google/uuid"
)

// StaffRole is the role a staff member holds within one store.
type StaffRole string

const (
	RoleStaff StaffRole = "staff"
	RoleAdmin StaffRole = "admin"
)

// StaffAccount is a dashboard login. Authentication is deliberately thin;
// accounts are provisioned out-of-band, there is no self-service signup.
type StaffAccount struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StaffAssignment links a staff account to a store with a role.
type StaffAssignment struct {
	ID        uuid.UUID `json:"id"`
	StaffID   uuid.UUID `json:"staff_id"`
	StoreID   uuid.UUID `json:"store_id"`
	Role      StaffRole `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

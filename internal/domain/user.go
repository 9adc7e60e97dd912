package domain

import "time"

// User represents a platform user profile.
type User struct {
	ID             string
	Email          string
	Name           string
	Phone          string
	HashedPassword string
	Role           Role
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Role represents a user's access level.
type Role string

const (
	// RoleRider is a passenger who can top up and spend a wallet
	RoleRider Role = "rider"

	// RoleDriver is a driver; wallet semantics are identical, fare
	// settlement differs upstream
	RoleDriver Role = "driver"

	// RoleAdmin has access to reconciliation and ledger-wide reads
	RoleAdmin Role = "admin"
)

var validRoles = map[Role]bool{
	RoleRider:  true,
	RoleDriver: true,
	RoleAdmin:  true,
}

// IsValid checks if the role is a valid role.
func (r Role) IsValid() bool {
	return validRoles[r]
}

// CanReconcile checks if the role can run ledger-wide reconciliation.
func (r Role) CanReconcile() bool {
	return r == RoleAdmin
}

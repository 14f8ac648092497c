package user

import (
	"errors"
	"time"
)

// Roles form a closed set; anything else is rejected at the boundary.
const (
	RoleStudent  = "student"
	RoleLecturer = "lecturer"
	RoleAdmin    = "admin"
)

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	return role == RoleStudent || role == RoleLecturer || role == RoleAdmin
}

var (
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicate is returned when a username or email is already taken.
	ErrDuplicate = errors.New("username or email already exists")
)

// User is an account in the system. The password hash never serializes.
type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	StudentID *string   `json:"studentId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

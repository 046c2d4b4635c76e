package models

import "time"

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User never carries the plain password; only the bcrypt hash is stored and
// the hash is never serialized into responses.
type User struct {
	ID                int64     `json:"id"`
	Email             string    `json:"email"`
	PasswordHash      string    `json:"-"`
	FirstName         string    `json:"firstName"`
	LastName          string    `json:"lastName"`
	Phone             string    `json:"phone,omitempty"`
	Role              string    `json:"role"`
	PreferredLanguage string    `json:"preferredLanguage"`
	IsActive          bool      `json:"isActive"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// ValidRole reports whether role is one of the closed set.
func ValidRole(role string) bool {
	return role == RoleCustomer || role == RoleAdmin
}

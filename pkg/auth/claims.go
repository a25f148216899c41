package auth

import (
	"slices"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims are the JWT claims issued to customers and dealership staff.
type Claims struct {
	jwt.RegisteredClaims
	UserID       uuid.UUID `json:"user_id"`
	Roles        []string  `json:"roles"`
	DealershipID string    `json:"dealership_id,omitempty"`
}

// HasRole checks if the claims include the specified role.
func (c Claims) HasRole(role string) bool {
	return slices.Contains(c.Roles, role)
}

// IsStaff reports whether the caller reviews applications on behalf of a
// dealership.
func (c Claims) IsStaff() bool {
	return c.HasRole(RoleAdmin) || c.HasRole(RoleDealer)
}

// Role constants
const (
	RoleCustomer = "customer"
	RoleDealer   = "dealer"
	RoleAdmin    = "admin"
)

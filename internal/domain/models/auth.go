package models

import "github.com/golang-jwt/jwt/v5"

// Claims is the subset of access-token claims the board relies on
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// GetUserID returns the user ID from the subject claim
func (c *Claims) GetUserID() string {
	return c.Subject
}

package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Session identifies the acting user for a single request. Permission
// predicates take the session explicitly; it is never stored in shared state.
type Session struct {
	UserID   string     `json:"userId"`
	UserType UserType   `json:"userType"`
	Status   UserStatus `json:"status"`
	Name     string     `json:"name"`
	Email    string     `json:"email"`
}

// JWTClaims represents the JWT claims carried by access tokens.
type JWTClaims struct {
	UserID   string     `json:"user_id"`
	UserType UserType   `json:"user_type"`
	Status   UserStatus `json:"status"`
	Name     string     `json:"name"`
	Email    string     `json:"email"`

	jwt.RegisteredClaims
}

// Session converts validated claims into the request-scoped session.
func (c *JWTClaims) Session() *Session {
	return &Session{
		UserID:   c.UserID,
		UserType: c.UserType,
		Status:   c.Status,
		Name:     c.Name,
		Email:    c.Email,
	}
}

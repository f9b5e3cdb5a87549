package models

import "github.com/golang-jwt/jwt/v5"

// UserRole enumerates the calling principal roles.
type UserRole string

const (
	RoleAdmin     UserRole = "admin"
	RoleCounselor UserRole = "counselor"
	RoleStudent   UserRole = "student"
)

// JWTClaims represents the JWT payload for access tokens. Token issuance
// happens in the identity collaborator; this service only validates.
type JWTClaims struct {
	UserID string   `json:"user_id"`
	Role   UserRole `json:"role"`
	jwt.RegisteredClaims
}

package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the JWT claims accepted by the conveyor. The caller is
// identified by the registered subject.
type Claims struct {
	jwt.RegisteredClaims
	Roles []string `json:"roles,omitempty"`
}

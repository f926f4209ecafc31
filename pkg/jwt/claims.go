package jwt

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims represents JWT custom claims. UserID is the identity provider's
// subject, which is not necessarily a UUID.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

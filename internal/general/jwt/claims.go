package jwt

import (
	"time"

	"travel-po/internal/domain/user"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// Claims defines our canonical JWT claims payload. CompanyCode is set only
// for operator tokens.
type Claims struct {
	Role        user.Role `json:"role"`                   // caller role for RBAC
	CompanyCode string    `json:"company_code,omitempty"` // operator company code
	jwtlib.RegisteredClaims
}

// ensure Claims implements jwtlib.Claims interface
var _ jwtlib.Claims = (*Claims)(nil)

// NewUserClaims constructs end-user claims (operator/student/driver).
func NewUserClaims(userID string, role user.Role, companyCode string, ttl time.Duration) *Claims {
	now := time.Now().UTC()
	return &Claims{
		Role:        role,
		CompanyCode: companyCode,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwtlib.NewNumericDate(now),
		},
	}
}

package types

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/safetrack/ehs-platform/models"
)

// Claims carries the signed-in identity. OrgID/Role reflect the user's
// membership at login time; org-scoped middleware re-checks the membership
// row so a revoked member cannot ride out a stale token.
type Claims struct {
	UserID   uint              `json:"user_id"`
	Username string            `json:"username"`
	OrgID    uint              `json:"org_id"`
	Role     models.MemberRole `json:"role"`
	jwt.RegisteredClaims
}

package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/safetrack/ehs-platform/models"
	"github.com/safetrack/ehs-platform/repositories"
	"github.com/safetrack/ehs-platform/types"
)

type Auth struct {
	repos *repositories.Repos
}

func NewAuth(repos *repositories.Repos) *Auth {
	return &Auth{repos: repos}
}

func claimsFrom(c *gin.Context) (*types.Claims, bool) {
	claims, ok := c.MustGet("claims").(*types.Claims)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
		return nil, false
	}
	return claims, true
}

// OrgMember requires a live membership row; the token's org/role claims are
// refreshed from the database so a removed member is cut off immediately.
func (a *Auth) OrgMember() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFrom(c)
		if !ok {
			return
		}
		if claims.OrgID == 0 {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "No organization membership"})
			return
		}

		member, err := a.repos.Member.GetMember(claims.OrgID, claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "No organization membership"})
			return
		}

		claims.Role = member.Role
		c.Set("claims", claims)
		c.Next()
	}
}

// Roles allows only the listed member roles.
func (a *Auth) Roles(roles ...models.MemberRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFrom(c)
		if !ok {
			return
		}
		if !RoleAllowed(roles, claims.Role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		c.Next()
	}
}

func (a *Auth) Admin() gin.HandlerFunc {
	return a.Roles(models.RoleAdmin)
}

func (a *Auth) Reviewer() gin.HandlerFunc {
	return a.Roles(models.RoleAdmin, models.RoleAnalyst)
}

// RoutePolicy enforces the static prefix table against the request path.
func (a *Auth) RoutePolicy() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFrom(c)
		if !ok {
			return
		}
		allowed := ResolveAllowedRolesForMethod(DefaultRoutePolicies, c.Request.Method, c.FullPath())
		if !RoleAllowed(allowed, claims.Role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		c.Next()
	}
}

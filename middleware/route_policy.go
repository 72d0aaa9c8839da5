package middleware

import (
	"net/http"
	"strings"

	"github.com/safetrack/ehs-platform/models"
)

// RoutePolicy maps a route prefix to the roles allowed under it. Resolution
// is exact match first, then longest matching prefix, then allow. The
// navigation layout uses the same scan.
//
// ReadRoles, when set, widens GET/HEAD requests beyond Roles: employees
// must be able to fetch a template to fill it in even though only admins
// build templates. Roles alone covers both verbs.
type RoutePolicy struct {
	Prefix    string
	Roles     []models.MemberRole
	ReadRoles []models.MemberRole
}

var allMemberRoles = []models.MemberRole{models.RoleAdmin, models.RoleAnalyst, models.RoleUser}

var DefaultRoutePolicies = []RoutePolicy{
	{Prefix: "/templates", Roles: []models.MemberRole{models.RoleAdmin}, ReadRoles: allMemberRoles},
	{Prefix: "/system-templates", Roles: []models.MemberRole{models.RoleAdmin}},
	{Prefix: "/members", Roles: []models.MemberRole{models.RoleAdmin}},
	{Prefix: "/reports", Roles: []models.MemberRole{models.RoleAdmin, models.RoleAnalyst}},
	{Prefix: "/submissions/review", Roles: []models.MemberRole{models.RoleAdmin, models.RoleAnalyst}},
	{Prefix: "/submissions", Roles: allMemberRoles},
	{Prefix: "/audit", Roles: []models.MemberRole{models.RoleAdmin}},
}

func matchPolicy(policies []RoutePolicy, path string) *RoutePolicy {
	for i := range policies {
		if policies[i].Prefix == path {
			return &policies[i]
		}
	}

	var best *RoutePolicy
	for i := range policies {
		p := &policies[i]
		if strings.HasPrefix(path, p.Prefix) {
			if best == nil || len(p.Prefix) > len(best.Prefix) {
				best = p
			}
		}
	}
	return best
}

// ResolveAllowedRoles returns the allow-list for a path, or nil when no
// policy matches (nil means everyone signed-in is allowed). The navigation
// menu resolves with this; pages are gated by their full role set.
func ResolveAllowedRoles(policies []RoutePolicy, path string) []models.MemberRole {
	if p := matchPolicy(policies, path); p != nil {
		return p.Roles
	}
	return nil
}

// ResolveAllowedRolesForMethod is ResolveAllowedRoles with the read
// widening applied for GET and HEAD.
func ResolveAllowedRolesForMethod(policies []RoutePolicy, method, path string) []models.MemberRole {
	p := matchPolicy(policies, path)
	if p == nil {
		return nil
	}
	if p.ReadRoles != nil && (method == http.MethodGet || method == http.MethodHead) {
		return p.ReadRoles
	}
	return p.Roles
}

func RoleAllowed(allowed []models.MemberRole, role models.MemberRole) bool {
	if allowed == nil {
		return true
	}
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

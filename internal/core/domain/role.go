package domain

import (
	"sort"
	"strings"
)

// Stored role values.
const (
	RoleSuperAdmin = "superadmin"
	RoleAdmin1     = "admin1"
	RoleAdmin2     = "admin2"
	RoleUser       = "user"
)

// RoleAdmin is the capability group both admin tiers collapse into. It is
// never stored on a user.
const RoleAdmin = "admin"

var storedRoles = map[string]struct{}{
	RoleSuperAdmin: {},
	RoleAdmin1:     {},
	RoleAdmin2:     {},
	RoleUser:       {},
}

// ValidRole reports whether role may be stored on a user record.
func ValidRole(role string) bool {
	_, ok := storedRoles[role]
	return ok
}

// NormalizeRole maps a stored role onto the capability used by policies.
func NormalizeRole(role string) string {
	r := strings.ToLower(strings.TrimSpace(role))
	switch r {
	case RoleAdmin1, RoleAdmin2:
		return RoleAdmin
	default:
		return r
	}
}

// Policy is a set of normalized roles allowed to perform an operation.
type Policy struct {
	name    string
	allowed map[string]struct{}
}

// Require builds a Policy from roles. Roles are normalized, so Require("admin1")
// is the same policy as Require("admin").
func Require(roles ...string) Policy {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[NormalizeRole(r)] = struct{}{}
	}
	p := Policy{allowed: allowed}
	p.name = strings.Join(p.Roles(), "|")
	return p
}

var (
	AdminOrSuperAdmin = Require(RoleAdmin, RoleSuperAdmin)
	SuperAdminOnly    = Require(RoleSuperAdmin)
)

// Allows reports whether a user holding role satisfies the policy.
func (p Policy) Allows(role string) bool {
	_, ok := p.allowed[NormalizeRole(role)]
	return ok
}

// Roles returns the required roles in a stable order.
func (p Policy) Roles() []string {
	out := make([]string, 0, len(p.allowed))
	for r := range p.allowed {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

// Name is a compact label for the policy, used in metrics.
func (p Policy) Name() string {
	return p.name
}

// internal/domain/models/roles.go
package models

// Roles issued by the auth service. Campaign rules only distinguish
// admin, proposer (organizer) and everyone else.
const (
	RoleGuest    = "guest"
	RoleMember   = "member"
	RoleProposer = "proposer"
	RoleAdmin    = "admin"
)

// Roles is the full set of known role identifiers.
var Roles = []string{RoleGuest, RoleMember, RoleProposer, RoleAdmin}

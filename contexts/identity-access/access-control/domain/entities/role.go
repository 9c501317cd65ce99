package entities

import (
	"strings"
	"time"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// BurnPrincipal is the designated null principal. Roles and ownership can
// never be assigned to it.
const BurnPrincipal = "principal.burn"

// ValidPrincipal reports whether p can hold a role or the owner slot.
// Principals are opaque identity strings supplied by the caller's host.
func ValidPrincipal(p string) bool {
	p = strings.TrimSpace(p)
	return p != "" && p != BurnPrincipal
}

// RoleGrant is one explicit role-map entry.
type RoleGrant struct {
	Principal string
	Role      Role
	GrantedBy string
	GrantedAt time.Time
}

// AuditEntry records one successful authorization-root mutation. The trail is
// append-only and written in the same transaction as the mutation itself.
type AuditEntry struct {
	AuditID    string
	Action     string
	Actor      string
	Subject    string
	OccurredAt time.Time
}

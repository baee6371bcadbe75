package domain

import (
	"strings"
	"time"
)

// Role is the closed set of account roles.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

// Roles lists every valid role.
var Roles = []Role{RoleAdmin, RoleUser}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// User is a persisted account. PasswordHash is only populated on the
// credential lookup path.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity returns the request-scoped snapshot of u.
func (u *User) Identity() Identity {
	return Identity{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
	}
}

// Identity is the authenticated actor of a request. It is rebuilt from the
// stored user on every request and never persisted.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// IsAdmin reports whether the actor holds the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UserPatch carries a partial update of a user. Password is the plain text
// password; the service hashes it.
type UserPatch struct {
	Name     Optional[string]
	Email    Optional[string]
	Password Optional[string]
	Role     Optional[Role]
}

// IsEmpty reports whether no field was supplied.
func (p UserPatch) IsEmpty() bool {
	return !p.Name.Set && !p.Email.Set && !p.Password.Set && !p.Role.Set
}

// Apply merges the supplied non-secret fields into u. The password is handled
// by the caller because it has to be hashed first.
func (p UserPatch) Apply(u *User) {
	if v, ok := p.Name.Get(); ok {
		u.Name = strings.TrimSpace(v)
	}
	if v, ok := p.Email.Get(); ok {
		u.Email = NormalizeEmail(v)
	}
	if v, ok := p.Role.Get(); ok {
		u.Role = v
	}
}

package auth

import (
	"errors"
	"strings"
)

// Role is the closed set of access tiers. Stored as text but parsed through
// ParseRole at every trust boundary so free-form strings never leak in.
type Role string

const (
	RoleUser  Role = "User"
	RoleAdmin Role = "Admin"
)

var ErrUnknownRole = errors.New("unknown role")

// ParseRole accepts the role case-insensitively and returns the canonical
// value, or ErrUnknownRole for anything outside the set.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "user":
		return RoleUser, nil
	case "admin":
		return RoleAdmin, nil
	default:
		return "", ErrUnknownRole
	}
}

func (r Role) String() string {
	return string(r)
}

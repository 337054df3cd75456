package entity

import "strings"

// Role is the authorization role stored on users.role
type Role string

const (
	RoleCandidate Role = "CANDIDATE"
	RoleRecruiter Role = "RECRUITER"
	RoleAdmin     Role = "ADMIN"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCandidate, RoleRecruiter, RoleAdmin:
		return true
	}
	return false
}

// ParseRole normalizes user input; unknown values yield "".
func ParseRole(s string) Role {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.Valid() {
		return ""
	}
	return r
}

// SelfRegistrable reports whether a visitor may sign up with this role.
func (r Role) SelfRegistrable() bool {
	return r == RoleCandidate || r == RoleRecruiter
}

package domain

// Role is the closed set of account roles. All authorization decisions
// go through AllowedBy so middleware and handlers can never drift apart.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleDoctor  Role = "DOCTOR"
	RolePatient Role = "PATIENT"
)

// ParseRole maps a raw string to a Role. Returns false for anything
// outside the closed set.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleDoctor, RolePatient:
		return Role(s), true
	}
	return "", false
}

// Valid reports whether the role belongs to the closed set.
func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

// AllowedBy reports whether the role is in the allow-list. An empty
// allow-list means any valid role is permitted.
func (r Role) AllowedBy(allowed ...Role) bool {
	if !r.Valid() {
		return false
	}
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// Principal is the authenticated identity derived from the access token
// on every request. It lives only for the duration of the request.
type Principal struct {
	UserID uint
	Email  string
	Role   Role
}

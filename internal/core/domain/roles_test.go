package domain

import "testing"

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"ADMIN", "DOCTOR", "PATIENT"} {
		if _, ok := ParseRole(valid); !ok {
			t.Errorf("ParseRole(%q) = false", valid)
		}
	}
	for _, invalid := range []string{"", "admin", "SUPERUSER", "patient "} {
		if _, ok := ParseRole(invalid); ok {
			t.Errorf("ParseRole(%q) = true", invalid)
		}
	}
}

func TestAllowedBy(t *testing.T) {
	tests := []struct {
		role    Role
		allowed []Role
		want    bool
	}{
		{RoleAdmin, []Role{RoleAdmin}, true},
		{RolePatient, []Role{RoleAdmin}, false},
		{RoleDoctor, []Role{RoleDoctor, RoleAdmin}, true},
		{RolePatient, nil, true},             // empty list: any valid role
		{Role("HACKER"), nil, false},         // invalid role never passes
		{Role(""), []Role{RoleAdmin}, false},
	}

	for _, tt := range tests {
		if got := tt.role.AllowedBy(tt.allowed...); got != tt.want {
			t.Errorf("%q.AllowedBy(%v) = %v, want %v", tt.role, tt.allowed, got, tt.want)
		}
	}
}

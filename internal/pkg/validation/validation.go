// Package validation implements the declarative request schemas:
// each check appends one issue per violated rule so clients can render
// field-level errors.
package validation

import (
	"regexp"
	"strings"
	"time"
)

// Issue is a single field-level validation failure.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Issues collects validation failures across fields.
type Issues []Issue

func (i Issues) Empty() bool {
	return len(i) == 0
}

func (i *Issues) add(field, message string) {
	*i = append(*i, Issue{Field: field, Message: message})
}

var (
	emailRe    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	upperRe    = regexp.MustCompile(`[A-Z]`)
	lowerRe    = regexp.MustCompile(`[a-z]`)
	digitRe    = regexp.MustCompile(`[0-9]`)
	specialRe  = regexp.MustCompile(`[^A-Za-z0-9]`)
)

// Email validates and normalizes an email address. The normalized
// (lowercased, trimmed) value is returned alongside any issues.
func Email(issues *Issues, email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	if len(email) < 5 {
		issues.add("email", "Email must be at least 5 characters")
	}
	if len(email) > 100 {
		issues.add("email", "Email must be less than 100 characters")
	}
	if !emailRe.MatchString(email) {
		issues.add("email", "Invalid email address")
	}
	return email
}

// Password checks password strength, one issue per violated rule.
func Password(issues *Issues, pw string) {
	if len(pw) < 8 {
		issues.add("password", "Password must be at least 8 characters")
	}
	if len(pw) > 100 {
		issues.add("password", "Password must be less than 100 characters")
	}
	if !upperRe.MatchString(pw) {
		issues.add("password", "Password must contain at least one uppercase letter")
	}
	if !lowerRe.MatchString(pw) {
		issues.add("password", "Password must contain at least one lowercase letter")
	}
	if !digitRe.MatchString(pw) {
		issues.add("password", "Password must contain at least one number")
	}
	if !specialRe.MatchString(pw) {
		issues.add("password", "Password must contain at least one special character")
	}
}

// Name checks a display name against the given field label.
func Name(issues *Issues, field, name string) {
	if len(strings.TrimSpace(name)) < 2 {
		issues.add(field, "Name must be at least 2 characters")
	}
}

// MinLen checks a generic minimum length rule.
func MinLen(issues *Issues, field, value string, min int, message string) {
	if len(strings.TrimSpace(value)) < min {
		issues.add(field, message)
	}
}

// Date parses a yyyy-mm-dd date string.
func Date(issues *Issues, field, value string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		issues.add(field, "Invalid date, expected YYYY-MM-DD")
		return time.Time{}, false
	}
	return t, true
}

// DateTime parses an RFC 3339 timestamp into an absolute instant.
func DateTime(issues *Issues, field, value string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		issues.add(field, "Invalid date/time, expected RFC 3339")
		return time.Time{}, false
	}
	return t, true
}

// Package sanitize scrubs free-text input before persistence.
package sanitize

import (
	"regexp"
	"strings"
)

var jsProtoRe = regexp.MustCompile(`(?i)javascript:`)

// String strips angle brackets and javascript: protocol markers, then
// trims whitespace. Applying it twice yields the same result as once.
func String(input string) string {
	out := strings.NewReplacer("<", "", ">", "").Replace(input)
	for {
		next := jsProtoRe.ReplaceAllString(out, "")
		if next == out {
			break
		}
		out = next
	}
	return strings.TrimSpace(out)
}

// StringPtr sanitizes an optional field, preserving nil.
func StringPtr(input *string) *string {
	if input == nil {
		return nil
	}
	s := String(*input)
	return &s
}

package sanitize

import "testing"

func TestString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain text", "plain text"},
		{"  padded  ", "padded"},
		{"<script>alert(1)</script>", "scriptalert(1)/script"},
		{"javascript:alert(1)", "alert(1)"},
		{"JavaScript:alert(1)", "alert(1)"},
		{"a < b > c", "a  b  c"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := String(tt.in); got != tt.want {
			t.Errorf("String(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStringIdempotent(t *testing.T) {
	inputs := []string{
		"plain",
		"<b>bold</b>",
		"javascript:x",
		"javajavascript:script:alert(1)",
		"  <javascript:> ",
	}
	for _, in := range inputs {
		once := String(in)
		twice := String(once)
		if once != twice {
			t.Errorf("String not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestStringPtr(t *testing.T) {
	if got := StringPtr(nil); got != nil {
		t.Fatalf("StringPtr(nil) = %v, want nil", got)
	}

	in := "<notes>"
	got := StringPtr(&in)
	if got == nil || *got != "notes" {
		t.Fatalf("StringPtr(%q) = %v", in, got)
	}
}

package utils

import "testing"

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"jane@x.com",
		"first.last@example.co.uk",
		"user+tag@domain.org",
	}
	for _, email := range valid {
		if !ValidateEmail(email) {
			t.Errorf("ValidateEmail(%q) = false, want true", email)
		}
	}

	invalid := []string{
		"",
		"plain",
		"missing@domain",
		"@nodomain.com",
		"spaces in@local.com",
	}
	for _, email := range invalid {
		if ValidateEmail(email) {
			t.Errorf("ValidateEmail(%q) = true, want false", email)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Jane@EXAMPLE.com ", "jane@example.com"},
		{"ALL@CAPS.ORG", "all@caps.org"},
		{"already@lower.net", "already@lower.net"},
	}
	for _, tt := range tests {
		if got := NormalizeEmail(tt.in); got != tt.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeInput(t *testing.T) {
	if got := SanitizeInput("  hello  "); got != "hello" {
		t.Errorf("trim: got %q", got)
	}
	if got := SanitizeInput("a\x00b"); got != "ab" {
		t.Errorf("null byte: got %q", got)
	}
	got := SanitizeInput(`<script>alert(1)</script>need-based aid`)
	if got != "need-based aid" {
		t.Errorf("markup: got %q", got)
	}
}

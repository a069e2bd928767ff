// utils/validator.go - Input validation
package utils

import (
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	emailRegex = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	stripHTML  = bluemonday.StrictPolicy()
)

// ValidateEmail checks if email is valid
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// NormalizeEmail lowercases and trims an email address. Every stored email
// goes through this.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidatePassword checks password strength
func ValidatePassword(password string) (bool, string) {
	if len(password) < 8 {
		return false, "Password must be at least 8 characters"
	}

	return true, ""
}

// SanitizeInput trims whitespace and strips any markup from user-submitted
// free text before it is stored or echoed back.
func SanitizeInput(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ReplaceAll(input, "\x00", "")
	return stripHTML.Sanitize(input)
}

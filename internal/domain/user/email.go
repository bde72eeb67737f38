package user

import (
	"fmt"
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// NormalizeEmail trims and lower-cases an address and validates its shape.
// Every lookup by email goes through this so the unique index sees one form.
func NormalizeEmail(value string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))

	if normalized == "" {
		return "", fmt.Errorf("%w: email cannot be empty", ErrInvalidEmail)
	}
	if len(normalized) > 255 {
		return "", fmt.Errorf("%w: email cannot exceed 255 characters", ErrInvalidEmail)
	}
	if !emailRegex.MatchString(normalized) {
		return "", fmt.Errorf("%w: %s", ErrInvalidEmail, value)
	}
	return normalized, nil
}

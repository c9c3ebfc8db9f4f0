package common

import (
	"regexp"
	"strings"
)

var (
	emailRegex  = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)
	handleRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
)

func ValidateHandle(handle string) error {
	handle = strings.TrimSpace(handle)
	if len(handle) < 3 || len(handle) > 50 {
		return NewValidationError("handle", "must be between 3 and 50 characters")
	}

	if !handleRegex.MatchString(handle) {
		return NewValidationError("handle", "can only contain letters, numbers, and underscores")
	}

	return nil
}

func ValidatePassword(password string) error {
	if len(password) < 6 {
		return NewValidationError("password", "must be at least 6 characters long")
	}

	if len(password) > 100 {
		return NewValidationError("password", "is too long")
	}

	return nil
}

func ValidateEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return NewValidationError("email", "is required")
	}

	if !emailRegex.MatchString(email) {
		return NewValidationError("email", "invalid format")
	}

	return nil
}

package validate

import (
	"regexp"
	"strings"
	"unicode/utf8"

	apperrors "learnobs/internal/platform/errors"
)

const MinPasswordLength = 8

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func Email(s string) bool {
	return emailPattern.MatchString(s)
}

func Password(s string) bool {
	return utf8.RuneCountInString(s) >= MinPasswordLength
}

// Required reports whether every value is non-blank.
func Required(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

func Credentials(email, password string) error {
	if !Required(email, password) {
		return apperrors.Validation("Please fill in all fields")
	}
	return nil
}

type Registration struct {
	Name     string
	Email    string
	Role     string
	Password string
	Confirm  string
	ChildID  string
}

// CheckRegistration applies the form rules in the order the user sees them.
func CheckRegistration(r Registration) error {
	if !Required(r.Name, r.Email, r.Role, r.Password, r.Confirm) {
		return apperrors.Validation("Please fill in all fields")
	}
	if !Email(strings.TrimSpace(r.Email)) {
		return apperrors.Validation("Please enter a valid email address")
	}
	if r.Password != r.Confirm {
		return apperrors.Validation("Passwords do not match")
	}
	if !Password(r.Password) {
		return apperrors.Validation("Password must be at least 8 characters")
	}
	if r.Role == "Parent" && strings.TrimSpace(r.ChildID) == "" {
		return apperrors.Validation("Please select your child")
	}
	return nil
}

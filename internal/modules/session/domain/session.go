package domain

import (
	"fmt"
	"strings"

	apperrors "learnobs/internal/platform/errors"
)

type Role string

const (
	RoleObserver Role = "Observer"
	RoleParent   Role = "Parent"
	RoleAdmin    Role = "Admin"
)

func ParseRole(s string) (Role, error) {
	switch r := Role(strings.TrimSpace(s)); r {
	case RoleObserver, RoleParent, RoleAdmin:
		return r, nil
	default:
		return "", fmt.Errorf("%w: unknown role %q", apperrors.ErrInvalidInput, s)
	}
}

// Session is the logged-in identity. The JSON shape matches what the
// service returns as "user" so a login response can be stored as is.
type Session struct {
	UserID  string `json:"id"`
	Name    string `json:"name"`
	Role    Role   `json:"role"`
	Email   string `json:"email,omitempty"`
	ChildID string `json:"child_id,omitempty"`
}

func (s Session) Validate() error {
	if strings.TrimSpace(s.UserID) == "" {
		return fmt.Errorf("%w: session user id is required", apperrors.ErrInvalidInput)
	}
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: session name is required", apperrors.ErrInvalidInput)
	}
	if _, err := ParseRole(string(s.Role)); err != nil {
		return err
	}
	return nil
}

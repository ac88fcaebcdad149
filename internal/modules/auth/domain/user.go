package domain

import (
	"strings"

	sessiondto "learnobs/internal/modules/session/dto"
)

// User is the identity the service returns on login.
type User struct {
	ID      string
	Name    string
	Role    string
	Email   string
	ChildID string
}

// Registration is what the service needs to create an account.
type Registration struct {
	Name     string
	Email    string
	Role     string
	Password string
	ChildID  string
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u User) Session() sessiondto.Session {
	return sessiondto.Session{
		UserID:  u.ID,
		Name:    u.Name,
		Role:    sessiondto.Role(u.Role),
		Email:   u.Email,
		ChildID: u.ChildID,
	}
}

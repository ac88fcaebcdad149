package dto

import "learnobs/internal/modules/session/domain"

type Role = domain.Role

const (
	RoleObserver = domain.RoleObserver
	RoleParent   = domain.RoleParent
	RoleAdmin    = domain.RoleAdmin
)

type Session struct {
	UserID  string
	Name    string
	Role    Role
	Email   string
	ChildID string
}

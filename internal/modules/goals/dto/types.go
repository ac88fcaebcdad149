package dto

import "learnobs/internal/modules/goals/domain"

type Goal = domain.Goal

const (
	StatusActive    = domain.StatusActive
	StatusCompleted = domain.StatusCompleted
)

type CreateInput struct {
	ChildID     string
	ObserverID  string
	TargetDate  string
	Description string
}

package domain

import (
	"strings"

	apperrors "learnobs/internal/platform/errors"
	"learnobs/internal/platform/validate"
)

const (
	StatusActive    = "active"
	StatusCompleted = "completed"
)

type Goal struct {
	ID          string
	ChildID     string
	ChildName   string
	Description string
	TargetDate  string
	Status      string
	Progress    int
}

// Percent clamps the reported progress to 0..100.
func (g Goal) Percent() int {
	switch {
	case g.Progress < 0:
		return 0
	case g.Progress > 100:
		return 100
	default:
		return g.Progress
	}
}

type Draft struct {
	ChildID     string
	ObserverID  string
	TargetDate  string
	Description string
}

func (d Draft) Normalize() Draft {
	d.ChildID = strings.TrimSpace(d.ChildID)
	d.ObserverID = strings.TrimSpace(d.ObserverID)
	d.TargetDate = strings.TrimSpace(d.TargetDate)
	d.Description = strings.TrimSpace(d.Description)
	return d
}

func (d Draft) Validate() error {
	if !validate.Required(d.ChildID, d.TargetDate, d.Description) {
		return apperrors.Validation("Please fill in all goal fields")
	}
	if d.ObserverID == "" {
		return apperrors.ErrNoSession
	}
	return nil
}

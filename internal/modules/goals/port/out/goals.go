package out

import (
	"context"

	"learnobs/internal/modules/goals/domain"
)

type Repository interface {
	Create(ctx context.Context, draft domain.Draft) error
	List(ctx context.Context, filter Filter) ([]domain.Goal, error)
	Delete(ctx context.Context, id string) error
	Complete(ctx context.Context, id string) error
}

// Filter selects goals by exactly one owner.
type Filter struct {
	ObserverID string
	ChildID    string
}

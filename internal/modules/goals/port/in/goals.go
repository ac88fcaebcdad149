package in

import (
	"context"

	"learnobs/internal/modules/goals/dto"
)

type Usecase interface {
	Create(ctx context.Context, input dto.CreateInput) error
	ListByObserver(ctx context.Context, observerID string) ([]dto.Goal, error)
	ListByChild(ctx context.Context, childID string) ([]dto.Goal, error)
	Delete(ctx context.Context, id string) error
	Complete(ctx context.Context, id string) error
}

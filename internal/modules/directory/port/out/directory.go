package out

import (
	"context"

	"learnobs/internal/modules/directory/dto"
)

type Directory interface {
	Children(ctx context.Context) ([]dto.Child, error)
	ObserverChildren(ctx context.Context, observerID string) ([]dto.Child, error)
	Child(ctx context.Context, id string) (dto.Child, error)
	Parents(ctx context.Context) ([]dto.Parent, error)
	AdminObservers(ctx context.Context) ([]dto.Observer, error)
	AdminChildren(ctx context.Context) ([]dto.Child, error)
}

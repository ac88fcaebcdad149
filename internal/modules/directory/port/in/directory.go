package in

import (
	"context"

	"learnobs/internal/modules/directory/dto"
)

type Usecase interface {
	Children(ctx context.Context) ([]dto.Child, error)
	ObserverChildren(ctx context.Context, observerID string) ([]dto.Child, error)
	Child(ctx context.Context, id string) (dto.Child, error)
	Parents(ctx context.Context) ([]dto.Parent, error)
	// Observers and AllChildren are the admin views of the directory.
	Observers(ctx context.Context) ([]dto.Observer, error)
	AllChildren(ctx context.Context) ([]dto.Child, error)
}

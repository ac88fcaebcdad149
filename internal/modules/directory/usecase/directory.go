package usecase

import (
	"context"
	"strings"

	"learnobs/internal/modules/directory/dto"
	directoryin "learnobs/internal/modules/directory/port/in"
	directoryout "learnobs/internal/modules/directory/port/out"
	apperrors "learnobs/internal/platform/errors"
)

type Interactor struct {
	dir directoryout.Directory
}

func NewInteractor(dir directoryout.Directory) directoryin.Usecase {
	return &Interactor{dir: dir}
}

func (i *Interactor) Children(ctx context.Context) ([]dto.Child, error) {
	return i.dir.Children(ctx)
}

func (i *Interactor) ObserverChildren(ctx context.Context, observerID string) ([]dto.Child, error) {
	if strings.TrimSpace(observerID) == "" {
		return nil, apperrors.Validation("Please select an observer")
	}
	return i.dir.ObserverChildren(ctx, observerID)
}

func (i *Interactor) Child(ctx context.Context, id string) (dto.Child, error) {
	if strings.TrimSpace(id) == "" {
		return dto.Child{}, apperrors.Validation("No child assigned to your account")
	}
	return i.dir.Child(ctx, id)
}

func (i *Interactor) Parents(ctx context.Context) ([]dto.Parent, error) {
	return i.dir.Parents(ctx)
}

func (i *Interactor) Observers(ctx context.Context) ([]dto.Observer, error) {
	return i.dir.AdminObservers(ctx)
}

func (i *Interactor) AllChildren(ctx context.Context) ([]dto.Child, error) {
	return i.dir.AdminChildren(ctx)
}

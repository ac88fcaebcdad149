package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"learnobs/internal/modules/goals/domain"
	"learnobs/internal/modules/goals/dto"
	goalsin "learnobs/internal/modules/goals/port/in"
	goalsout "learnobs/internal/modules/goals/port/out"
	apperrors "learnobs/internal/platform/errors"
)

type Interactor struct {
	repo goalsout.Repository
	log  logrus.FieldLogger
}

func NewInteractor(repo goalsout.Repository, log logrus.FieldLogger) goalsin.Usecase {
	return &Interactor{repo: repo, log: log.WithField("component", "goals")}
}

func (i *Interactor) Create(ctx context.Context, input dto.CreateInput) error {
	draft := domain.Draft{
		ChildID:     input.ChildID,
		ObserverID:  input.ObserverID,
		TargetDate:  input.TargetDate,
		Description: input.Description,
	}.Normalize()
	if err := draft.Validate(); err != nil {
		return err
	}
	if err := i.repo.Create(ctx, draft); err != nil {
		return err
	}
	i.log.WithField("child_id", draft.ChildID).Debug("goal created")
	return nil
}

func (i *Interactor) ListByObserver(ctx context.Context, observerID string) ([]dto.Goal, error) {
	if strings.TrimSpace(observerID) == "" {
		return nil, apperrors.ErrNoSession
	}
	return i.repo.List(ctx, goalsout.Filter{ObserverID: observerID})
}

func (i *Interactor) ListByChild(ctx context.Context, childID string) ([]dto.Goal, error) {
	if strings.TrimSpace(childID) == "" {
		return nil, apperrors.Validation("No child assigned to your account")
	}
	return i.repo.List(ctx, goalsout.Filter{ChildID: childID})
}

func (i *Interactor) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: goal id is required", apperrors.ErrInvalidInput)
	}
	return i.repo.Delete(ctx, id)
}

func (i *Interactor) Complete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: goal id is required", apperrors.ErrInvalidInput)
	}
	return i.repo.Complete(ctx, id)
}

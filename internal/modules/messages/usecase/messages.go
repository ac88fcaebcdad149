package usecase

import (
	"context"
	"strings"

	"learnobs/internal/modules/messages/domain"
	"learnobs/internal/modules/messages/dto"
	messagesin "learnobs/internal/modules/messages/port/in"
	messagesout "learnobs/internal/modules/messages/port/out"
	apperrors "learnobs/internal/platform/errors"
)

type Interactor struct {
	repo messagesout.Repository
}

func NewInteractor(repo messagesout.Repository) messagesin.Usecase {
	return &Interactor{repo: repo}
}

func (i *Interactor) ObserverThread(ctx context.Context, observerID, parentID string) (dto.Thread, error) {
	if strings.TrimSpace(parentID) == "" {
		return dto.Thread{}, apperrors.Validation("Please select a parent")
	}
	conv, err := i.repo.Thread(ctx, observerID, parentID)
	if err != nil {
		return dto.Thread{}, err
	}
	return dto.Thread{Messages: conv.Messages, Counterpart: domain.ObserverHeader(conv.ChildName)}, nil
}

func (i *Interactor) ParentThread(ctx context.Context, parentID string) (dto.Thread, error) {
	if strings.TrimSpace(parentID) == "" {
		return dto.Thread{}, apperrors.ErrNoSession
	}
	conv, err := i.repo.Thread(ctx, "", parentID)
	if err != nil {
		return dto.Thread{}, err
	}
	return dto.Thread{Messages: conv.Messages, Counterpart: domain.ParentHeader(conv.ObserverName)}, nil
}

func (i *Interactor) SendToParent(ctx context.Context, observerID, parentID, content string) error {
	msg, err := domain.ObserverMessage(observerID, parentID, content)
	if err != nil {
		return err
	}
	return i.repo.Send(ctx, msg)
}

func (i *Interactor) SendToObserver(ctx context.Context, parentID, childID, content string) error {
	msg, err := domain.ParentMessage(parentID, childID, content)
	if err != nil {
		return err
	}
	return i.repo.Send(ctx, msg)
}

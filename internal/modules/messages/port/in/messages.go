package in

import (
	"context"

	"learnobs/internal/modules/messages/dto"
)

type Usecase interface {
	ObserverThread(ctx context.Context, observerID, parentID string) (dto.Thread, error)
	ParentThread(ctx context.Context, parentID string) (dto.Thread, error)
	SendToParent(ctx context.Context, observerID, parentID, content string) error
	SendToObserver(ctx context.Context, parentID, childID, content string) error
}

package out

import (
	"context"

	"learnobs/internal/modules/messages/domain"
)

// Conversation is a thread as returned by the service with the name of the
// child (observer side) or observer (parent side).
type Conversation struct {
	Messages     []domain.Message
	ChildName    string
	ObserverName string
}

type Repository interface {
	Thread(ctx context.Context, observerID, parentID string) (Conversation, error)
	Send(ctx context.Context, msg domain.Outgoing) error
}

package out

import (
	"context"

	"learnobs/internal/modules/session/domain"
)

// SessionStore persists a single session record under a fixed key. Load
// returns apperrors.ErrNoSession when nothing is stored.
type SessionStore interface {
	Save(ctx context.Context, session domain.Session) error
	Load(ctx context.Context) (domain.Session, error)
	Clear(ctx context.Context) error
}

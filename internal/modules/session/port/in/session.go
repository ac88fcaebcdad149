package in

import (
	"context"

	"learnobs/internal/modules/session/dto"
)

type Usecase interface {
	// Restore never fails; any persistence problem reads as "no session".
	Restore(ctx context.Context) (dto.Session, bool)
	Persist(ctx context.Context, session dto.Session) error
	Flush(ctx context.Context)
	Clear(ctx context.Context)
	Active() (dto.Session, bool)
}

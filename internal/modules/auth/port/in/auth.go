package in

import (
	"context"

	authdto "learnobs/internal/modules/auth/dto"
	sessiondto "learnobs/internal/modules/session/dto"
)

type Usecase interface {
	Login(ctx context.Context, input authdto.LoginInput) (sessiondto.Session, error)
	Register(ctx context.Context, input authdto.RegisterInput) error
	Logout(ctx context.Context)
	Restore(ctx context.Context) (sessiondto.Session, bool)
}

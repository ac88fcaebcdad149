package out

import (
	"context"

	"learnobs/internal/modules/auth/domain"
)

type Authenticator interface {
	Login(ctx context.Context, email, password string) (domain.User, error)
	Register(ctx context.Context, reg domain.Registration) error
}

package in

import (
	"context"

	authdto "learnobs/internal/modules/auth/dto"
	authin "learnobs/internal/modules/auth/port/in"
	sessiondto "learnobs/internal/modules/session/dto"
)

type CLIHandler struct {
	usecase authin.Usecase
}

func NewCLIHandler(usecase authin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Login(ctx context.Context, email, password string) (sessiondto.Session, error) {
	return h.usecase.Login(ctx, authdto.LoginInput{Email: email, Password: password})
}

// Logout reports whether a session existed.
func (h CLIHandler) Logout(ctx context.Context) bool {
	_, ok := h.usecase.Restore(ctx)
	h.usecase.Logout(ctx)
	return ok
}

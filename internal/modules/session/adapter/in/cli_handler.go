package in

import (
	"context"

	sessiondto "learnobs/internal/modules/session/dto"
	sessionin "learnobs/internal/modules/session/port/in"
	apperrors "learnobs/internal/platform/errors"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) WhoAmI(ctx context.Context) (sessiondto.Session, error) {
	s, ok := h.usecase.Restore(ctx)
	if !ok {
		return sessiondto.Session{}, apperrors.ErrNoSession
	}
	return s, nil
}

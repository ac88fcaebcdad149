package in

import (
	"context"

	goalsdto "learnobs/internal/modules/goals/dto"
	goalsin "learnobs/internal/modules/goals/port/in"
	sessiondto "learnobs/internal/modules/session/dto"
	sessionin "learnobs/internal/modules/session/port/in"
	apperrors "learnobs/internal/platform/errors"
)

type CLIHandler struct {
	usecase  goalsin.Usecase
	sessions sessionin.Usecase
}

func NewCLIHandler(usecase goalsin.Usecase, sessions sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase, sessions: sessions}
}

// List shows the goals of childID, or when it is empty, the goals the
// signed-in user normally sees: an observer's own goals or a parent's
// child's goals.
func (h CLIHandler) List(ctx context.Context, childID string) ([]goalsdto.Goal, error) {
	if childID != "" {
		return h.usecase.ListByChild(ctx, childID)
	}
	s, ok := h.sessions.Restore(ctx)
	if !ok {
		return nil, apperrors.ErrNoSession
	}
	if s.Role == sessiondto.RoleParent {
		return h.usecase.ListByChild(ctx, s.ChildID)
	}
	return h.usecase.ListByObserver(ctx, s.UserID)
}

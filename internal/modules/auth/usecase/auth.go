package usecase

import (
	"context"
	"strings"

	"learnobs/internal/modules/auth/domain"
	authdto "learnobs/internal/modules/auth/dto"
	authin "learnobs/internal/modules/auth/port/in"
	authout "learnobs/internal/modules/auth/port/out"
	sessiondto "learnobs/internal/modules/session/dto"
	sessionin "learnobs/internal/modules/session/port/in"
	apperrors "learnobs/internal/platform/errors"
	"learnobs/internal/platform/validate"
)

type Interactor struct {
	auth     authout.Authenticator
	sessions sessionin.Usecase
}

func NewInteractor(auth authout.Authenticator, sessions sessionin.Usecase) authin.Usecase {
	return &Interactor{auth: auth, sessions: sessions}
}

// Login leaves the session untouched on any failure.
func (i *Interactor) Login(ctx context.Context, input authdto.LoginInput) (sessiondto.Session, error) {
	email := strings.TrimSpace(input.Email)
	if err := validate.Credentials(email, input.Password); err != nil {
		return sessiondto.Session{}, err
	}
	user, err := i.auth.Login(ctx, email, input.Password)
	if err != nil {
		return sessiondto.Session{}, err
	}
	session := user.Session()
	if err := i.sessions.Persist(ctx, session); err != nil {
		return sessiondto.Session{}, apperrors.Application("Unable to start session: " + err.Error())
	}
	return session, nil
}

func (i *Interactor) Register(ctx context.Context, input authdto.RegisterInput) error {
	form := validate.Registration{
		Name:     strings.TrimSpace(input.Name),
		Email:    strings.TrimSpace(input.Email),
		Role:     input.Role,
		Password: input.Password,
		Confirm:  input.Confirm,
		ChildID:  input.ChildID,
	}
	if err := validate.CheckRegistration(form); err != nil {
		return err
	}
	reg := domain.Registration{
		Name:     form.Name,
		Email:    domain.NormalizeEmail(form.Email),
		Role:     form.Role,
		Password: form.Password,
	}
	if form.Role == string(sessiondto.RoleParent) {
		reg.ChildID = form.ChildID
	}
	return i.auth.Register(ctx, reg)
}

func (i *Interactor) Logout(ctx context.Context) {
	i.sessions.Clear(ctx)
}

func (i *Interactor) Restore(ctx context.Context) (sessiondto.Session, bool) {
	return i.sessions.Restore(ctx)
}

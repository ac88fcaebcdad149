package usecase_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"

	"learnobs/internal/modules/auth/domain"
	authdto "learnobs/internal/modules/auth/dto"
	"learnobs/internal/modules/auth/usecase"
	sessionout "learnobs/internal/modules/session/adapter/out"
	sessiondto "learnobs/internal/modules/session/dto"
	sessionusecase "learnobs/internal/modules/session/usecase"
	apperrors "learnobs/internal/platform/errors"
)

type fakeAuth struct {
	calls      int
	user       domain.User
	err        error
	registered domain.Registration
}

func (f *fakeAuth) Login(_ context.Context, email, password string) (domain.User, error) {
	f.calls++
	if f.err != nil {
		return domain.User{}, f.err
	}
	return f.user, nil
}

func (f *fakeAuth) Register(_ context.Context, reg domain.Registration) error {
	f.calls++
	f.registered = reg
	return f.err
}

func newStore(t *testing.T) *sessionusecase.Store {
	t.Helper()
	log, _ := test.NewNullLogger()
	return sessionusecase.NewStore(sessionout.NewFileSessionStore(filepath.Join(t.TempDir(), "session.json")), log)
}

func TestLoginFailureLeavesSessionUnset(t *testing.T) {
	t.Parallel()
	store := newStore(t)
	auth := &fakeAuth{err: apperrors.Application("Invalid credentials")}
	uc := usecase.NewInteractor(auth, store)

	_, err := uc.Login(context.Background(), authdto.LoginInput{Email: "a@b.com", Password: "validpass1"})
	if apperrors.UserMessage(err) != "Invalid credentials" {
		t.Fatalf("expected verbatim service message, got %v", err)
	}
	if _, ok := store.Active(); ok {
		t.Fatalf("session must remain unset")
	}
}

func TestLoginValidatesBeforeCallingService(t *testing.T) {
	t.Parallel()
	auth := &fakeAuth{}
	uc := usecase.NewInteractor(auth, newStore(t))
	_, err := uc.Login(context.Background(), authdto.LoginInput{Email: "  ", Password: "x"})
	if apperrors.KindOf(err) != apperrors.KindValidation || apperrors.UserMessage(err) != "Please fill in all fields" {
		t.Fatalf("expected validation error, got %v", err)
	}
	if auth.calls != 0 {
		t.Fatalf("expected zero service calls, got %d", auth.calls)
	}
}

func TestLoginPersistsSession(t *testing.T) {
	t.Parallel()
	store := newStore(t)
	auth := &fakeAuth{user: domain.User{ID: "p1", Name: "Pat", Role: "Parent", ChildID: "c1"}}
	uc := usecase.NewInteractor(auth, store)

	got, err := uc.Login(context.Background(), authdto.LoginInput{Email: "pat@example.com", Password: "validpass1"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if got.Role != sessiondto.RoleParent || got.ChildID != "c1" {
		t.Fatalf("unexpected session %+v", got)
	}
	if active, ok := store.Active(); !ok || active != got {
		t.Fatalf("expected active session %+v", got)
	}

	uc.Logout(context.Background())
	if _, ok := uc.Restore(context.Background()); ok {
		t.Fatalf("expected no session after logout")
	}
}

func TestLoginRejectsUnknownRole(t *testing.T) {
	t.Parallel()
	store := newStore(t)
	uc := usecase.NewInteractor(&fakeAuth{user: domain.User{ID: "x", Name: "X", Role: "Teacher"}}, store)
	if _, err := uc.Login(context.Background(), authdto.LoginInput{Email: "x@y.com", Password: "validpass1"}); err == nil {
		t.Fatalf("expected unknown role to fail")
	}
	if _, ok := store.Active(); ok {
		t.Fatalf("session must remain unset")
	}
}

func TestRegisterRules(t *testing.T) {
	t.Parallel()
	auth := &fakeAuth{}
	uc := usecase.NewInteractor(auth, newStore(t))

	err := uc.Register(context.Background(), authdto.RegisterInput{Name: "Pat", Email: "pat@example.com", Role: "Parent", Password: "validpass1", Confirm: "validpass1"})
	if apperrors.UserMessage(err) != "Please select your child" || auth.calls != 0 {
		t.Fatalf("expected child selection error without a call, got %v (%d calls)", err, auth.calls)
	}

	err = uc.Register(context.Background(), authdto.RegisterInput{Name: " Olive ", Email: " Olive@Example.com ", Role: "Observer", Password: "validpass1", Confirm: "validpass1", ChildID: "c1"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if auth.registered.Email != "olive@example.com" || auth.registered.Name != "Olive" || auth.registered.ChildID != "" {
		t.Fatalf("unexpected registration %+v", auth.registered)
	}
}

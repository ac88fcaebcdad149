package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"learnobs/internal/modules/session/domain"
	sessiondto "learnobs/internal/modules/session/dto"
	sessionin "learnobs/internal/modules/session/port/in"
	sessionout "learnobs/internal/modules/session/port/out"
	apperrors "learnobs/internal/platform/errors"
)

// Store owns the single active session. Storage failures are logged and
// never returned.
type Store struct {
	mu     sync.Mutex
	store  sessionout.SessionStore
	log    logrus.FieldLogger
	active *domain.Session
}

func NewStore(store sessionout.SessionStore, log logrus.FieldLogger) *Store {
	return &Store{store: store, log: log.WithField("component", "session")}
}

var _ sessionin.Usecase = (*Store)(nil)

func (s *Store) Restore(ctx context.Context) (sessiondto.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.active = nil
	loaded, err := s.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNoSession) {
			s.log.WithError(err).Warn("restore session")
		}
		return sessiondto.Session{}, false
	}
	if err := loaded.Validate(); err != nil {
		s.log.WithError(err).Warn("discard malformed session")
		return sessiondto.Session{}, false
	}
	s.active = &loaded
	return toDTO(loaded), true
}

// Persist makes session active and writes it. Writing the same session
// again is a no-op apart from the write.
func (s *Store) Persist(ctx context.Context, session sessiondto.Session) error {
	next := fromDTO(session)
	if err := next.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active != nil {
		if s.active.UserID != next.UserID {
			return apperrors.ErrActiveSessionExists
		}
		if s.active.Role != next.Role {
			return apperrors.ErrRoleImmutable
		}
	}
	s.active = &next
	s.write(ctx, next)
	return nil
}

// Flush writes the active session again before the client shuts down.
func (s *Store) Flush(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return
	}
	s.write(ctx, *s.active)
}

func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = nil
	if err := s.store.Clear(ctx); err != nil {
		s.log.WithError(err).Warn("clear session")
	}
}

func (s *Store) Active() (sessiondto.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return sessiondto.Session{}, false
	}
	return toDTO(*s.active), true
}

func (s *Store) write(ctx context.Context, session domain.Session) {
	if err := s.store.Save(ctx, session); err != nil {
		s.log.WithError(err).WithField("user_id", session.UserID).Warn("persist session")
	}
}

func toDTO(s domain.Session) sessiondto.Session {
	return sessiondto.Session{UserID: s.UserID, Name: s.Name, Role: s.Role, Email: s.Email, ChildID: s.ChildID}
}

func fromDTO(s sessiondto.Session) domain.Session {
	return domain.Session{UserID: s.UserID, Name: s.Name, Role: s.Role, Email: s.Email, ChildID: s.ChildID}
}

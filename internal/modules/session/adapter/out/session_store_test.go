package out_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	sessionout "learnobs/internal/modules/session/adapter/out"
	"learnobs/internal/modules/session/domain"
	port "learnobs/internal/modules/session/port/out"
	apperrors "learnobs/internal/platform/errors"
)

func stores(t *testing.T) map[string]port.SessionStore {
	t.Helper()
	dir := t.TempDir()
	sqlite, err := sessionout.NewSQLiteSessionStore(filepath.Join(dir, "learnobs.db"))
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	t.Cleanup(func() { _ = sqlite.Close() })
	return map[string]port.SessionStore{
		"file":   sessionout.NewFileSessionStore(filepath.Join(dir, "session.json")),
		"sqlite": sqlite,
	}
}

func TestStoresRoundTripAndClear(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	for name, store := range stores(t) {
		if _, err := store.Load(ctx); !errors.Is(err, apperrors.ErrNoSession) {
			t.Fatalf("%s: expected no session on empty store, got %v", name, err)
		}
		want := domain.Session{UserID: "p-1", Name: "Pat", Role: domain.RoleParent, ChildID: "c-9", Email: "pat@example.com"}
		if err := store.Save(ctx, want); err != nil {
			t.Fatalf("%s: save: %v", name, err)
		}
		if err := store.Save(ctx, want); err != nil {
			t.Fatalf("%s: second save: %v", name, err)
		}
		got, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("%s: load: %v", name, err)
		}
		if got != want {
			t.Fatalf("%s: round trip mismatch: %+v", name, got)
		}
		if err := store.Clear(ctx); err != nil {
			t.Fatalf("%s: clear: %v", name, err)
		}
		if err := store.Clear(ctx); err != nil {
			t.Fatalf("%s: clear twice: %v", name, err)
		}
		if _, err := store.Load(ctx); !errors.Is(err, apperrors.ErrNoSession) {
			t.Fatalf("%s: expected no session after clear, got %v", name, err)
		}
	}
}

func TestFileStoreReportsMalformedRecord(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := sessionout.NewFileSessionStore(path).Load(context.Background())
	if err == nil || errors.Is(err, apperrors.ErrNoSession) {
		t.Fatalf("expected decode error, got %v", err)
	}
}

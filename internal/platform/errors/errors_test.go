package apperrors_test

import (
	"errors"
	"fmt"
	"testing"

	apperrors "learnobs/internal/platform/errors"
)

func TestUserMessageByKind(t *testing.T) {
	t.Parallel()
	if got := apperrors.UserMessage(apperrors.Validation("Please fill in all fields")); got != "Please fill in all fields" {
		t.Fatalf("validation message: %q", got)
	}
	if got := apperrors.UserMessage(apperrors.Network(errors.New("dial tcp: refused"))); got != apperrors.ConnectionMessage {
		t.Fatalf("network message: %q", got)
	}
	if got := apperrors.UserMessage(apperrors.Application("Invalid credentials")); got != "Invalid credentials" {
		t.Fatalf("application message must be verbatim, got %q", got)
	}
	if got := apperrors.UserMessage(nil); got != "" {
		t.Fatalf("nil error should map to empty message, got %q", got)
	}
}

func TestKindOfSeesThroughWrapping(t *testing.T) {
	t.Parallel()
	wrapped := fmt.Errorf("login: %w", apperrors.Application("nope"))
	if apperrors.KindOf(wrapped) != apperrors.KindApplication {
		t.Fatalf("expected application kind through wrap")
	}
	if apperrors.KindOf(errors.New("plain")) != apperrors.KindUnknown {
		t.Fatalf("plain errors are unknown kind")
	}
	cause := errors.New("eof")
	if !errors.Is(apperrors.Network(cause), cause) {
		t.Fatalf("network error must unwrap to its cause")
	}
}

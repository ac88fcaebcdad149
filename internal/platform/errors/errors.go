package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("not found")
	ErrNoSession           = errors.New("no active session")
	ErrActiveSessionExists = errors.New("active session already exists")
	ErrRoleImmutable       = errors.New("session role cannot change")
	ErrScreenNotAllowed    = errors.New("screen not allowed for role")
	ErrTabNotOnScreen      = errors.New("tab does not belong to the current screen")
	ErrNothingStaged       = errors.New("nothing staged")
	ErrSubmissionInFlight  = errors.New("a submission is already in flight")
	ErrNotReported         = errors.New("no regenerable report")
	ErrAlreadyBusy         = errors.New("busy indicator already shown")
	ErrStaleResult         = errors.New("result belongs to a superseded request")
)

// ConnectionMessage is what the user sees for any transport-level failure.
const ConnectionMessage = "Connection error. Please try again."

type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNetwork
	KindApplication
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNetwork:
		return "network"
	case KindApplication:
		return "application"
	default:
		return "unknown"
	}
}

// Error is the discriminated failure every call site receives. Message is
// user-facing; Err keeps the underlying cause for logs.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message == "" {
		return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func Network(err error) *Error {
	return &Error{Kind: KindNetwork, Err: err}
}

// Application carries the service message unmodified.
func Application(msg string) *Error {
	return &Error{Kind: KindApplication, Message: msg}
}

// KindOf reports the taxonomy kind of err, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// UserMessage maps err to the text shown in the notification banner.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		switch e.Kind {
		case KindNetwork:
			return ConnectionMessage
		case KindValidation, KindApplication:
			if e.Message != "" {
				return e.Message
			}
		}
	}
	return err.Error()
}

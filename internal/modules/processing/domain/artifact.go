package domain

import (
	"fmt"
	"strings"

	apperrors "learnobs/internal/platform/errors"
	"learnobs/internal/platform/validate"
)

type Kind string

const (
	KindImage Kind = "image"
	KindAudio Kind = "audio"
)

func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindImage, KindAudio:
		return k, nil
	default:
		return "", fmt.Errorf("%w: unknown artifact kind %q", apperrors.ErrInvalidInput, s)
	}
}

func (k Kind) Policy() (validate.FilePolicy, error) {
	switch k {
	case KindImage:
		return validate.ImagePolicy, nil
	case KindAudio:
		return validate.AudioPolicy, nil
	default:
		return validate.FilePolicy{}, fmt.Errorf("%w: unknown artifact kind %q", apperrors.ErrInvalidInput, k)
	}
}

// MissingMessage is shown when submit is asked for a kind nothing was staged for.
func (k Kind) MissingMessage() string {
	if k == KindAudio {
		return "Please select an audio file first"
	}
	return "Please select an image first"
}

// Artifact is a locally selected file that has not been submitted yet.
type Artifact struct {
	Kind        Kind
	Name        string
	ContentType string
	Size        int64
	Data        []byte
}

func (a Artifact) Check() error {
	policy, err := a.Kind.Policy()
	if err != nil {
		return err
	}
	return policy.Check(a.ContentType, a.Size)
}

// SessionInfo contextualizes a processing request.
type SessionInfo struct {
	StudentName  string `json:"student_name"`
	ObserverName string `json:"observer_name"`
	Date         string `json:"session_date"`
	Start        string `json:"session_start"`
	End          string `json:"session_end"`
	StudentID    string `json:"-"`
}

const incompleteSessionInfo = "Please fill in all session information"

func (s SessionInfo) Validate() error {
	if !validate.Required(s.StudentName, s.ObserverName, s.Date, s.Start, s.End, s.StudentID) {
		return apperrors.Validation(incompleteSessionInfo)
	}
	return nil
}

func (s SessionInfo) Complete() bool {
	return s.Validate() == nil
}

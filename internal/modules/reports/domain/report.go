package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	apperrors "learnobs/internal/platform/errors"
	"learnobs/internal/platform/validate"
)

// Body is the readable content of a stored report's full_data.
type Body struct {
	Text       string
	Transcript string
}

// ParseFullData extracts the report text from full_data. Audio reports store
// {"transcript", "report"}; anything else is shown as stored.
func ParseFullData(raw string) Body {
	trimmed := strings.TrimSpace(raw)
	if gjson.Valid(trimmed) {
		doc := gjson.Parse(trimmed)
		if doc.IsObject() {
			if report := doc.Get("report"); report.Type == gjson.String && report.Str != "" {
				return Body{Text: report.Str, Transcript: doc.Get("transcript").String()}
			}
		}
		if doc.Type == gjson.String {
			return Body{Text: doc.Str}
		}
	}
	return Body{Text: raw}
}

const incompleteEmail = "Please fill in all email fields"

// DefaultSubject is used when the email form is opened without a subject.
func DefaultSubject(now time.Time) string {
	return fmt.Sprintf("Observation Report - %d/%d/%d", int(now.Month()), now.Day(), now.Year())
}

type Email struct {
	To      string
	Subject string
	Content string
}

func (e Email) Validate() error {
	if !validate.Required(e.To, e.Subject, e.Content) {
		return apperrors.Validation(incompleteEmail)
	}
	if !validate.Email(e.To) {
		return apperrors.Validation("Please enter a valid email address")
	}
	return nil
}

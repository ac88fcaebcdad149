package domain_test

import (
	"testing"
	"time"

	"learnobs/internal/modules/reports/domain"
	apperrors "learnobs/internal/platform/errors"
)

func TestParseFullData(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		raw  string
		want domain.Body
	}{
		{"audio", `{"transcript":"she said hi","report":"# Report"}`, domain.Body{Text: "# Report", Transcript: "she said hi"}},
		{"structured", `{"studentName":"Mia"}`, domain.Body{Text: `{"studentName":"Mia"}`}},
		{"json string", `"plain report"`, domain.Body{Text: "plain report"}},
		{"text", "# Already markdown", domain.Body{Text: "# Already markdown"}},
		{"empty report field", `{"report":""}`, domain.Body{Text: `{"report":""}`}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := domain.ParseFullData(tt.raw); got != tt.want {
				t.Fatalf("ParseFullData(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestEmailValidation(t *testing.T) {
	t.Parallel()
	if got := domain.DefaultSubject(time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)); got != "Observation Report - 3/4/2024" {
		t.Fatalf("unexpected subject %q", got)
	}
	if err := (domain.Email{To: "a@b.co", Subject: "s"}).Validate(); apperrors.UserMessage(err) != "Please fill in all email fields" {
		t.Fatalf("expected incomplete email error, got %v", err)
	}
	if err := (domain.Email{To: "nope", Subject: "s", Content: "c"}).Validate(); apperrors.KindOf(err) != apperrors.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := (domain.Email{To: "a@b.co", Subject: "s", Content: "c"}).Validate(); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
}

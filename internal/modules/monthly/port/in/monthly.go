package in

import (
	"context"

	"learnobs/internal/modules/monthly/dto"
)

type Usecase interface {
	Generate(ctx context.Context, input dto.GenerateInput) (dto.Report, error)
	Fetch(ctx context.Context, input dto.FetchInput) (dto.Report, error)
	Share(ctx context.Context, report *dto.Report, observerID string) error
	Feedback(ctx context.Context, input dto.FeedbackInput) error
	Export(ctx context.Context, input dto.ExportInput) (string, error)
	DefaultPeriod() dto.Period
	YearOptions() []int
}

package out

import (
	"context"

	"learnobs/internal/modules/monthly/domain"
)

type Repository interface {
	Generate(ctx context.Context, req domain.Generate) (domain.Report, error)
	Fetch(ctx context.Context, req domain.Fetch) (domain.Report, error)
	Share(ctx context.Context, raw string, observerID string) error
	Feedback(ctx context.Context, fb domain.Feedback) error
}

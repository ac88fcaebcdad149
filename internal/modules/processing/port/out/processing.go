package out

import (
	"context"

	"learnobs/internal/modules/processing/domain"
)

type Processor interface {
	Process(ctx context.Context, job domain.Job) (domain.Result, error)
}

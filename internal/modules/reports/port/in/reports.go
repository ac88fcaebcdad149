package in

import (
	"context"

	"learnobs/internal/modules/reports/dto"
)

type Usecase interface {
	List(ctx context.Context, childID string) ([]dto.Preview, error)
	Get(ctx context.Context, id string) (dto.Document, error)
	Export(ctx context.Context, input dto.ExportInput) (string, error)
	// Open reads back a report written by Export.
	Open(ctx context.Context, path string) (dto.Document, error)
	Email(ctx context.Context, input dto.EmailInput) error
	DefaultSubject() string
}

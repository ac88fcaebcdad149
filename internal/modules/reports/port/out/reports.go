package out

import (
	"context"

	"learnobs/internal/modules/reports/domain"
	"learnobs/internal/modules/reports/dto"
)

// Stored is a report as returned by the service; FullData is still raw.
type Stored struct {
	ID           string
	Date         string
	StudentName  string
	ObserverName string
	FullData     string
}

type Repository interface {
	List(ctx context.Context, childID string) ([]dto.Preview, error)
	Get(ctx context.Context, id string) (Stored, error)
}

type Mailer interface {
	Send(ctx context.Context, email domain.Email) error
}

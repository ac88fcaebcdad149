package out

import (
	"context"

	"learnobs/internal/modules/admin/domain"
)

type Repository interface {
	Stats(ctx context.Context) (domain.Stats, error)
	Users(ctx context.Context) ([]domain.User, error)
	DeleteUser(ctx context.Context, id string) error
	Mappings(ctx context.Context) ([]domain.Mapping, error)
	AddMapping(ctx context.Context, m domain.Mapping) error
	RemoveMapping(ctx context.Context, id string) error
	ActivityLogs(ctx context.Context) ([]domain.ActivityLog, error)
	BulkUpload(ctx context.Context, kind domain.BulkKind, file domain.CSV) (int, error)
}

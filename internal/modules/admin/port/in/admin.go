package in

import (
	"context"

	"learnobs/internal/modules/admin/dto"
)

type Usecase interface {
	Stats(ctx context.Context) (dto.StatsView, error)
	Users(ctx context.Context) ([]dto.User, error)
	DeleteUser(ctx context.Context, id string) error
	Mappings(ctx context.Context) ([]dto.Mapping, error)
	AddMapping(ctx context.Context, observerID, childID string) error
	RemoveMapping(ctx context.Context, id string) error
	ActivityLogs(ctx context.Context) ([]dto.ActivityLog, error)
	BulkUpload(ctx context.Context, kind dto.BulkKind, path string) (dto.BulkResult, error)
}

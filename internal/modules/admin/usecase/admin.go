package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"learnobs/internal/modules/admin/domain"
	"learnobs/internal/modules/admin/dto"
	adminin "learnobs/internal/modules/admin/port/in"
	adminout "learnobs/internal/modules/admin/port/out"
	apperrors "learnobs/internal/platform/errors"
)

type Interactor struct {
	repo adminout.Repository
	log  logrus.FieldLogger
}

func NewInteractor(repo adminout.Repository, log logrus.FieldLogger) adminin.Usecase {
	return &Interactor{repo: repo, log: log.WithField("component", "admin")}
}

// Stats returns an unloaded view alongside any error.
func (i *Interactor) Stats(ctx context.Context) (dto.StatsView, error) {
	stats, err := i.repo.Stats(ctx)
	if err != nil {
		i.log.WithError(err).Info("stats unavailable")
		return dto.StatsView{}, err
	}
	return dto.StatsView{Loaded: true, Stats: stats}, nil
}

func (i *Interactor) Users(ctx context.Context) ([]dto.User, error) {
	return i.repo.Users(ctx)
}

func (i *Interactor) DeleteUser(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: user id is required", apperrors.ErrInvalidInput)
	}
	if err := i.repo.DeleteUser(ctx, id); err != nil {
		return err
	}
	i.log.WithField("user_id", id).Info("user deleted")
	return nil
}

func (i *Interactor) Mappings(ctx context.Context) ([]dto.Mapping, error) {
	return i.repo.Mappings(ctx)
}

func (i *Interactor) AddMapping(ctx context.Context, observerID, childID string) error {
	m, err := domain.NewMapping(observerID, childID)
	if err != nil {
		return err
	}
	return i.repo.AddMapping(ctx, m)
}

func (i *Interactor) RemoveMapping(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: mapping id is required", apperrors.ErrInvalidInput)
	}
	return i.repo.RemoveMapping(ctx, id)
}

func (i *Interactor) ActivityLogs(ctx context.Context) ([]dto.ActivityLog, error) {
	return i.repo.ActivityLogs(ctx)
}

func (i *Interactor) BulkUpload(ctx context.Context, kind dto.BulkKind, path string) (dto.BulkResult, error) {
	if _, err := domain.ParseBulkKind(string(kind)); err != nil {
		return dto.BulkResult{}, err
	}
	file, err := readCSV(path)
	if err != nil {
		return dto.BulkResult{}, err
	}
	count, err := i.repo.BulkUpload(ctx, kind, file)
	if err != nil {
		return dto.BulkResult{}, err
	}
	i.log.WithFields(logrus.Fields{"kind": kind, "count": count}).Info("bulk upload complete")
	return dto.BulkResult{Kind: kind, Count: count, Message: kind.Success(count)}, nil
}

func readCSV(path string) (domain.CSV, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return domain.CSV{}, apperrors.Validation("Please select a CSV file")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.CSV{}, apperrors.Validation(fmt.Sprintf("Cannot read %s", filepath.Base(path)))
	}
	file := domain.CSV{Name: filepath.Base(path), Data: data}
	return file, file.Validate()
}

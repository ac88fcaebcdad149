package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"learnobs/internal/modules/monthly/domain"
	"learnobs/internal/modules/monthly/dto"
	monthlyin "learnobs/internal/modules/monthly/port/in"
	monthlyout "learnobs/internal/modules/monthly/port/out"
	"learnobs/internal/platform/clock"
	apperrors "learnobs/internal/platform/errors"
)

type Interactor struct {
	repo  monthlyout.Repository
	clock clock.Clock
	log   logrus.FieldLogger
}

func NewInteractor(repo monthlyout.Repository, clk clock.Clock, log logrus.FieldLogger) monthlyin.Usecase {
	if clk == nil {
		clk = clock.SystemClock{}
	}
	return &Interactor{repo: repo, clock: clk, log: log.WithField("component", "monthly")}
}

func (i *Interactor) Generate(ctx context.Context, input dto.GenerateInput) (dto.Report, error) {
	req := domain.Generate{ChildID: strings.TrimSpace(input.ChildID), ObserverID: input.ObserverID, Period: input.Period}
	if err := req.Validate(); err != nil {
		return dto.Report{}, err
	}
	report, err := i.repo.Generate(ctx, req)
	if err != nil {
		return dto.Report{}, err
	}
	i.log.WithFields(logrus.Fields{"child_id": req.ChildID, "year": req.Period.Year, "month": req.Period.Month}).Info("monthly report generated")
	return fill(report, req.Period), nil
}

func (i *Interactor) Fetch(ctx context.Context, input dto.FetchInput) (dto.Report, error) {
	req := domain.Fetch{ChildID: strings.TrimSpace(input.ChildID), Period: input.Period}
	if err := req.Validate(); err != nil {
		return dto.Report{}, err
	}
	report, err := i.repo.Fetch(ctx, req)
	if err != nil {
		return dto.Report{}, err
	}
	return fill(report, req.Period), nil
}

func (i *Interactor) Share(ctx context.Context, report *dto.Report, observerID string) error {
	if report == nil || report.Raw == "" {
		return apperrors.Validation("No report to share")
	}
	if observerID == "" {
		return apperrors.ErrNoSession
	}
	return i.repo.Share(ctx, report.Raw, observerID)
}

func (i *Interactor) Feedback(ctx context.Context, input dto.FeedbackInput) error {
	if input.Report == nil {
		return apperrors.Validation("Please select year and month")
	}
	fb := domain.Feedback{
		ReportID: input.Report.ID,
		ParentID: input.ParentID,
		Text:     strings.TrimSpace(input.Text),
		Rating:   input.Rating,
	}
	if err := fb.Validate(); err != nil {
		return err
	}
	return i.repo.Feedback(ctx, fb)
}

func (i *Interactor) Export(_ context.Context, input dto.ExportInput) (string, error) {
	if input.Report == nil || input.Content == "" {
		return "", apperrors.Validation("No report to download")
	}
	dir := input.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, domain.FileName(*input.Report))
	if err := os.WriteFile(path, []byte(input.Content), 0o644); err != nil {
		return "", fmt.Errorf("write monthly report: %w", err)
	}
	i.log.WithField("path", path).Info("monthly report exported")
	return path, nil
}

func (i *Interactor) DefaultPeriod() dto.Period {
	return domain.DefaultPeriod(i.clock.Now())
}

func (i *Interactor) YearOptions() []int {
	return domain.YearOptions(i.clock.Now())
}

// fill defaults the period fields the service may omit.
func fill(r domain.Report, p domain.Period) domain.Report {
	if r.Year == 0 {
		r.Year = p.Year
	}
	if r.Month == 0 {
		r.Month = p.Month
	}
	if r.MonthName == "" {
		r.MonthName = domain.MonthName(r.Month)
	}
	return r
}

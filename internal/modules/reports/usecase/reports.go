package usecase

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"learnobs/internal/modules/reports/domain"
	"learnobs/internal/modules/reports/dto"
	reportsin "learnobs/internal/modules/reports/port/in"
	reportsout "learnobs/internal/modules/reports/port/out"
	"learnobs/internal/platform/clock"
	apperrors "learnobs/internal/platform/errors"
	"learnobs/internal/platform/markdown"
	"learnobs/internal/platform/slug"
)

type Interactor struct {
	repo   reportsout.Repository
	mailer reportsout.Mailer
	clock  clock.Clock
	log    logrus.FieldLogger
}

func NewInteractor(repo reportsout.Repository, mailer reportsout.Mailer, clk clock.Clock, log logrus.FieldLogger) reportsin.Usecase {
	if clk == nil {
		clk = clock.SystemClock{}
	}
	return &Interactor{repo: repo, mailer: mailer, clock: clk, log: log.WithField("component", "reports")}
}

func (i *Interactor) List(ctx context.Context, childID string) ([]dto.Preview, error) {
	if strings.TrimSpace(childID) == "" {
		return nil, apperrors.Validation("No child assigned to your account")
	}
	return i.repo.List(ctx, childID)
}

func (i *Interactor) Get(ctx context.Context, id string) (dto.Document, error) {
	if strings.TrimSpace(id) == "" {
		return dto.Document{}, fmt.Errorf("%w: report id is required", apperrors.ErrInvalidInput)
	}
	stored, err := i.repo.Get(ctx, id)
	if err != nil {
		return dto.Document{}, err
	}
	body := domain.ParseFullData(stored.FullData)
	return dto.Document{
		ID:           stored.ID,
		Date:         stored.Date,
		StudentName:  stored.StudentName,
		ObserverName: stored.ObserverName,
		Text:         body.Text,
		Transcript:   body.Transcript,
	}, nil
}

type exportMeta struct {
	Student  string `yaml:"student,omitempty"`
	Observer string `yaml:"observer,omitempty"`
	Date     string `yaml:"date,omitempty"`
	ReportID string `yaml:"report_id,omitempty"`
	Exported string `yaml:"exported"`
}

// Export writes the report as markdown with a YAML header and returns the
// written path.
func (i *Interactor) Export(_ context.Context, input dto.ExportInput) (string, error) {
	doc := input.Document
	if strings.TrimSpace(doc.Text) == "" {
		return "", apperrors.Validation("No report to download")
	}
	dir := input.Dir
	if dir == "" {
		dir = "."
	}
	now := i.clock.Now()
	meta := exportMeta{
		Student:  doc.StudentName,
		Observer: doc.ObserverName,
		Date:     doc.Date,
		ReportID: doc.ID,
		Exported: now.Format("2006-01-02T15:04:05Z07:00"),
	}
	content, err := markdown.RenderFrontmatter(meta, doc.Text)
	if err != nil {
		return "", fmt.Errorf("render export: %w", err)
	}
	name := "observation_report_" + now.Format("2006-01-02")
	if doc.StudentName != "" {
		name += "_" + slug.Make(doc.StudentName)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, name+".md")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	i.log.WithField("path", path).Info("report exported")
	return path, nil
}

func (i *Interactor) Open(_ context.Context, path string) (dto.Document, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return dto.Document{}, apperrors.Validation("Please choose a report file")
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return dto.Document{}, apperrors.Validation("Report file not found: " + path)
	}
	if err != nil {
		return dto.Document{}, fmt.Errorf("read report %s: %w", path, err)
	}
	var meta exportMeta
	body, err := markdown.SplitFrontmatter(string(raw), &meta)
	if err != nil {
		return dto.Document{}, apperrors.Validation("Not an exported report: " + filepath.Base(path))
	}
	body = strings.TrimRight(body, "\n")
	if strings.TrimSpace(body) == "" {
		return dto.Document{}, apperrors.Validation("The report file is empty")
	}
	return dto.Document{
		ID:           meta.ReportID,
		Date:         meta.Date,
		StudentName:  meta.Student,
		ObserverName: meta.Observer,
		Text:         body,
	}, nil
}

func (i *Interactor) Email(ctx context.Context, input dto.EmailInput) error {
	email := domain.Email{
		To:      strings.TrimSpace(input.To),
		Subject: strings.TrimSpace(input.Subject),
		Content: input.Content,
	}
	if err := email.Validate(); err != nil {
		return err
	}
	return i.mailer.Send(ctx, email)
}

func (i *Interactor) DefaultSubject() string {
	return domain.DefaultSubject(i.clock.Now())
}

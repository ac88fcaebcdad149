package usecase_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"

	"learnobs/internal/modules/reports/domain"
	"learnobs/internal/modules/reports/dto"
	reportsin "learnobs/internal/modules/reports/port/in"
	reportsout "learnobs/internal/modules/reports/port/out"
	"learnobs/internal/modules/reports/usecase"
	apperrors "learnobs/internal/platform/errors"
	"learnobs/internal/platform/markdown"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeRepo struct {
	stored reportsout.Stored
	calls  int
}

func (f *fakeRepo) List(context.Context, string) ([]dto.Preview, error) {
	f.calls++
	return []dto.Preview{{ID: "r1"}}, nil
}

func (f *fakeRepo) Get(context.Context, string) (reportsout.Stored, error) {
	f.calls++
	return f.stored, nil
}

type fakeMailer struct{ sent []domain.Email }

func (f *fakeMailer) Send(_ context.Context, e domain.Email) error {
	f.sent = append(f.sent, e)
	return nil
}

func newInteractor(repo *fakeRepo, mailer *fakeMailer) reportsin.Usecase {
	log, _ := test.NewNullLogger()
	return usecase.NewInteractor(repo, mailer, fixedClock{time.Date(2024, 3, 14, 9, 30, 0, 0, time.UTC)}, log)
}

func TestGetExtractsReportText(t *testing.T) {
	t.Parallel()
	repo := &fakeRepo{stored: reportsout.Stored{ID: "r1", StudentName: "Mia", FullData: `{"transcript":"t","report":"# R"}`}}
	uc := newInteractor(repo, &fakeMailer{})

	doc, err := uc.Get(context.Background(), "r1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if doc.Text != "# R" || doc.Transcript != "t" || doc.StudentName != "Mia" {
		t.Fatalf("unexpected document %+v", doc)
	}
	if _, err := uc.List(context.Background(), ""); apperrors.KindOf(err) != apperrors.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if repo.calls != 1 {
		t.Fatalf("expected one repository call, got %d", repo.calls)
	}
}

func TestExportWritesFrontmatter(t *testing.T) {
	t.Parallel()
	uc := newInteractor(&fakeRepo{}, &fakeMailer{})
	dir := t.TempDir()

	path, err := uc.Export(context.Background(), dto.ExportInput{
		Document: dto.Document{ID: "r1", StudentName: "Zoë Park", ObserverName: "Olive", Date: "2024-03-14", Text: "# Report\n\nGood day."},
		Dir:      dir,
	})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if filepath.Base(path) != "observation_report_2024-03-14_zoe_park.md" {
		t.Fatalf("unexpected export name %s", path)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	var meta map[string]string
	body, err := markdown.SplitFrontmatter(string(raw), &meta)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if meta["student"] != "Zoë Park" || meta["report_id"] != "r1" {
		t.Fatalf("unexpected meta %+v", meta)
	}
	if !strings.HasPrefix(body, "# Report") {
		t.Fatalf("unexpected body %q", body)
	}

	if _, err := uc.Export(context.Background(), dto.ExportInput{Dir: dir}); apperrors.UserMessage(err) != "No report to download" {
		t.Fatalf("expected empty report error, got %v", err)
	}
}

func TestEmailValidatesBeforeSending(t *testing.T) {
	t.Parallel()
	mailer := &fakeMailer{}
	uc := newInteractor(&fakeRepo{}, mailer)

	if err := uc.Email(context.Background(), dto.EmailInput{To: "p@x.io", Subject: " "}); apperrors.UserMessage(err) != "Please fill in all email fields" {
		t.Fatalf("expected incomplete email error, got %v", err)
	}
	if len(mailer.sent) != 0 {
		t.Fatalf("expected nothing sent")
	}
	if err := uc.Email(context.Background(), dto.EmailInput{To: " p@x.io ", Subject: uc.DefaultSubject(), Content: "# R"}); err != nil {
		t.Fatalf("email: %v", err)
	}
	if len(mailer.sent) != 1 || mailer.sent[0].To != "p@x.io" || mailer.sent[0].Subject != "Observation Report - 3/14/2024" {
		t.Fatalf("unexpected sent %+v", mailer.sent)
	}
}

func TestOpenReadsBackAnExport(t *testing.T) {
	t.Parallel()
	uc := newInteractor(&fakeRepo{}, &fakeMailer{})
	doc := dto.Document{ID: "r7", StudentName: "Ava", ObserverName: "Olive", Date: "2024-03-14", Text: "# Report\n\nAva counted to ten."}
	path, err := uc.Export(context.Background(), dto.ExportInput{Document: doc, Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	got, err := uc.Open(context.Background(), path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if got != doc {
		t.Fatalf("round trip = %+v, want %+v", got, doc)
	}
}

func TestOpenRejectsMissingAndForeignFiles(t *testing.T) {
	t.Parallel()
	uc := newInteractor(&fakeRepo{}, &fakeMailer{})
	dir := t.TempDir()

	_, err := uc.Open(context.Background(), filepath.Join(dir, "nope.md"))
	if apperrors.KindOf(err) != apperrors.KindValidation {
		t.Fatalf("missing file err = %v", err)
	}

	broken := filepath.Join(dir, "broken.md")
	if err := os.WriteFile(broken, []byte("---\nstudent: Ava\nno closing line"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := uc.Open(context.Background(), broken); apperrors.KindOf(err) != apperrors.KindValidation {
		t.Fatalf("broken frontmatter err = %v", err)
	}

	plain := filepath.Join(dir, "notes.md")
	if err := os.WriteFile(plain, []byte("Plain notes\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := uc.Open(context.Background(), plain)
	if err != nil || got.Text != "Plain notes" {
		t.Fatalf("plain file = %+v, %v", got, err)
	}
}

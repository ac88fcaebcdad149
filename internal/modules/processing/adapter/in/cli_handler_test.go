package in_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"

	processinghandler "learnobs/internal/modules/processing/adapter/in"
	"learnobs/internal/modules/processing/domain"
	"learnobs/internal/modules/processing/dto"
	"learnobs/internal/modules/processing/usecase"
	apperrors "learnobs/internal/platform/errors"
)

type stubProcessor struct{ jobs []domain.Job }

func (s *stubProcessor) Process(_ context.Context, job domain.Job) (domain.Result, error) {
	s.jobs = append(s.jobs, job)
	return domain.Result{Report: "# Report", Transcript: "spoken"}, nil
}

func TestProcessFile(t *testing.T) {
	t.Parallel()
	proc := &stubProcessor{}
	log, _ := test.NewNullLogger()
	h := processinghandler.NewCLIHandler(usecase.NewInteractor(proc, log))

	path := filepath.Join(t.TempDir(), "clip.mp3")
	if err := os.WriteFile(path, []byte("ID3 audio bytes"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	info := dto.SessionInfo{StudentName: "Mia", ObserverName: "Olive", Date: "2024-03-14", Start: "09:00", End: "10:00", StudentID: "c1"}

	if _, err := h.ProcessFile(context.Background(), path, dto.KindAudio, dto.SessionInfo{}, dto.Target{ObserverID: "o1"}); apperrors.KindOf(err) != apperrors.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	report, err := h.ProcessFile(context.Background(), path, dto.KindAudio, info, dto.Target{ObserverID: "o1"})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if report.Text != "# Report" || report.Transcript != "spoken" {
		t.Fatalf("unexpected report %+v", report)
	}
	if len(proc.jobs) != 1 || proc.jobs[0].Info.StudentID != "c1" {
		t.Fatalf("unexpected jobs %+v", proc.jobs)
	}
}

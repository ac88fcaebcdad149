package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"learnobs/internal/modules/processing/domain"
	"learnobs/internal/modules/processing/dto"
	processingin "learnobs/internal/modules/processing/port/in"
	processingout "learnobs/internal/modules/processing/port/out"
	apperrors "learnobs/internal/platform/errors"
	"learnobs/internal/platform/validate"
)

const sniffLen = 512

type Interactor struct {
	wf   *domain.Workflow
	proc processingout.Processor
	log  logrus.FieldLogger
}

func NewInteractor(proc processingout.Processor, log logrus.FieldLogger) processingin.Usecase {
	return &Interactor{wf: domain.NewWorkflow(), proc: proc, log: log.WithField("component", "processing")}
}

// StageFile identifies and checks the file before reading it whole, so an
// oversized or wrong-type file is rejected cheaply.
func (i *Interactor) StageFile(path string, kind dto.Kind) (dto.Artifact, error) {
	policy, err := kind.Policy()
	if err != nil {
		return dto.Artifact{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return dto.Artifact{}, apperrors.Validation(fmt.Sprintf("Cannot open %s", filepath.Base(path)))
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil || info.IsDir() {
		return dto.Artifact{}, apperrors.Validation(fmt.Sprintf("Cannot open %s", filepath.Base(path)))
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return dto.Artifact{}, apperrors.Validation(fmt.Sprintf("Cannot read %s", filepath.Base(path)))
	}
	head = head[:n]
	contentType := validate.ContentType(path, head)
	if err := policy.Check(contentType, info.Size()); err != nil {
		return dto.Artifact{}, err
	}

	rest, err := io.ReadAll(f)
	if err != nil {
		return dto.Artifact{}, apperrors.Validation(fmt.Sprintf("Cannot read %s", filepath.Base(path)))
	}
	data := append(head, rest...)
	if kind == domain.KindImage {
		// the full buffer decodes more reliably than the head alone
		contentType = validate.ContentType(path, data)
	}
	artifact := dto.Artifact{Kind: kind, Name: filepath.Base(path), ContentType: contentType, Size: int64(len(data)), Data: data}
	if err := i.wf.Stage(artifact); err != nil {
		return dto.Artifact{}, err
	}
	i.log.WithFields(logrus.Fields{"kind": kind, "name": artifact.Name, "size": artifact.Size}).Debug("artifact staged")
	return artifact, nil
}

func (i *Interactor) Stage(artifact dto.Artifact) error {
	return i.wf.Stage(artifact)
}

func (i *Interactor) Unstage(kind dto.Kind) {
	i.wf.Unstage(kind)
}

func (i *Interactor) SetSessionInfo(info dto.SessionInfo) {
	i.wf.SetSessionInfo(info)
}

func (i *Interactor) SetTarget(target dto.Target) {
	i.wf.SetTarget(target)
}

func (i *Interactor) Snapshot() dto.Snapshot {
	snap := dto.Snapshot{State: i.wf.State(), InFlight: i.wf.InFlight(), Info: i.wf.Info()}
	if a, ok := i.wf.Staged(domain.KindImage); ok {
		snap.Image = &a
	}
	if a, ok := i.wf.Staged(domain.KindAudio); ok {
		snap.Audio = &a
	}
	if r, ok := i.wf.Report(); ok {
		snap.Report = &r
	}
	return snap
}

func (i *Interactor) BeginSubmit(kind dto.Kind) (dto.Job, error) {
	if i.wf.Target().ObserverID == "" {
		return dto.Job{}, apperrors.Validation("Please select an observer")
	}
	return i.wf.BeginSubmit(kind)
}

func (i *Interactor) BeginRegenerate(transcript string) (dto.Job, error) {
	return i.wf.BeginRegenerate(transcript)
}

// Run performs the network call only; it never touches workflow state.
func (i *Interactor) Run(ctx context.Context, job dto.Job) (dto.Result, error) {
	res, err := i.proc.Process(ctx, job)
	if err != nil {
		return dto.Result{}, err
	}
	if res.Report == "" {
		return dto.Result{}, apperrors.Application("The service returned an empty report")
	}
	return res, nil
}

func (i *Interactor) Finish(job dto.Job, result dto.Result, runErr error) error {
	entry := i.log.WithFields(logrus.Fields{"seq": job.Seq, "kind": job.Kind, "admin": job.Target.Admin})
	var err error
	switch job.Op {
	case domain.OpSubmit:
		if runErr != nil {
			err = i.wf.FailSubmit(job)
		} else {
			err = i.wf.CompleteSubmit(job, result)
		}
	case domain.OpRegenerate:
		if runErr != nil {
			err = i.wf.FailRegenerate(job)
		} else {
			err = i.wf.CompleteRegenerate(job, result)
		}
	default:
		return fmt.Errorf("%w: unknown job op %d", apperrors.ErrInvalidInput, job.Op)
	}
	if err != nil {
		entry.WithError(err).Debug("discard job result")
		return err
	}
	if runErr != nil {
		entry.WithError(runErr).Info("processing failed")
		return runErr
	}
	entry.Debug("processing complete")
	return nil
}

func (i *Interactor) Submit(ctx context.Context, kind dto.Kind) (dto.Report, error) {
	job, err := i.BeginSubmit(kind)
	if err != nil {
		return dto.Report{}, err
	}
	return i.complete(ctx, job)
}

func (i *Interactor) Regenerate(ctx context.Context, transcript string) (dto.Report, error) {
	job, err := i.BeginRegenerate(transcript)
	if err != nil {
		return dto.Report{}, err
	}
	return i.complete(ctx, job)
}

func (i *Interactor) Reset() {
	i.wf.Reset()
}

func (i *Interactor) complete(ctx context.Context, job dto.Job) (dto.Report, error) {
	res, runErr := i.Run(ctx, job)
	if err := i.Finish(job, res, runErr); err != nil {
		return dto.Report{}, err
	}
	report, _ := i.wf.Report()
	return report, nil
}

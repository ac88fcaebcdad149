package in

import (
	"context"

	"learnobs/internal/modules/processing/dto"
)

// Usecase drives one upload/processing workflow. Begin*, Run and Finish
// are split so state transitions stay on the caller's goroutine while only
// Run blocks on the network.
type Usecase interface {
	StageFile(path string, kind dto.Kind) (dto.Artifact, error)
	Stage(artifact dto.Artifact) error
	Unstage(kind dto.Kind)
	SetSessionInfo(info dto.SessionInfo)
	SetTarget(target dto.Target)
	Snapshot() dto.Snapshot

	BeginSubmit(kind dto.Kind) (dto.Job, error)
	BeginRegenerate(transcript string) (dto.Job, error)
	Run(ctx context.Context, job dto.Job) (dto.Result, error)
	Finish(job dto.Job, result dto.Result, runErr error) error

	Submit(ctx context.Context, kind dto.Kind) (dto.Report, error)
	Regenerate(ctx context.Context, transcript string) (dto.Report, error)
	Reset()
}

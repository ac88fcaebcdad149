package out

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"learnobs/internal/modules/processing/domain"
	processingout "learnobs/internal/modules/processing/port/out"
	apperrors "learnobs/internal/platform/errors"
	"learnobs/internal/platform/gateway"
)

type HTTPProcessor struct {
	api gateway.Caller
}

func NewHTTPProcessor(api gateway.Caller) processingout.Processor {
	return &HTTPProcessor{api: api}
}

func (p *HTTPProcessor) Process(ctx context.Context, job domain.Job) (domain.Result, error) {
	switch job.Op {
	case domain.OpSubmit:
		return p.submit(ctx, job)
	case domain.OpRegenerate:
		return p.regenerate(ctx, job)
	default:
		return domain.Result{}, fmt.Errorf("%w: unknown job op %d", apperrors.ErrInvalidInput, job.Op)
	}
}

func (p *HTTPProcessor) submit(ctx context.Context, job domain.Job) (domain.Result, error) {
	info, err := json.Marshal(job.Info)
	if err != nil {
		return domain.Result{}, fmt.Errorf("encode session info: %w", err)
	}
	endpoint := "process-" + string(job.Kind)
	if job.Target.Admin {
		endpoint = "admin/" + endpoint
	}
	payload := gateway.Multipart{
		Fields: map[string]string{
			"child_id":     job.Info.StudentID,
			"observer_id":  job.Target.ObserverID,
			"session_info": string(info),
		},
		Files: []gateway.File{{
			Field:       string(job.Kind),
			Name:        job.Artifact.Name,
			ContentType: job.Artifact.ContentType,
			Data:        job.Artifact.Data,
		}},
	}
	env, err := p.api.Call(ctx, http.MethodPost, endpoint, payload)
	if err != nil {
		return domain.Result{}, err
	}
	return domain.Result{
		Report:     env.Get("report").String(),
		Transcript: env.Get("transcript").String(),
	}, nil
}

func (p *HTTPProcessor) regenerate(ctx context.Context, job domain.Job) (domain.Result, error) {
	payload := struct {
		Transcript  string             `json:"transcript"`
		SessionInfo domain.SessionInfo `json:"session_info"`
		ChildID     string             `json:"child_id"`
		ObserverID  string             `json:"observer_id"`
	}{job.Transcript, job.Info, job.Info.StudentID, job.Target.ObserverID}
	env, err := p.api.Call(ctx, http.MethodPost, "regenerate-report", payload)
	if err != nil {
		return domain.Result{}, err
	}
	return domain.Result{Report: env.Get("report").String()}, nil
}

package out

import (
	"context"
	"math"
	"net/http"

	"learnobs/internal/modules/goals/domain"
	goalsout "learnobs/internal/modules/goals/port/out"
	"learnobs/internal/platform/gateway"
)

type HTTPGoals struct {
	api gateway.Caller
}

func NewHTTPGoals(api gateway.Caller) goalsout.Repository {
	return &HTTPGoals{api: api}
}

type goalWire struct {
	ID          gateway.ID `json:"id"`
	ChildID     gateway.ID `json:"child_id"`
	ChildName   string     `json:"child_name"`
	Description string     `json:"description"`
	TargetDate  string     `json:"target_date"`
	Status      string     `json:"status"`
	Progress    *float64   `json:"progress"`
}

func (g goalWire) toDomain() domain.Goal {
	goal := domain.Goal{
		ID:          g.ID.String(),
		ChildID:     g.ChildID.String(),
		ChildName:   g.ChildName,
		Description: g.Description,
		TargetDate:  g.TargetDate,
		Status:      g.Status,
	}
	if g.Progress != nil {
		goal.Progress = int(math.Round(*g.Progress))
	}
	return goal
}

func (r *HTTPGoals) Create(ctx context.Context, d domain.Draft) error {
	payload := map[string]string{
		"child_id":    d.ChildID,
		"target_date": d.TargetDate,
		"description": d.Description,
		"observer_id": d.ObserverID,
	}
	_, err := r.api.Call(ctx, http.MethodPost, "goals", payload)
	return err
}

func (r *HTTPGoals) List(ctx context.Context, filter goalsout.Filter) ([]domain.Goal, error) {
	endpoint := gateway.Path("goals", map[string]string{"observer_id": filter.ObserverID, "child_id": filter.ChildID})
	env, err := r.api.Call(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Goals []goalWire `json:"goals"`
	}
	if err := env.Decode(&resp); err != nil {
		return nil, err
	}
	out := make([]domain.Goal, 0, len(resp.Goals))
	for _, g := range resp.Goals {
		out = append(out, g.toDomain())
	}
	return out, nil
}

func (r *HTTPGoals) Delete(ctx context.Context, id string) error {
	_, err := r.api.Call(ctx, http.MethodDelete, gateway.Segment("goals", id), nil)
	return err
}

func (r *HTTPGoals) Complete(ctx context.Context, id string) error {
	_, err := r.api.Call(ctx, http.MethodPost, gateway.Segment("goals", id)+"/complete", nil)
	return err
}

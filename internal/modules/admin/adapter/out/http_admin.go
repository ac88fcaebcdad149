package out

import (
	"context"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	"learnobs/internal/modules/admin/domain"
	adminout "learnobs/internal/modules/admin/port/out"
	"learnobs/internal/platform/gateway"
)

type HTTPAdmin struct {
	api gateway.Caller
}

func NewHTTPAdmin(api gateway.Caller) adminout.Repository {
	return &HTTPAdmin{api: api}
}

func (r *HTTPAdmin) Stats(ctx context.Context) (domain.Stats, error) {
	env, err := r.api.Call(ctx, http.MethodGet, "admin/stats", nil)
	if err != nil {
		return domain.Stats{}, err
	}
	s := env.Get("stats")
	return domain.Stats{
		TotalUsers:      s.Get("total_users").String(),
		TotalChildren:   s.Get("total_children").String(),
		TotalReports:    s.Get("total_reports").String(),
		ActiveObservers: s.Get("active_observers").String(),
	}, nil
}

func (r *HTTPAdmin) Users(ctx context.Context) ([]domain.User, error) {
	env, err := r.api.Call(ctx, http.MethodGet, "admin/users", nil)
	if err != nil {
		return nil, err
	}
	var out []domain.User
	env.Get("users").ForEach(func(_, u gjson.Result) bool {
		out = append(out, domain.User{
			ID:        u.Get("id").String(),
			Name:      u.Get("name").String(),
			Email:     u.Get("email").String(),
			Role:      u.Get("role").String(),
			CreatedAt: u.Get("created_at").String(),
		})
		return true
	})
	return out, nil
}

func (r *HTTPAdmin) DeleteUser(ctx context.Context, id string) error {
	_, err := r.api.Call(ctx, http.MethodDelete, gateway.Segment("admin/users", id), nil)
	return err
}

func (r *HTTPAdmin) Mappings(ctx context.Context) ([]domain.Mapping, error) {
	env, err := r.api.Call(ctx, http.MethodGet, "admin/observer-mappings", nil)
	if err != nil {
		return nil, err
	}
	var out []domain.Mapping
	env.Get("mappings").ForEach(func(_, m gjson.Result) bool {
		out = append(out, domain.Mapping{
			ID:           m.Get("id").String(),
			ObserverID:   m.Get("observer_id").String(),
			ObserverName: m.Get("observer_name").String(),
			ChildID:      m.Get("child_id").String(),
			ChildName:    m.Get("child_name").String(),
		})
		return true
	})
	return out, nil
}

func (r *HTTPAdmin) AddMapping(ctx context.Context, m domain.Mapping) error {
	payload := map[string]string{"observer_id": m.ObserverID, "child_id": m.ChildID}
	_, err := r.api.Call(ctx, http.MethodPost, "admin/observer-mappings", payload)
	return err
}

func (r *HTTPAdmin) RemoveMapping(ctx context.Context, id string) error {
	_, err := r.api.Call(ctx, http.MethodDelete, gateway.Segment("admin/observer-mappings", id), nil)
	return err
}

func (r *HTTPAdmin) ActivityLogs(ctx context.Context) ([]domain.ActivityLog, error) {
	env, err := r.api.Call(ctx, http.MethodGet, "admin/activity-logs", nil)
	if err != nil {
		return nil, err
	}
	var out []domain.ActivityLog
	env.Get("logs").ForEach(func(_, l gjson.Result) bool {
		out = append(out, domain.ActivityLog{
			Action:    l.Get("action").String(),
			Timestamp: l.Get("timestamp").String(),
			UserName:  l.Get("user_name").String(),
			Details:   l.Get("details").String(),
		})
		return true
	})
	return out, nil
}

func (r *HTTPAdmin) BulkUpload(ctx context.Context, kind domain.BulkKind, file domain.CSV) (int, error) {
	payload := gateway.Multipart{Files: []gateway.File{{
		Field:       "csv_file",
		Name:        file.Name,
		ContentType: "text/csv",
		Data:        file.Data,
	}}}
	env, err := r.api.Call(ctx, http.MethodPost, "admin/bulk-upload/"+strings.TrimSpace(string(kind)), payload)
	if err != nil {
		return 0, err
	}
	return int(env.Get("count").Int()), nil
}

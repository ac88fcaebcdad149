package out

import (
	"context"
	"net/http"

	"github.com/tidwall/gjson"

	"learnobs/internal/modules/reports/domain"
	"learnobs/internal/modules/reports/dto"
	reportsout "learnobs/internal/modules/reports/port/out"
	"learnobs/internal/platform/gateway"
)

type HTTPReports struct {
	api gateway.Caller
}

func NewHTTPReports(api gateway.Caller) *HTTPReports {
	return &HTTPReports{api: api}
}

var (
	_ reportsout.Repository = (*HTTPReports)(nil)
	_ reportsout.Mailer     = (*HTTPReports)(nil)
)

type previewWire struct {
	ID           gateway.ID `json:"id"`
	Date         string     `json:"date"`
	ObserverName string     `json:"observer_name"`
	Observations string     `json:"observations"`
}

func (r *HTTPReports) List(ctx context.Context, childID string) ([]dto.Preview, error) {
	env, err := r.api.Call(ctx, http.MethodGet, gateway.Path("reports", map[string]string{"child_id": childID}), nil)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Reports []previewWire `json:"reports"`
	}
	if err := env.Decode(&resp); err != nil {
		return nil, err
	}
	out := make([]dto.Preview, 0, len(resp.Reports))
	for _, p := range resp.Reports {
		out = append(out, dto.Preview{ID: p.ID.String(), Date: p.Date, ObserverName: p.ObserverName, Observations: p.Observations})
	}
	return out, nil
}

func (r *HTTPReports) Get(ctx context.Context, id string) (reportsout.Stored, error) {
	env, err := r.api.Call(ctx, http.MethodGet, gateway.Segment("reports", id), nil)
	if err != nil {
		return reportsout.Stored{}, err
	}
	report := env.Get("report")
	full := report.Get("full_data")
	data := full.Raw
	if full.Type == gjson.String {
		data = full.Str
	}
	stored := reportsout.Stored{
		ID:           report.Get("id").String(),
		Date:         report.Get("date").String(),
		StudentName:  report.Get("student_name").String(),
		ObserverName: report.Get("observer_name").String(),
		FullData:     data,
	}
	if stored.ID == "" {
		stored.ID = id
	}
	return stored, nil
}

func (r *HTTPReports) Send(ctx context.Context, email domain.Email) error {
	payload := map[string]string{
		"email":   email.To,
		"subject": email.Subject,
		"content": email.Content,
	}
	_, err := r.api.Call(ctx, http.MethodPost, "send-email", payload)
	return err
}

package out

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/tidwall/gjson"

	"learnobs/internal/modules/monthly/domain"
	monthlyout "learnobs/internal/modules/monthly/port/out"
	"learnobs/internal/platform/gateway"
)

type HTTPMonthly struct {
	api gateway.Caller
}

func NewHTTPMonthly(api gateway.Caller) monthlyout.Repository {
	return &HTTPMonthly{api: api}
}

func (r *HTTPMonthly) Generate(ctx context.Context, req domain.Generate) (domain.Report, error) {
	payload := struct {
		ChildID    string `json:"child_id"`
		Year       int    `json:"year"`
		Month      int    `json:"month"`
		ObserverID string `json:"observer_id"`
	}{req.ChildID, req.Period.Year, req.Period.Month, req.ObserverID}
	env, err := r.api.Call(ctx, http.MethodPost, "monthly-report", payload)
	if err != nil {
		return domain.Report{}, err
	}
	return parseReport(env.Get("report")), nil
}

func (r *HTTPMonthly) Fetch(ctx context.Context, req domain.Fetch) (domain.Report, error) {
	endpoint := gateway.Path("monthly-report", map[string]string{
		"child_id": req.ChildID,
		"year":     strconv.Itoa(req.Period.Year),
		"month":    strconv.Itoa(req.Period.Month),
	})
	env, err := r.api.Call(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.Report{}, err
	}
	return parseReport(env.Get("report")), nil
}

func (r *HTTPMonthly) Share(ctx context.Context, raw string, observerID string) error {
	payload := struct {
		ReportData json.RawMessage `json:"report_data"`
		ObserverID string          `json:"observer_id"`
	}{json.RawMessage(raw), observerID}
	_, err := r.api.Call(ctx, http.MethodPost, "share-monthly-report", payload)
	return err
}

func (r *HTTPMonthly) Feedback(ctx context.Context, fb domain.Feedback) error {
	payload := struct {
		ReportID string `json:"report_id"`
		ParentID string `json:"parent_id"`
		Feedback string `json:"feedback"`
		Rating   int    `json:"rating"`
	}{fb.ReportID, fb.ParentID, fb.Text, fb.Rating}
	_, err := r.api.Call(ctx, http.MethodPost, "monthly-feedback", payload)
	return err
}

func parseReport(doc gjson.Result) domain.Report {
	return domain.Report{
		ID:                  doc.Get("id").String(),
		Year:                int(doc.Get("year").Int()),
		Month:               int(doc.Get("month").Int()),
		MonthName:           doc.Get("month_name").String(),
		StudentName:         doc.Get("student_name").String(),
		ObserverName:        doc.Get("observer_name").String(),
		TotalObservations:   doc.Get("total_observations").String(),
		AverageRating:       doc.Get("average_rating").String(),
		KeyStrengths:        stringList(doc.Get("key_strengths")),
		AreasForDevelopment: stringList(doc.Get("areas_for_development")),
		Narrative:           doc.Get("narrative").String(),
		Progress:            series(doc.Get("progress_data.dates"), doc.Get("progress_data.scores")),
		Skills:              series(doc.Get("skills_data.skills"), doc.Get("skills_data.levels")),
		Raw:                 doc.Raw,
	}
}

func stringList(list gjson.Result) []string {
	var out []string
	list.ForEach(func(_, v gjson.Result) bool {
		out = append(out, v.String())
		return true
	})
	return out
}

// series keeps values only when every element is numeric.
func series(labels, values gjson.Result) domain.Series {
	s := domain.Series{Labels: stringList(labels)}
	if !values.IsArray() {
		return s
	}
	nums := []float64{}
	numeric := true
	values.ForEach(func(_, v gjson.Result) bool {
		if v.Type != gjson.Number {
			numeric = false
			return false
		}
		nums = append(nums, v.Num)
		return true
	})
	if numeric {
		s.Values = nums
	}
	return s
}

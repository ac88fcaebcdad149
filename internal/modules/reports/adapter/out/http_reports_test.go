package out_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	reportsout "learnobs/internal/modules/reports/adapter/out"
	"learnobs/internal/modules/reports/domain"
	"learnobs/internal/modules/reports/dto"
	apperrors "learnobs/internal/platform/errors"
	"learnobs/internal/platform/gateway"
)

func TestHTTPReports(t *testing.T) {
	t.Parallel()
	var mail map[string]string
	r := mux.NewRouter()
	r.HandleFunc("/api/reports", func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "c1", req.URL.Query().Get("child_id"))
		_, _ = w.Write([]byte(`{"success":true,"reports":[{"id":3,"date":"2024-03-14","observer_name":"Olive","observations":"Played"}]}`))
	}).Methods(http.MethodGet)
	r.HandleFunc("/api/reports/{id}", func(w http.ResponseWriter, req *http.Request) {
		switch mux.Vars(req)["id"] {
		case "3":
			_, _ = w.Write([]byte(`{"success":true,"report":{"id":3,"date":"2024-03-14","student_name":"Mia","full_data":"{\"report\":\"# R\"}"}}`))
		case "4":
			_, _ = w.Write([]byte(`{"success":true,"report":{"full_data":{"report":"# Inline"}}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"success":false,"message":"Report not found"}`))
		}
	}).Methods(http.MethodGet)
	r.HandleFunc("/api/send-email", func(w http.ResponseWriter, req *http.Request) {
		require.NoError(t, json.NewDecoder(req.Body).Decode(&mail))
		_, _ = w.Write([]byte(`{"success":true,"message":"Email sent"}`))
	}).Methods(http.MethodPost)
	srv := httptest.NewServer(r)
	defer srv.Close()

	log, _ := test.NewNullLogger()
	adapter := reportsout.NewHTTPReports(gateway.New(srv.URL+"/api", srv.Client(), log))
	ctx := context.Background()

	previews, err := adapter.List(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, []dto.Preview{{ID: "3", Date: "2024-03-14", ObserverName: "Olive", Observations: "Played"}}, previews)

	stored, err := adapter.Get(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, "3", stored.ID)
	assert.Equal(t, "Mia", stored.StudentName)
	assert.Equal(t, `{"report":"# R"}`, stored.FullData)

	stored, err = adapter.Get(ctx, "4")
	require.NoError(t, err)
	assert.Equal(t, "4", stored.ID)
	assert.Equal(t, "# Inline", domain.ParseFullData(stored.FullData).Text)

	_, err = adapter.Get(ctx, "9")
	assert.Equal(t, "Report not found", apperrors.UserMessage(err))

	require.NoError(t, adapter.Send(ctx, domain.Email{To: "p@x.io", Subject: "S", Content: "C"}))
	assert.Equal(t, map[string]string{"email": "p@x.io", "subject": "S", "content": "C"}, mail)
}

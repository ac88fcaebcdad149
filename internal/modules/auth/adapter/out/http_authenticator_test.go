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

	authout "learnobs/internal/modules/auth/adapter/out"
	"learnobs/internal/modules/auth/domain"
	apperrors "learnobs/internal/platform/errors"
	"learnobs/internal/platform/gateway"
)

func TestHTTPAuthenticator(t *testing.T) {
	t.Parallel()
	var registered map[string]string
	r := mux.NewRouter()
	r.HandleFunc("/api/login", func(w http.ResponseWriter, req *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(req.Body).Decode(&body)
		if body["password"] != "validpass1" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"success":false,"message":"Invalid email or password"}`))
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"user":{"id":"admin","name":"Admin","role":"Admin","email":"admin","child_id":null}}`))
	}).Methods(http.MethodPost)
	r.HandleFunc("/api/register", func(w http.ResponseWriter, req *http.Request) {
		_ = json.NewDecoder(req.Body).Decode(&registered)
		_, _ = w.Write([]byte(`{"success":true,"message":"Account created successfully"}`))
	}).Methods(http.MethodPost)
	srv := httptest.NewServer(r)
	defer srv.Close()

	log, _ := test.NewNullLogger()
	auth := authout.NewHTTPAuthenticator(gateway.New(srv.URL+"/api", srv.Client(), log))

	user, err := auth.Login(context.Background(), "admin", "validpass1")
	require.NoError(t, err)
	assert.Equal(t, domain.User{ID: "admin", Name: "Admin", Role: "Admin", Email: "admin"}, user)

	_, err = auth.Login(context.Background(), "admin", "wrong")
	assert.Equal(t, "Invalid email or password", apperrors.UserMessage(err))

	require.NoError(t, auth.Register(context.Background(), domain.Registration{Name: "Pat", Email: "pat@example.com", Role: "Parent", Password: "validpass1", ChildID: "c1"}))
	assert.Equal(t, "c1", registered["child_id"])
	assert.Equal(t, "Parent", registered["role"])
}

package out_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	directoryout "learnobs/internal/modules/directory/adapter/out"
	"learnobs/internal/modules/directory/dto"
	"learnobs/internal/platform/gateway"
)

func TestHTTPDirectory(t *testing.T) {
	t.Parallel()
	r := mux.NewRouter()
	write := func(body string) http.HandlerFunc {
		return func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte(body)) }
	}
	r.HandleFunc("/api/children", write(`{"success":true,"children":[{"id":"c1","name":"Mia","age":5},{"id":"c2","name":""}]}`))
	r.HandleFunc("/api/children/{id}", func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"child":{"id":"` + mux.Vars(req)["id"] + `","name":"Mia","grade":"K","observer_name":"Olive"}}`))
	})
	r.HandleFunc("/api/observer/children", func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Query().Get("observer_id") != "o1" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"success":false,"message":"Observer ID is required"}`))
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"children":[]}`))
	})
	r.HandleFunc("/api/parents", write(`{"success":true,"parents":[{"id":7,"name":"Pat","child_name":"Mia"}]}`))
	r.HandleFunc("/api/admin/observers", write(`{"success":true,"observers":[{"id":"o1","name":"Olive"}]}`))
	r.HandleFunc("/api/admin/children", write(`{"success":true,"children":[{"id":"c1","name":"Mia"}]}`))
	srv := httptest.NewServer(r)
	defer srv.Close()

	log, _ := test.NewNullLogger()
	dir := directoryout.NewHTTPDirectory(gateway.New(srv.URL+"/api", srv.Client(), log))
	ctx := context.Background()

	children, err := dir.Children(ctx)
	require.NoError(t, err)
	assert.Equal(t, []dto.Child{{ID: "c1", Name: "Mia", Age: "5"}, {ID: "c2"}}, children)

	child, err := dir.Child(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, dto.Child{ID: "c1", Name: "Mia", Grade: "K", ObserverName: "Olive"}, child)

	assigned, err := dir.ObserverChildren(ctx, "o1")
	require.NoError(t, err)
	assert.Empty(t, assigned)

	parents, err := dir.Parents(ctx)
	require.NoError(t, err)
	assert.Equal(t, []dto.Parent{{ID: "7", Name: "Pat", ChildName: "Mia"}}, parents)

	observers, err := dir.AdminObservers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []dto.Observer{{ID: "o1", Name: "Olive"}}, observers)

	all, err := dir.AdminChildren(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

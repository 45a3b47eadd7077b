package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchNiveaus(t *testing.T) {
	t.Run("Should send the sort and decode the list", func(t *testing.T) {
		gotSort := make(chan string, 1)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/niveaus", r.URL.Path)
			gotSort <- r.URL.Query().Get("sort")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"id":2,"classe":"B","tp":"x","td":"y","semestre":{"id":4}},{"id":1,"classe":"A","tp":"x","td":"y"}]`))
		}))
		defer srv.Close()

		list, err := New(srv.URL, time.Second).FetchNiveaus(context.Background(), "classe,desc")

		require.NoError(t, err)
		assert.Equal(t, "classe,desc", <-gotSort)
		require.Len(t, list, 2)
		assert.Equal(t, int64(4), list[0].SemestreID())
		assert.Equal(t, "A", list[1].Classe)
	})

	t.Run("Should return empty slice for empty body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[]`))
		}))
		defer srv.Close()

		list, err := New(srv.URL, time.Second).FetchNiveaus(context.Background(), "id,asc")
		require.NoError(t, err)
		assert.NotNil(t, list)
		assert.Empty(t, list)
	})

	t.Run("Should surface API errors", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"Invalid sort parameter"}`))
		}))
		defer srv.Close()

		_, err := New(srv.URL, time.Second).FetchNiveaus(context.Background(), "name,asc")

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadRequest, apiErr.Status)
		assert.Contains(t, err.Error(), "Invalid sort parameter")
	})
}

func TestFetchNiveau(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path != "/api/niveaus/7" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"Niveau not found"}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":7,"classe":"LSI1","tp":"TP1","td":"TD1"}`))
	}))
	defer srv.Close()
	c := New(srv.URL, time.Second)

	n, err := c.FetchNiveau(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, "LSI1", n.Classe)

	missing, err := c.FetchNiveau(context.Background(), 8)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

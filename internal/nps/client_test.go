package nps_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/excursions-app/backend/internal/domain"
	"github.com/excursions-app/backend/internal/nps"
)

func TestClientGet(t *testing.T) {
	ctx := context.Background()

	t.Run("forwards the query and appends the api key", func(t *testing.T) {
		var gotPath string
		var gotQuery url.Values
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotQuery = r.URL.Query()
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"total":"1"}`))
		}))
		defer upstream.Close()

		client := nps.New(upstream.URL, "secret-key")
		result, err := client.Get(ctx, "parks", url.Values{"limit": {"5"}, "parkCode": {"grca"}})

		require.NoError(t, err)
		assert.Equal(t, "/parks", gotPath)
		assert.Equal(t, "5", gotQuery.Get("limit"))
		assert.Equal(t, "grca", gotQuery.Get("parkCode"))
		assert.Equal(t, "secret-key", gotQuery.Get("api_key"))
		assert.Equal(t, http.StatusOK, result.StatusCode)
		assert.Equal(t, "application/json", result.ContentType)
		assert.JSONEq(t, `{"total":"1"}`, string(result.Body))
	})

	t.Run("relays a 4xx without error", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"error":"API_KEY_INVALID"}`))
		}))
		defer upstream.Close()

		client := nps.New(upstream.URL, "bad-key")
		result, err := client.Get(ctx, "parks", nil)

		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, result.StatusCode)
		assert.Contains(t, string(result.Body), "API_KEY_INVALID")
	})

	t.Run("upstream 5xx is an upstream error", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer upstream.Close()

		client := nps.New(upstream.URL, "key")
		_, err := client.Get(ctx, "parks", nil)
		assert.ErrorIs(t, err, domain.ErrUpstream)
	})

	t.Run("unreachable upstream is an upstream error", func(t *testing.T) {
		client := nps.New("http://127.0.0.1:1", "key")
		_, err := client.Get(ctx, "parks", nil)
		assert.ErrorIs(t, err, domain.ErrUpstream)
	})
}

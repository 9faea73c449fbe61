package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(baseURL string) *PilotageClient {
	return &PilotageClient{
		BaseURL:    baseURL,
		HTTPClient: http.DefaultClient,
		Logger:     zap.NewNop(),
	}
}

func TestPilotageClient_CheckHabilitation(t *testing.T) {
	t.Run("forwards token and query parameters", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/check-habilitation", r.URL.Path)
			assert.Equal(t, "SU 1", r.URL.Query().Get("id"))
			assert.Equal(t, "interviewer", r.URL.Query().Get("role"))
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			w.Write([]byte(`{"habilitated":true}`))
		}))
		defer srv.Close()

		ok, err := newTestClient(srv.URL).CheckHabilitation(context.Background(), "tok", "SU 1", "interviewer")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("empty token sends no authorization header", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.Header.Get("Authorization"))
			w.Write([]byte(`{"habilitated":false}`))
		}))
		defer srv.Close()

		ok, err := newTestClient(srv.URL).CheckHabilitation(context.Background(), "", "SU1", "reviewer")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("non-200 is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL).CheckHabilitation(context.Background(), "tok", "SU1", "interviewer")
		assert.ErrorContains(t, err, "503")
	})

	t.Run("unreachable pilotage is an error", func(t *testing.T) {
		_, err := newTestClient("http://127.0.0.1:1").CheckHabilitation(context.Background(), "tok", "SU1", "interviewer")
		assert.Error(t, err)
	})
}

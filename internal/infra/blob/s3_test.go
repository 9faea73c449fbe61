package blob

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/opencollect/collect-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func s3Config(endpoint string) *config.Config {
	cfg := &config.Config{}
	cfg.S3.Endpoint = endpoint
	cfg.S3.Region = "us-east-1"
	cfg.S3.Bucket = "proofs"
	cfg.S3.AccessKey = "test"
	cfg.S3.SecretKey = "test"
	cfg.S3.UsePathStyle = true
	return cfg
}

func TestS3Deps_Put(t *testing.T) {
	type captured struct {
		method      string
		path        string
		contentType string
		body        []byte
	}
	var got captured

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		got = captured{
			method:      r.Method,
			path:        r.URL.Path,
			contentType: r.Header.Get("Content-Type"),
			body:        body,
		}
		w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
	}))
	defer srv.Close()

	deps, err := NewS3(context.Background(), s3Config(srv.URL))
	require.NoError(t, err)
	require.NotNil(t, deps.Uploader)

	err = deps.Put(context.Background(), "deposit-proofs/C1-INTW1.fo", []byte("<fo:root/>"), "application/xml")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, got.method)
	assert.Equal(t, "/proofs/deposit-proofs/C1-INTW1.fo", got.path)
	assert.Equal(t, "application/xml", got.contentType)
	assert.Equal(t, []byte("<fo:root/>"), got.body)
}

func TestS3Deps_PutUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	deps, err := NewS3(context.Background(), s3Config(srv.URL))
	require.NoError(t, err)

	err = deps.Put(context.Background(), "deposit-proofs/x.fo", []byte("x"), "application/xml")
	assert.Error(t, err)
}

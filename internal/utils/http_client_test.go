package utils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient_ForwardsTraceID(t *testing.T) {
	var got []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Header.Get(TraceIDHeader))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewHTTPClient()
	client.SetBaseURL(srv.URL)

	_, err := client.R().SetContext(WithTraceID(context.Background(), "round-7")).Get("/api/health")
	require.NoError(t, err)
	_, err = client.R().SetContext(context.Background()).Get("/api/health")
	require.NoError(t, err)

	assert.Equal(t, []string{"round-7", ""}, got)
}

func TestNewHTTPClient_Independent(t *testing.T) {
	a, b := NewHTTPClient(), NewHTTPClient()
	a.SetBaseURL("http://a.example")

	assert.NotSame(t, a.Client, b.Client)
	assert.Empty(t, b.BaseURL)
}

package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient(t *testing.T) {
	client := NewHTTPClient()

	require.NotNil(t, client)
	require.NotNil(t, client.Client)
}

func TestNewHTTPClient_IndependentInstances(t *testing.T) {
	first := NewHTTPClient()
	second := NewHTTPClient()

	first.SetBaseURL("http://first.example")

	assert.NotEqual(t, first.BaseURL, second.BaseURL)
}

func TestHTTPClient_Request(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("pong"))
	}))
	defer srv.Close()

	client := NewHTTPClient()
	resp, err := client.R().Get(srv.URL + "/ping")

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, "pong", string(resp.String()))
}

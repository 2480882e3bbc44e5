package clients

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoJSONAttachesBearerTokenAndDecodesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer the-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "value", body["key"])

		json.NewEncoder(w).Encode(map[string]string{"result": "ok"})
	}))
	defer server.Close()

	backend := NewBackend(server.URL, 5*time.Second)

	var out map[string]string
	err := backend.DoJSON(context.Background(), http.MethodPost, "/api/test", "the-token", map[string]string{"key": "value"}, &out)

	require.NoError(t, err)
	assert.Equal(t, "ok", out["result"])
}

func TestDoJSONNormalizesErrorShapes(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected string
	}{
		{"error field", http.StatusBadRequest, `{"error": "bad input"}`, "bad input"},
		{"message field", http.StatusConflict, `{"message": "already exists"}`, "already exists"},
		{"unparseable body", http.StatusInternalServerError, `<html>boom</html>`, "Internal Server Error"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer server.Close()

			backend := NewBackend(server.URL, 5*time.Second)
			err := backend.DoJSON(context.Background(), http.MethodGet, "/api/test", "", nil, nil)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tc.status, apiErr.StatusCode)
			assert.Equal(t, tc.expected, apiErr.Message)
		})
	}
}

func TestDoJSONCapturesRetryAfter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "3")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	backend := NewBackend(server.URL, 5*time.Second)
	err := backend.DoJSON(context.Background(), http.MethodGet, "/api/test", "", nil, nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 3*time.Second, apiErr.RetryAfter)
}

func TestDoJSONTransportErrorIsNotAPIError(t *testing.T) {
	backend := NewBackend("http://127.0.0.1:1", 500*time.Millisecond)

	err := backend.DoJSON(context.Background(), http.MethodGet, "/api/test", "", nil, nil)

	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestQueryStringSkipsEmptyValues(t *testing.T) {
	assert.Equal(t, "", queryString(map[string]string{"a": ""}))
	assert.Equal(t, "?a=1", queryString(map[string]string{"a": "1", "b": ""}))
}

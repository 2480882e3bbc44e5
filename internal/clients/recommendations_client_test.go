package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-service/internal/models"
)

func newRecommendationsClient(t *testing.T, handler http.Handler) *RecommendationsClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewRecommendationsClient(NewBackend(server.URL, 5*time.Second))
	// Tests must not sleep through real backoff windows.
	client.retrier = NewRetrier(fastRetryConfig(2))
	return client
}

func TestRecommendationsDegradeToEmptyListOnFailure(t *testing.T) {
	client := newRecommendationsClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	recs := client.ForUser(context.Background(), "token")

	require.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestRecommendationsRetryThenSucceed(t *testing.T) {
	calls := 0
	client := newRecommendationsClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"recommendations": []models.Recommendation{{ProductID: "p1", Name: "Widget", Price: 10}},
		})
	}))

	recs := client.ForUser(context.Background(), "")

	assert.Equal(t, 2, calls)
	require.Len(t, recs, 1)
	assert.Equal(t, "p1", recs[0].ProductID)
}

func TestRecommendationsNullBodyBecomesEmptyList(t *testing.T) {
	client := newRecommendationsClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"recommendations": null}`))
	}))

	recs := client.ForProduct(context.Background(), "p1")

	require.NotNil(t, recs)
	assert.Empty(t, recs)
}

package planner

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TripPlanner/internal/model"
	pkgerrors "TripPlanner/pkg/errors"
	"TripPlanner/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()
	c, err := New(url, 2*time.Second)
	require.NoError(t, err)
	return c
}

func sampleRequest() model.TripRequest {
	return model.TripRequest{
		Destination: "Tokyo",
		Country:     "Japan",
		Days:        7,
	}
}

func TestPlanSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Run-ID"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"itinerary": {"title": "Tokyo Adventure", "daily_plans": [{"day": 1, "title": "Arrival"}]},
			"hotels": [{"name": "Park Hyatt Tokyo"}],
			"flights": []
		}`))
	}))
	defer srv.Close()

	plan, err := newTestClient(t, srv.URL).Plan(context.Background(), sampleRequest())
	require.NoError(t, err)
	require.NotNil(t, plan.Itinerary)
	assert.Equal(t, "Tokyo Adventure", plan.Itinerary.Title)
	require.Len(t, plan.Hotels, 1)
	assert.Empty(t, plan.Flights)
}

func TestPlanErrorBody(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{name: "error field", status: 500, body: `{"error": "no flights found"}`, message: "no flights found"},
		{name: "detail field", status: 422, body: `{"detail": "days must be positive"}`, message: "days must be positive"},
		{name: "empty body", status: 500, body: "", message: "Failed to generate trip plan"},
		{name: "non-json body", status: 502, body: "Bad Gateway", message: "Failed to generate trip plan"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestClient(t, srv.URL).Plan(context.Background(), sampleRequest())
			require.Error(t, err)

			def, ok := err.(pkgerrors.Definition)
			require.True(t, ok)
			assert.Equal(t, pkgerrors.PlannerFailed.Code, def.Code)
			assert.Equal(t, tt.message, def.Message)
		})
	}
}

func TestPlanMalformedSuccessBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"itinerary": [`))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).Plan(context.Background(), sampleRequest())
	assert.Equal(t, pkgerrors.PlannerFailed, err)
}

func TestPlanServiceUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := newTestClient(t, srv.URL).Plan(context.Background(), sampleRequest())
	assert.Equal(t, pkgerrors.PlannerUnavailable, err)
}

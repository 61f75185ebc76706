package apiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-citywatch/types"
)

const snapshotBody = `{
	"success": true,
	"incidents": [
		{
			"id": "inc-1",
			"type": "Fire Emergency",
			"severity": "CRITICAL",
			"status": "New",
			"location": {"lat": 40.71, "lng": -74.0, "address": "Canal St"},
			"verifications": 2,
			"timestamp": "2025-06-01T12:00:00Z"
		},
		{
			"id": "inc-2",
			"type": "gas_leak",
			"severity": "weird-value",
			"status": "pending",
			"location": {"lat": 40.7, "lng": -74.1},
			"timestamp": "2025-06-01T11:00:00Z"
		}
	]
}`

func TestFetchIncidentsParsesAndSkipsMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/incidents", r.URL.Path)
		assert.Equal(t, "24", r.URL.Query().Get("hours"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(snapshotBody))
	}))
	defer srv.Close()

	incidents, err := New(srv.URL).FetchIncidents(context.Background(), 24)
	require.NoError(t, err)

	// inc-2 has an unknown severity and is dropped
	require.Len(t, incidents, 1)
	inc := incidents[0]
	assert.Equal(t, "inc-1", inc.ID)
	assert.Equal(t, types.Fire, inc.Type)
	assert.Equal(t, types.Critical, inc.Severity)
	assert.Equal(t, types.Pending, inc.Status) // "New" normalizes to pending
	assert.Equal(t, "Canal St", inc.Address)
	assert.Equal(t, 2, inc.Verifications)
}

func TestFetchIncidentsSuccessFalse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": false, "message": "backend degraded"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).FetchIncidents(context.Background(), 24)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, fetchErr.Error(), "backend degraded")
}

func TestFetchIncidentsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL).FetchIncidents(context.Background(), 24)

	var fetchErr *FetchError
	assert.ErrorAs(t, err, &fetchErr)
}

func TestFetchStatistics(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/incidents/statistics", r.URL.Path)
		assert.Equal(t, "30", r.URL.Query().Get("days"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true, "statistics": {"totalIncidents": 42}}`))
	}))
	defer srv.Close()

	stats, err := New(srv.URL).FetchStatistics(context.Background(), 30)
	require.NoError(t, err)
	assert.EqualValues(t, 42, stats["totalIncidents"])
}

package arcgis

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mmcdole/salat/internal/domain"
	"github.com/mmcdole/salat/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const candidatePayload = `{
	"candidates": [
		{"address": "Istanbul, TUR", "location": {"x": 28.97, "y": 41.01}},
		{"address": "Istanbul, OK, USA", "location": {"x": -97.87, "y": 36.65}}
	]
}`

func TestSearch_ReturnsBestCandidate(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("singleLine")
		w.Write([]byte(candidatePayload))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, log.NullLogger())
	got, err := c.Search(context.Background(), "istanbul")
	require.NoError(t, err)

	assert.Equal(t, domain.Location{City: "Istanbul, TUR", Lat: 41.01, Lon: 28.97}, got)
	assert.Equal(t, geocodePath, gotPath)
	assert.Equal(t, "istanbul", gotQuery)
}

func TestSearch_NoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"candidates": []}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, log.NullLogger())
	_, err := c.Search(context.Background(), "atlantis")
	assert.ErrorIs(t, err, domain.ErrLocationNotFound)
}

func TestSearch_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, log.NullLogger())
	_, err := c.Search(context.Background(), "istanbul")
	assert.ErrorIs(t, err, domain.ErrProviderUnavailable)
}

func TestSearch_Unreachable(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", 100*time.Millisecond, log.NullLogger())
	_, err := c.Search(context.Background(), "istanbul")
	assert.ErrorIs(t, err, domain.ErrProviderUnavailable)
}

func TestSearch_CandidateWithEmptyAddressRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"candidates": [{"address": "", "location": {"x": 1, "y": 1}}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, log.NullLogger())
	_, err := c.Search(context.Background(), "??")
	assert.ErrorIs(t, err, domain.ErrLocationNotFound)
}

package ipapi

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

func TestDetect_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/json", r.URL.Path)
		w.Write([]byte(`{"status":"success","lat":41.01,"lon":28.97,"city":"Istanbul"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, log.NullLogger())
	got, err := c.Detect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.Location{City: "Istanbul", Lat: 41.01, Lon: 28.97}, got)
}

func TestDetect_FailureFallsBackToLondon(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"api reports failure", func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"status":"fail","message":"private range"}`))
		}},
		{"server error", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}},
		{"garbage payload", func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte("not json"))
		}},
		{"empty city", func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"status":"success","lat":1,"lon":1,"city":""}`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := NewClient(srv.URL, time.Second, log.NullLogger())
			got, err := c.Detect(context.Background())
			require.NoError(t, err)
			assert.Equal(t, londonFallback, got)
		})
	}
}

func TestDetect_UnreachableFallsBackToLondon(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", 100*time.Millisecond, log.NullLogger())
	got, err := c.Detect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, londonFallback, got)
}

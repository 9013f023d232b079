package aladhan

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/mmcdole/salat/internal/domain"
)

const (
	defaultTimeout = 10 * time.Second
	defaultMethod  = 2 // ISNA
)

// Client implements domain.TimesProvider using the aladhan.com timings API.
type Client struct {
	baseURL    string
	method     int
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates an aladhan client. baseURL defaults to the public API
// and method to ISNA when unset.
func NewClient(baseURL string, method int, timeout time.Duration, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = "http://api.aladhan.com"
	}
	if method <= 0 {
		method = defaultMethod
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    baseURL,
		method:     method,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type timingsResponse struct {
	Data struct {
		Timings map[string]string `json:"timings"`
	} `json:"data"`
}

// Timings fetches today's prayer times for a coordinate pair.
func (c *Client) Timings(ctx context.Context, lat, lon float64) (domain.PrayerTimes, error) {
	reqURL := fmt.Sprintf("%s/v1/timings?latitude=%v&longitude=%v&method=%d",
		c.baseURL, lat, lon, c.method)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return domain.PrayerTimes{}, err
	}

	c.logger.Debug("timings request", "lat", lat, "lon", lon, "method", c.method)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("timings request failed", "error", err)
		return domain.PrayerTimes{}, domain.ErrProviderUnavailable
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.PrayerTimes{}, domain.ErrProviderUnavailable
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Error("timings request error", "status", resp.StatusCode)
		return domain.PrayerTimes{}, domain.ErrProviderUnavailable
	}

	var data timingsResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return domain.PrayerTimes{}, domain.ErrBadTimings
	}
	if len(data.Data.Timings) == 0 {
		return domain.PrayerTimes{}, domain.ErrBadTimings
	}

	t := data.Data.Timings
	return domain.PrayerTimes{
		Fajr:    clock(t, "Fajr"),
		Dhuhr:   clock(t, "Dhuhr"),
		Asr:     clock(t, "Asr"),
		Maghrib: clock(t, "Maghrib"),
		Isha:    clock(t, "Isha"),
	}, nil
}

// clock extracts one timing, stripping timezone annotations the API adds
// in some modes ("05:21 (EET)" -> "05:21").
func clock(timings map[string]string, name string) string {
	v, ok := timings[name]
	if !ok {
		return "00:00"
	}
	v, _, _ = strings.Cut(strings.TrimSpace(v), " ")
	return v
}

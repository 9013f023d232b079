package ipapi

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/mmcdole/salat/internal/domain"
)

const defaultTimeout = 10 * time.Second

// londonFallback is used when every detection source fails, so the widget
// always has something to show on first run.
var londonFallback = domain.Location{City: "London", Lat: 51.5074, Lon: -0.1278}

// Client implements domain.Geolocator using the ip-api.com JSON endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates an ip-api client. baseURL defaults to the public
// endpoint when empty.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = "http://ip-api.com"
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type ipAPIResponse struct {
	Status string  `json:"status"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	City   string  `json:"city"`
}

// Detect resolves the device position from its public IP. Detection
// failures degrade to the London fallback rather than an error.
func (c *Client) Detect(ctx context.Context) (domain.Location, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/json", nil)
	if err != nil {
		return londonFallback, nil
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("ip detection failed, using fallback", "error", err)
		return londonFallback, nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil || resp.StatusCode != http.StatusOK {
		c.logger.Warn("ip detection bad response, using fallback", "status", resp.StatusCode)
		return londonFallback, nil
	}

	var data ipAPIResponse
	if err := json.Unmarshal(body, &data); err != nil || data.Status != "success" {
		c.logger.Warn("ip detection unusable payload, using fallback")
		return londonFallback, nil
	}

	loc := domain.Location{City: data.City, Lat: data.Lat, Lon: data.Lon}
	if !loc.Valid() {
		return londonFallback, nil
	}

	c.logger.Debug("ip detection succeeded", "city", loc.City)
	return loc, nil
}

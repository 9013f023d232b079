package arcgis

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"github.com/mmcdole/salat/internal/domain"
)

const (
	defaultTimeout = 10 * time.Second
	geocodePath    = "/arcgis/rest/services/World/GeocodeServer/findAddressCandidates"
)

// Client implements domain.Geocoder using the ArcGIS world geocoder.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates an ArcGIS geocoder client. baseURL defaults to the
// public endpoint when empty.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = "https://geocode.arcgis.com"
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

type geocodeResponse struct {
	Candidates []struct {
		Address  string `json:"address"`
		Location struct {
			X float64 `json:"x"` // lon
			Y float64 `json:"y"` // lat
		} `json:"location"`
	} `json:"candidates"`
}

// Search resolves a free-text city query to its best candidate. Returns
// ErrLocationNotFound when the geocoder has no match.
func (c *Client) Search(ctx context.Context, query string) (domain.Location, error) {
	params := url.Values{}
	params.Set("f", "json")
	params.Set("singleLine", query)
	params.Set("maxLocations", "1")

	reqURL := c.baseURL + geocodePath + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return domain.Location{}, err
	}

	c.logger.Debug("geocode request", "query", query)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("geocode request failed", "error", err)
		return domain.Location{}, domain.ErrProviderUnavailable
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Location{}, domain.ErrProviderUnavailable
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Error("geocode request error", "status", resp.StatusCode)
		return domain.Location{}, domain.ErrProviderUnavailable
	}

	var data geocodeResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return domain.Location{}, domain.ErrProviderUnavailable
	}
	if len(data.Candidates) == 0 {
		return domain.Location{}, domain.ErrLocationNotFound
	}

	best := data.Candidates[0]
	loc := domain.Location{City: best.Address, Lat: best.Location.Y, Lon: best.Location.X}
	if !loc.Valid() {
		return domain.Location{}, domain.ErrLocationNotFound
	}
	return loc, nil
}

// Package geocode resolves free-text delivery addresses into coordinates
// through an external geocoding endpoint and matches them to delivery zones.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"restopos/internal/models"
)

// ErrAddressNotFound means the geocoder produced no coordinates for the
// address. The caller warns the operator; the draft is left unchanged.
var ErrAddressNotFound = errors.New("address could not be geocoded")

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(cfg models.GeocoderConfig) *Client {
	return &Client{
		baseURL:    cfg.URL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type geocodeResponse struct {
	Results []struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"results"`
}

// Geocode resolves an address to coordinates.
func (c *Client) Geocode(ctx context.Context, address string) (models.Location, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return models.Location{}, fmt.Errorf("invalid geocoder URL: %w", err)
	}
	q := u.Query()
	q.Set("q", address)
	if c.apiKey != "" {
		q.Set("api_key", c.apiKey)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return models.Location{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.Location{}, fmt.Errorf("geocoder request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Location{}, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return models.Location{}, fmt.Errorf("invalid geocoder response: %w", err)
	}
	if len(decoded.Results) == 0 {
		return models.Location{}, ErrAddressNotFound
	}

	return models.Location{Lat: decoded.Results[0].Lat, Lon: decoded.Results[0].Lon}, nil
}

// Package geocode translates vehicle coordinates into a spoken address using
// the geoapify reverse geocoding API.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mpetrov/askmycar/config"
	"github.com/mpetrov/askmycar/core/logger"
)

// Client calls the reverse geocoding API.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
	log     logger.Logger
}

// New creates a Client. A malformed API key is only warned about: location
// intents degrade to an inline error fragment instead of failing startup.
func New(cfg config.GeocodeConfig, log logger.Logger) *Client {
	if !cfg.KeyLooksValid() {
		log.Warnf("the geocoding API key does not look like a valid key; reverse lookups will likely fail")
	}
	return &Client{
		http:    &http.Client{Timeout: 5 * time.Second},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		log:     log,
	}
}

// reverseResponse is the subset of the geoapify payload we read.
type reverseResponse struct {
	Features []struct {
		Properties struct {
			Formatted string `json:"formatted"`
			StateCode string `json:"state_code"`
			Postcode  string `json:"postcode"`
		} `json:"properties"`
	} `json:"features"`
}

// ReverseGeocode converts a coordinate pair into a speakable address.
// Failures are rendered as an inline "Error trying to get location" fragment
// rather than propagated, so the caller can embed the result directly.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lon float64) string {
	addr, err := c.lookup(ctx, lat, lon)
	if err != nil {
		c.log.Errorf("reverse geocode (%v,%v): %v", lat, lon, err)
		return fmt.Sprintf("Error trying to get location %v", err)
	}
	return addr
}

func (c *Client) lookup(ctx context.Context, lat, lon float64) (string, error) {
	url := fmt.Sprintf("%s/v1/geocode/reverse?lat=%v&lon=%v&apiKey=%s", c.baseURL, lat, lon, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	res, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	// Access denied is typically an invalid key.
	if res.StatusCode == http.StatusUnauthorized {
		return "", errors.New("make sure your geocoding API key is correct")
	}
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geocoding gave an unexpected status of %d", res.StatusCode)
	}

	var body reverseResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return "", err
	}
	if len(body.Features) == 0 {
		return "", errors.New("no matching address")
	}
	return formatAddress(body.Features[0].Properties.Formatted,
		body.Features[0].Properties.StateCode, body.Features[0].Properties.Postcode), nil
}

// formatAddress trims the state code and postcode suffix off the formatted
// address so the spoken result stops at the city. Spoken text reads better
// without a trailing comma, which becomes a space.
func formatAddress(formatted, stateCode, postcode string) string {
	if stateCode != "" && postcode != "" {
		if idx := strings.Index(formatted, stateCode+" "+postcode); idx >= 0 {
			formatted = formatted[:idx]
		}
	}
	formatted = strings.TrimRight(formatted, " ")
	if strings.HasSuffix(formatted, ",") {
		formatted = strings.TrimSuffix(formatted, ",") + " "
	}
	return formatted
}

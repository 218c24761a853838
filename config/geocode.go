package config

import "fmt"

// geoAPIKeyLength is the length of a well-formed geoapify API key.
const geoAPIKeyLength = 32

// GeocodeConfig defines the reverse geocoding collaborator settings.
type GeocodeConfig struct {
	// APIKey is the geoapify.com API key.
	APIKey string `json:"api_key"`
	// BaseURL is the geocoding API host.
	BaseURL string `json:"base_url"`
}

// SetDefaults applies sane defaults.
func (c *GeocodeConfig) SetDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "https://api.geoapify.com"
	}
}

// Validate checks mandatory fields.
func (c GeocodeConfig) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("geocode api_key is required")
	}
	return nil
}

// KeyLooksValid reports whether the API key has the expected shape. A bad key
// is not fatal: location intents degrade to an inline error fragment.
func (c GeocodeConfig) KeyLooksValid() bool {
	return len(c.APIKey) == geoAPIKeyLength
}

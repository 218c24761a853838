package config

import "fmt"

// TelematicsConfig defines credentials and endpoints for the telematics
// provider.
type TelematicsConfig struct {
	// ClientID and ClientSecret identify this application to the provider.
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	// TokenURL is the OAuth token endpoint.
	TokenURL    string `json:"token_url"`
	RedirectURL string `json:"redirect_url"`
	// Code is the one-time authorization code from the consent flow.
	Code string `json:"code"`
	// RefreshToken seeds the refresh flow when no code is available.
	RefreshToken string `json:"refresh_token"`
	// ApplicationID is sent as the Application-Id header on every call.
	ApplicationID string `json:"application_id"`
	// Host is the provider API host.
	Host string `json:"host"`
	// SimulatorHost, when set, replaces Host so intents can be exercised
	// against a local simulator.
	SimulatorHost string `json:"simulator_host"`
	// TimeoutSeconds bounds each provider call.
	TimeoutSeconds int `json:"timeout_seconds"`
}

// SetDefaults applies sane defaults.
func (c *TelematicsConfig) SetDefaults() {
	if c.Host == "" {
		c.Host = "https://api.mps.ford.com"
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 5
	}
}

// Validate checks mandatory fields.
func (c TelematicsConfig) Validate() error {
	if c.ClientID == "" || c.ClientSecret == "" {
		return fmt.Errorf("telematics client_id and client_secret are required")
	}
	if c.TokenURL == "" {
		return fmt.Errorf("telematics token_url is required")
	}
	if c.Code == "" && c.RefreshToken == "" {
		return fmt.Errorf("either telematics code or refresh_token is required")
	}
	return nil
}

// EffectiveHost returns the simulator host when configured, the provider host
// otherwise.
func (c TelematicsConfig) EffectiveHost() string {
	if c.SimulatorHost != "" {
		return c.SimulatorHost
	}
	return c.Host
}

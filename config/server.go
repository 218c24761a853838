package config

// ServerConfig defines the webhook listener settings.
type ServerConfig struct {
	// Port for listening for webhook requests.
	Port int `json:"port"`
}

// SetDefaults applies sane defaults.
func (c *ServerConfig) SetDefaults() {
	if c.Port == 0 {
		c.Port = 8000
	}
}

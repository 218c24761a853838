package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Server     ServerConfig     `json:"server"`
	Telematics TelematicsConfig `json:"telematics"`
	Geocode    GeocodeConfig    `json:"geocode"`
	Metrics    MetricsConfig    `json:"metrics"`
}

// Load reads the configuration file and applies MYCAR_ environment overrides.
// A missing file is not an error: the original deployment was driven entirely
// by environment variables, so env-only operation stays supported.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if _, err := os.Stat(path); err == nil {
		ext := strings.ToLower(filepath.Ext(path))
		var parser koanf.Parser
		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, err
		}
	}
	// Environment overrides: MYCAR_TELEMATICS__CLIENT_ID -> telematics.client_id
	if err := k.Load(env.Provider("MYCAR_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "mycar_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Server.SetDefaults()
	cfg.Telematics.SetDefaults()
	cfg.Geocode.SetDefaults()
	cfg.Metrics.SetDefaults()
	if err := cfg.Telematics.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Geocode.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v6"
)

// Config aggregates all runtime settings for the service.
type Config struct {
	Port            string `env:"PORT" envDefault:"3000"`
	StaticDir       string `env:"STATIC_DIR" envDefault:"public"`
	UploadDir       string `env:"UPLOAD_DIR" envDefault:"public/uploads"`
	CredentialsFile string `env:"CREDENTIALS_FILE"`

	// Addr is derived from Port after parsing; untagged fields are
	// ignored by env.Parse.
	Addr string
}

// Load parses configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	addr, err := listenAddr(cfg.Port)
	if err != nil {
		return nil, err
	}
	cfg.Addr = addr

	return cfg, nil
}

// listenAddr normalizes the PORT value into a net listen address. Users may
// pass a bare port, ":3000", or a full "host:port" pair.
func listenAddr(port string) (string, error) {
	port = strings.TrimSpace(port)
	if port == "" {
		port = "3000"
	}

	if strings.Contains(port, ":") {
		return port, nil
	}

	if strings.Contains(port, " ") {
		return "", fmt.Errorf("invalid PORT value: %q", port)
	}

	return ":" + port, nil
}

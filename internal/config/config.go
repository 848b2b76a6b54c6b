// Package config loads the daemon configuration from an optional TOML file
// plus CHATWIRE_* environment overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultKeepalive is the interval between keep-alive comments on an idle
// event stream.
const DefaultKeepalive = 30 * time.Second

type Config struct {
	DatabaseURL string        // CHATWIRE_DATABASE_URL (required)
	HTTPAddr    string        // CHATWIRE_HTTP_ADDR (default ":6687")
	NATSURL     string        // CHATWIRE_NATS_URL (optional, empty = no event mirror)
	Keepalive   time.Duration // CHATWIRE_KEEPALIVE_INTERVAL (default 30s)

	// AuthTokens maps bearer tokens to user ids. File-only (the [auth.tokens]
	// table); meant for dev and test deployments. Production deployments
	// plug in their own token verifier.
	AuthTokens map[string]int64
}

// fileConfig is the TOML shape of the config file.
type fileConfig struct {
	DatabaseURL string `toml:"database_url"`
	HTTPAddr    string `toml:"http_addr"`
	NATSURL     string `toml:"nats_url"`
	Keepalive   string `toml:"keepalive_interval"`
	Auth        struct {
		Tokens map[string]int64 `toml:"tokens"`
	} `toml:"auth"`
}

// Load builds the configuration: defaults, then the config file (if found),
// then environment overrides. The file is looked up at CHATWIRE_CONFIG,
// ./chatwire.toml, /etc/chatwire/chatwire.toml, first hit wins.
func Load() (*Config, error) {
	c := &Config{
		HTTPAddr:   ":6687",
		Keepalive:  DefaultKeepalive,
		AuthTokens: make(map[string]int64),
	}

	if path := configPath(); path != "" {
		if err := c.applyFile(path); err != nil {
			return nil, err
		}
	}

	if v := os.Getenv("CHATWIRE_DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("CHATWIRE_HTTP_ADDR"); v != "" {
		c.HTTPAddr = v
	}
	if v := os.Getenv("CHATWIRE_NATS_URL"); v != "" {
		c.NATSURL = v
	}
	if v := os.Getenv("CHATWIRE_KEEPALIVE_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("CHATWIRE_KEEPALIVE_INTERVAL: %w", err)
		}
		c.Keepalive = d
	}

	if c.DatabaseURL == "" {
		return nil, fmt.Errorf("CHATWIRE_DATABASE_URL is required")
	}
	return c, nil
}

func configPath() string {
	if p := os.Getenv("CHATWIRE_CONFIG"); p != "" {
		return p
	}
	for _, p := range []string{"chatwire.toml", "/etc/chatwire/chatwire.toml"} {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func (c *Config) applyFile(path string) error {
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return fmt.Errorf("loading config file %s: %w", path, err)
	}
	if fc.DatabaseURL != "" {
		c.DatabaseURL = fc.DatabaseURL
	}
	if fc.HTTPAddr != "" {
		c.HTTPAddr = fc.HTTPAddr
	}
	if fc.NATSURL != "" {
		c.NATSURL = fc.NATSURL
	}
	if fc.Keepalive != "" {
		d, err := time.ParseDuration(fc.Keepalive)
		if err != nil {
			return fmt.Errorf("config file %s: keepalive_interval: %w", path, err)
		}
		c.Keepalive = d
	}
	for token, id := range fc.Auth.Tokens {
		c.AuthTokens[token] = id
	}
	return nil
}

package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if PLACAR_CONFIG is set
//  3. env (prefix PLACAR_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("PLACAR_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: PLACAR_ADDR, PLACAR_UPSTREAM_API_KEY, ...
	// Keys keep their underscores to match the koanf struct tags.
	envProvider := env.Provider("PLACAR_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "placar_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate rejects configurations with no safe default. Data-fetch problems
// degrade at runtime, but a malformed process configuration must surface
// immediately at startup.
func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.PageSize < 1:
		return fmt.Errorf("%w: page_size must be positive", ErrInvalidConfig)
	case c.MaxPages < 1:
		return fmt.Errorf("%w: max_pages must be positive", ErrInvalidConfig)
	case c.PollIntervalSeconds < 1:
		return fmt.Errorf("%w: poll_interval_seconds must be positive", ErrInvalidConfig)
	case c.UpstreamAPIKey != "" && c.UpstreamBaseURL == "":
		return fmt.Errorf("%w: upstream_base_url required when upstream_api_key is set", ErrInvalidConfig)
	}
	return nil
}

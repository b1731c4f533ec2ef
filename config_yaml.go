package goPortal

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfigFile reads a YAML configuration file and overlays it on the package
// defaults, so a partial file only overrides the keys it names.
//
// LoadConfigFile may return an error when input validation, dependency calls, or security checks fail.
func LoadConfigFile(path string) (Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Duration fields use Go duration syntax ("30s", "12h") in YAML; the stock
// decoder only accepts integer nanoseconds, so the sections carrying durations
// decode through shadow structs. Pointer fields distinguish "absent" from
// "zero" and preserve the overlay-on-defaults behavior.

func parseYAMLDuration(field, raw string) (time.Duration, error) {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	return d, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *APIConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		BaseURL        *string `yaml:"base_url"`
		AltBaseURL     *string `yaml:"alt_base_url"`
		RequestTimeout *string `yaml:"request_timeout"`
		UserAgent      *string `yaml:"user_agent"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	if raw.BaseURL != nil {
		c.BaseURL = *raw.BaseURL
	}
	if raw.AltBaseURL != nil {
		c.AltBaseURL = *raw.AltBaseURL
	}
	if raw.RequestTimeout != nil {
		d, err := parseYAMLDuration("request_timeout", *raw.RequestTimeout)
		if err != nil {
			return err
		}
		c.RequestTimeout = d
	}
	if raw.UserAgent != nil {
		c.UserAgent = *raw.UserAgent
	}
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *SessionConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		StorePrefix     *string `yaml:"store_prefix"`
		DefaultTokenTTL *string `yaml:"default_token_ttl"`
		CoalesceRefresh *bool   `yaml:"coalesce_refresh"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	if raw.StorePrefix != nil {
		c.StorePrefix = *raw.StorePrefix
	}
	if raw.DefaultTokenTTL != nil {
		d, err := parseYAMLDuration("default_token_ttl", *raw.DefaultTokenTTL)
		if err != nil {
			return err
		}
		c.DefaultTokenTTL = d
	}
	if raw.CoalesceRefresh != nil {
		c.CoalesceRefresh = *raw.CoalesceRefresh
	}
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *RetryConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Enabled      *bool    `yaml:"enabled"`
		MaxAttempts  *int     `yaml:"max_attempts"`
		InitialDelay *string  `yaml:"initial_delay"`
		MaxDelay     *string  `yaml:"max_delay"`
		Multiplier   *float64 `yaml:"multiplier"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	if raw.Enabled != nil {
		c.Enabled = *raw.Enabled
	}
	if raw.MaxAttempts != nil {
		c.MaxAttempts = *raw.MaxAttempts
	}
	if raw.InitialDelay != nil {
		d, err := parseYAMLDuration("initial_delay", *raw.InitialDelay)
		if err != nil {
			return err
		}
		c.InitialDelay = d
	}
	if raw.MaxDelay != nil {
		d, err := parseYAMLDuration("max_delay", *raw.MaxDelay)
		if err != nil {
			return err
		}
		c.MaxDelay = d
	}
	if raw.Multiplier != nil {
		c.Multiplier = *raw.Multiplier
	}
	return nil
}

package goPortal

import (
	"errors"
	"net/url"
	"strings"
	"time"
)

// Config defines a public type used by goPortal APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Session SessionConfig `yaml:"session"`
	Routes  RoutesConfig  `yaml:"routes"`
	Retry   RetryConfig   `yaml:"retry"`
	Audit   AuditConfig   `yaml:"audit"`
	Metrics MetricsConfig `yaml:"metrics"`
}

/*
====================================
API CONFIG
====================================
*/

// APIConfig defines a public type used by goPortal APIs.
//
// APIConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type APIConfig struct {
	// BaseURL is the primary backend origin, including the /api prefix,
	// e.g. "https://caribevibes.example.com/api".
	BaseURL string `yaml:"base_url"`
	// AltBaseURL is an optional alternate backend origin. Requests matching
	// either base (or carrying a generic /api/ path fragment) are authenticated.
	AltBaseURL     string        `yaml:"alt_base_url"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	UserAgent      string        `yaml:"user_agent"`
}

/*
====================================
SESSION CONFIG
====================================
*/

// SessionConfig defines a public type used by goPortal APIs.
//
// SessionConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SessionConfig struct {
	// StorePrefix namespaces the persisted keys in shared backends (Redis).
	StorePrefix string `yaml:"store_prefix"`
	// DefaultTokenTTL is the expiry fallback when the backend reports no
	// lifetime and the token itself carries no usable exp claim.
	DefaultTokenTTL time.Duration `yaml:"default_token_ttl"`
	// CoalesceRefresh shares one in-flight refresh between concurrent callers.
	// Off by default: the observed contract is independent refreshes with
	// last-write-wins persistence.
	CoalesceRefresh bool `yaml:"coalesce_refresh"`
}

/*
====================================
ROUTES CONFIG
====================================
*/

// RoutesConfig names the navigation targets used by logout and the guards.
//
// RoutesConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type RoutesConfig struct {
	Login     string `yaml:"login"`
	Home      string `yaml:"home"`
	AdminArea string `yaml:"admin_area"`
}

/*
====================================
RETRY CONFIG
====================================
*/

// RetryConfig controls the services-layer retry wrapper for idempotent reads.
// It never applies to the interceptor's single-retry-on-401 path.
//
// RetryConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type RetryConfig struct {
	Enabled      bool          `yaml:"enabled"`
	MaxAttempts  int           `yaml:"max_attempts"`
	InitialDelay time.Duration `yaml:"initial_delay"`
	MaxDelay     time.Duration `yaml:"max_delay"`
	Multiplier   float64       `yaml:"multiplier"`
}

/*
====================================
AUDIT / METRICS CONFIG
====================================
*/

// AuditConfig defines a public type used by goPortal APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool `yaml:"enabled"`
	BufferSize int  `yaml:"buffer_size"`
	DropIfFull bool `yaml:"drop_if_full"`
}

// MetricsConfig defines a public type used by goPortal APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool `yaml:"enabled"`
	EnableLatencyHistograms bool `yaml:"enable_latency_histograms"`
}

func defaultConfig() Config {
	return Config{
		API: APIConfig{
			RequestTimeout: 30 * time.Second,
			UserAgent:      "goPortal",
		},
		Session: SessionConfig{
			StorePrefix:     "cv",
			DefaultTokenTTL: 24 * time.Hour,
			CoalesceRefresh: false,
		},
		Routes: RoutesConfig{
			Login:     "/login",
			Home:      "/",
			AdminArea: "/admin",
		},
		Retry: RetryConfig{
			Enabled:      false,
			MaxAttempts:  3,
			InitialDelay: 500 * time.Millisecond,
			MaxDelay:     10 * time.Second,
			Multiplier:   2.0,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
	}
}

// DefaultConfig describes the defaultconfig operation and its observable behavior.
//
// DefaultConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func DefaultConfig() Config {
	return defaultConfig()
}

// RecommendedProductionConfig returns defaults with audit and metrics enabled.
//
// RecommendedProductionConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func RecommendedProductionConfig() Config {
	cfg := defaultConfig()
	cfg.Audit.Enabled = true
	cfg.Metrics.Enabled = true
	cfg.Metrics.EnableLatencyHistograms = true
	return cfg
}

func cloneConfig(cfg Config) Config {
	// All fields are values; a shallow copy is a deep copy.
	return cfg
}

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return errors.New("API BaseURL is required")
	}
	if _, err := url.ParseRequestURI(c.API.BaseURL); err != nil {
		return errors.New("API BaseURL is not a valid URL")
	}
	if c.API.AltBaseURL != "" {
		if _, err := url.ParseRequestURI(c.API.AltBaseURL); err != nil {
			return errors.New("API AltBaseURL is not a valid URL")
		}
	}
	if c.API.RequestTimeout < 0 {
		return errors.New("API RequestTimeout must not be negative")
	}
	if c.Session.DefaultTokenTTL <= 0 {
		return errors.New("Session DefaultTokenTTL must be positive")
	}
	if c.Routes.Login == "" || c.Routes.Home == "" {
		return errors.New("Routes Login and Home are required")
	}
	if c.Retry.Enabled {
		if c.Retry.MaxAttempts < 1 {
			return errors.New("Retry MaxAttempts must be at least 1")
		}
		if c.Retry.InitialDelay <= 0 || c.Retry.MaxDelay < c.Retry.InitialDelay {
			return errors.New("Retry delay bounds are invalid")
		}
		if c.Retry.Multiplier < 1 {
			return errors.New("Retry Multiplier must be at least 1")
		}
	}
	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return errors.New("Audit BufferSize must be positive when audit is enabled")
	}
	return nil
}

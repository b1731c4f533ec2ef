package goPortal

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/caribevibes/goPortal/session"
)

// Builder defines a public type used by goPortal APIs.
//
// Builder assembles a [Client] step by step. A zero-value Builder is not
// usable; construct one with [New].
type Builder struct {
	config     Config
	store      session.Store
	redis      *redis.Client
	httpClient *http.Client
	navigator  Navigator
	auditSink  AuditSink
	built      bool
}

// New describes the new operation and its observable behavior.
//
// New starts a Builder preloaded with [DefaultConfig].
func New() *Builder {
	return &Builder{config: defaultConfig()}
}

// WithConfig replaces the full configuration.
//
// WithConfig returns the receiver to allow fluent chaining.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithStore sets the session persistence backend. Exactly one of WithStore or
// WithRedis must be supplied.
//
// WithStore returns the receiver to allow fluent chaining.
func (b *Builder) WithStore(store session.Store) *Builder {
	b.store = store
	return b
}

// WithRedis sets a Redis client as the session persistence backend, namespaced
// under Session.StorePrefix.
//
// WithRedis returns the receiver to allow fluent chaining.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redis = client
	return b
}

// WithHTTPClient overrides the HTTP client used for backend calls. Its
// transport becomes the base the [RequestAuthenticator] wraps.
//
// WithHTTPClient returns the receiver to allow fluent chaining.
func (b *Builder) WithHTTPClient(client *http.Client) *Builder {
	b.httpClient = client
	return b
}

// WithNavigator sets the navigation sink that logout and guard redirects
// target. When absent, redirects become no-ops.
//
// WithNavigator returns the receiver to allow fluent chaining.
func (b *Builder) WithNavigator(nav Navigator) *Builder {
	b.navigator = nav
	return b
}

// WithAuditSink sets the destination for audit events and enables the async
// audit dispatcher.
//
// WithAuditSink returns the receiver to allow fluent chaining.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	if sink != nil {
		b.config.Audit.Enabled = true
	}
	return b
}

// WithMetricsEnabled toggles the in-process metric counters.
//
// WithMetricsEnabled returns the receiver to allow fluent chaining.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms toggles request latency recording. Implies metrics.
//
// WithLatencyHistograms returns the receiver to allow fluent chaining.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	if enabled {
		b.config.Metrics.Enabled = true
	}
	return b
}

// Build validates the assembled configuration and constructs the [Client].
// Construction includes the synchronous session rehydration: by the time Build
// returns, any persisted session has been restored (or cleared) and guards can
// be evaluated immediately.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
func (b *Builder) Build() (*Client, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	store := b.store
	if store == nil && b.redis != nil {
		store = session.NewRedisStore(b.redis, cfg.Session.StorePrefix)
	}
	if store == nil {
		return nil, errors.New("a session store is required (WithStore or WithRedis)")
	}

	httpClient := b.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.API.RequestTimeout}
	}

	metrics := NewMetrics(cfg.Metrics)
	audit := newAuditDispatcher(cfg.Audit, b.auditSink)

	sessions := newSessionManager(cfg, store, httpClient, b.navigator, audit, metrics)

	authenticator := NewRequestAuthenticator(sessions, httpClient.Transport, cfg.API, metrics)
	apiClient := &http.Client{
		Transport: authenticator,
		Timeout:   cfg.API.RequestTimeout,
	}

	b.built = true

	return &Client{
		config:   cfg,
		sessions: sessions,
		http:     apiClient,
		metrics:  metrics,
		audit:    audit,
	}, nil
}

package goPortal

import "net/http"

// Client defines a public type used by goPortal APIs.
//
// Client is the assembled portal client: the session manager, the
// authenticated HTTP client, and the observability surfaces, built once via
// [Builder.Build].
type Client struct {
	config   Config
	sessions *SessionManager
	http     *http.Client
	metrics  *Metrics
	audit    *auditDispatcher
}

// Sessions returns the session manager.
func (c *Client) Sessions() *SessionManager {
	return c.sessions
}

// HTTP returns the HTTP client whose transport attaches bearer tokens and
// performs the single 401 refresh-and-retry cycle. Resource clients in
// services/ are built on top of it.
func (c *Client) HTTP() *http.Client {
	return c.http
}

// Config returns a copy of the effective configuration.
func (c *Client) Config() Config {
	return cloneConfig(c.config)
}

// Metrics returns the metric registry, for wiring into an exporter.
func (c *Client) Metrics() *Metrics {
	return c.metrics
}

// MetricsSnapshot returns a point-in-time copy of all counters and histograms.
func (c *Client) MetricsSnapshot() MetricsSnapshot {
	return c.metrics.Snapshot()
}

// AuditDropped reports how many audit events were discarded under backpressure.
func (c *Client) AuditDropped() uint64 {
	if c.audit == nil {
		return 0
	}
	return c.audit.Dropped()
}

// Close flushes and stops the audit dispatcher. The client must not be used
// after Close.
func (c *Client) Close() {
	if c.audit != nil {
		c.audit.Close()
	}
}

package goPortal

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RequestAuthenticator defines a public type used by goPortal APIs.
//
// RequestAuthenticator is an [http.RoundTripper] that attaches the bearer token
// to backend-bound requests and transparently recovers from a single 401 by
// refreshing the token and retrying once. Requests whose URL does not match the
// configured backend pass through untouched.
type RequestAuthenticator struct {
	sessions *SessionManager
	base     http.RoundTripper
	api      APIConfig
	metrics  *Metrics
}

// NewRequestAuthenticator builds the interceptor. A nil base falls back to
// [http.DefaultTransport].
func NewRequestAuthenticator(sessions *SessionManager, base http.RoundTripper, api APIConfig, metrics *Metrics) *RequestAuthenticator {
	if base == nil {
		base = http.DefaultTransport
	}
	return &RequestAuthenticator{
		sessions: sessions,
		base:     base,
		api:      api,
		metrics:  metrics,
	}
}

// matches reports whether a request targets the backend: the primary base URL,
// the alternate base URL, or any URL whose path carries an /api/ segment.
// First match wins.
func (a *RequestAuthenticator) matches(rawURL string) bool {
	if a.api.BaseURL != "" && strings.HasPrefix(rawURL, a.api.BaseURL) {
		return true
	}
	if a.api.AltBaseURL != "" && strings.HasPrefix(rawURL, a.api.AltBaseURL) {
		return true
	}
	return strings.Contains(rawURL, "/api/")
}

// RoundTrip implements [http.RoundTripper].
//
// On a 401 response to a request that was sent authenticated, and while the
// session still believes itself authenticated, exactly one refresh-and-retry is
// attempted. A failed refresh logs the session out and propagates the refresh
// error, not the 401. The retried request's own 401 is returned as-is; there is
// no second cycle.
func (a *RequestAuthenticator) RoundTrip(req *http.Request) (*http.Response, error) {
	if !a.matches(req.URL.String()) {
		return a.base.RoundTrip(req)
	}

	var start time.Time
	if a.metrics != nil && a.metrics.LatencyEnabled() {
		start = time.Now()
	}

	token := a.sessions.Token()
	authed := token != ""
	if authed {
		a.metricInc(MetricRequestAuthenticated)
	} else {
		a.metricInc(MetricRequestAnonymous)
	}

	out := a.decorate(req, token)
	resp, err := a.base.RoundTrip(out)

	if !start.IsZero() {
		a.metrics.Observe(MetricRequestLatency, time.Since(start))
	}

	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}
	if !authed || !a.sessions.IsAuthenticated() {
		return resp, nil
	}

	return a.refreshAndRetry(req, resp)
}

// refreshAndRetry runs the single recovery cycle for an authenticated 401.
func (a *RequestAuthenticator) refreshAndRetry(req *http.Request, unauthorized *http.Response) (*http.Response, error) {
	ctx := req.Context()

	newToken, err := a.sessions.RefreshToken(ctx)
	if err != nil {
		drainBody(unauthorized)
		_ = a.sessions.Logout(ctx)
		return nil, err
	}

	retry, err := cloneForRetry(req)
	if err != nil {
		// The original body cannot be replayed; surface the 401 we already have.
		return unauthorized, nil
	}
	drainBody(unauthorized)

	a.metricInc(MetricRetryAfterUnauthorized)
	a.auditRetry(ctx, req)

	return a.base.RoundTrip(a.decorate(retry, newToken))
}

// decorate clones the request and applies the backend headers: bearer token
// (when present), a JSON content type if none is set, and a request ID.
func (a *RequestAuthenticator) decorate(req *http.Request, token string) *http.Request {
	out := req.Clone(req.Context())
	if token != "" {
		out.Header.Set("Authorization", "Bearer "+token)
	}
	if out.Header.Get("Content-Type") == "" {
		out.Header.Set("Content-Type", "application/json")
	}
	if out.Header.Get("X-Request-ID") == "" {
		out.Header.Set("X-Request-ID", uuid.NewString())
	}
	if a.api.UserAgent != "" && out.Header.Get("User-Agent") == "" {
		out.Header.Set("User-Agent", a.api.UserAgent)
	}
	return out
}

func (a *RequestAuthenticator) metricInc(id MetricID) {
	if a.metrics != nil {
		a.metrics.Inc(id)
	}
}

func (a *RequestAuthenticator) auditRetry(ctx context.Context, req *http.Request) {
	if a.sessions == nil {
		return
	}
	a.sessions.emitAudit(ctx, auditEventRetryAfter401, true, userIDString(a.sessions.CurrentUser()), nil, func() map[string]string {
		return map[string]string{
			"method": req.Method,
			"url":    req.URL.String(),
		}
	})
}

// cloneForRetry rebuilds a request so it can be sent a second time. Requests
// with a consumed body need GetBody to reconstruct it.
func cloneForRetry(req *http.Request) (*http.Request, error) {
	out := req.Clone(req.Context())
	if req.Body == nil || req.Body == http.NoBody {
		return out, nil
	}
	if req.GetBody == nil {
		return nil, ErrRetryNotPossible
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, ErrRetryNotPossible
	}
	out.Body = body
	return out, nil
}

func drainBody(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4*1024))
	resp.Body.Close()
}

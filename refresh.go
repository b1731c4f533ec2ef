package goPortal

import (
	"context"
	"errors"
	"net/url"
)

type refreshResult struct {
	token string
	err   error
}

type refreshCall struct {
	done chan struct{}
	res  refreshResult
}

// RefreshToken exchanges the current token for a fresh one. With no current
// token it fails fast with [ErrNoToken] and touches nothing. On any failure
// after that point the session is cleared unconditionally before the error is
// returned; a refresh only fails when the credential is already unusable, so
// keeping it would just convert one failed request into many.
//
// When Session.CoalesceRefresh is enabled, concurrent callers share a single
// in-flight exchange and all observe its result.
//
// RefreshToken may return an error when input validation, dependency calls, or security checks fail.
func (m *SessionManager) RefreshToken(ctx context.Context) (string, error) {
	if !m.config.Session.CoalesceRefresh {
		return m.refreshOnce(ctx)
	}

	m.refreshMu.Lock()
	if call := m.inflight; call != nil {
		m.refreshMu.Unlock()
		m.metricInc(MetricRefreshCoalesced)
		select {
		case <-call.done:
			return call.res.token, call.res.err
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	call := &refreshCall{done: make(chan struct{})}
	m.inflight = call
	m.refreshMu.Unlock()

	token, err := m.refreshOnce(ctx)
	call.res = refreshResult{token: token, err: err}
	close(call.done)

	m.refreshMu.Lock()
	m.inflight = nil
	m.refreshMu.Unlock()

	return token, err
}

func (m *SessionManager) refreshOnce(ctx context.Context) (string, error) {
	current := m.Token()
	if current == "" {
		return "", ErrNoToken
	}

	var resp AuthResponse
	if err := m.postAuth(ctx, "/auth/refresh", nil, url.Values{"token": {current}}, &resp); err != nil {
		return "", m.failRefresh(ctx, err)
	}
	if resp.Token == "" {
		return "", m.failRefresh(ctx, ErrInvalidResponse)
	}

	if err := m.establishRefreshed(ctx, &resp); err != nil {
		return "", m.failRefresh(ctx, err)
	}

	m.metricInc(MetricRefreshSuccess)
	m.emitAudit(ctx, auditEventRefreshSuccess, true, userIDString(m.CurrentUser()), nil, nil)

	return resp.Token, nil
}

// failRefresh clears the session and wraps the cause so callers can match
// either [ErrRefreshFailed] or the underlying error.
func (m *SessionManager) failRefresh(ctx context.Context, err error) error {
	m.metricInc(MetricRefreshFailure)
	m.emitAudit(ctx, auditEventRefreshFailure, false, "", err, nil)
	_ = m.ClearSession(ctx)
	return errors.Join(ErrRefreshFailed, err)
}

// establishRefreshed keeps the current user and replaces token and expiry. The
// refresh endpoint only returns a token, so the expiry falls back through the
// token's own exp claim down to the configured default lifetime.
func (m *SessionManager) establishRefreshed(ctx context.Context, resp *AuthResponse) error {
	if resp.User == nil {
		resp = &AuthResponse{
			Token:     resp.Token,
			TokenType: resp.TokenType,
			ExpiresIn: resp.ExpiresIn,
			ExpiresAt: resp.ExpiresAt,
			User:      m.CurrentUser(),
		}
	}
	if resp.User == nil {
		return ErrNotAuthenticated
	}

	return m.establishSession(ctx, resp)
}

package goPortal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/caribevibes/goPortal/session"
)

// SessionManager defines a public type used by goPortal APIs.
//
// SessionManager is the single source of truth for "who, if anyone, is logged in,
// and is their credential still valid". It is safe for concurrent use after
// construction through [Builder.Build].
type SessionManager struct {
	config    Config
	store     session.Store
	http      *http.Client
	navigator Navigator
	audit     *auditDispatcher
	metrics   *Metrics

	mu       sync.RWMutex
	user     *User
	token    string
	expiry   time.Time
	loggedIn bool

	subMu  sync.Mutex
	subs   map[int]func(*User, bool)
	nextID int

	refreshMu sync.Mutex
	inflight  *refreshCall
}

func newSessionManager(cfg Config, store session.Store, httpClient *http.Client, nav Navigator, audit *auditDispatcher, metrics *Metrics) *SessionManager {
	m := &SessionManager{
		config:    cfg,
		store:     store,
		http:      httpClient,
		navigator: nav,
		audit:     audit,
		metrics:   metrics,
		subs:      make(map[int]func(*User, bool)),
	}

	// Synchronous rehydration: guards and the interceptor may run immediately
	// after Build, so the persisted session must be visible before we return.
	m.CheckTokenValidity(context.Background())

	return m
}

func (m *SessionManager) metricInc(id MetricID) {
	if m == nil || m.metrics == nil {
		return
	}
	m.metrics.Inc(id)
}

// Subscribe registers an observer for session-state publications. The observer
// receives the current user (nil when logged out) and the logged-in boolean,
// first immediately with the current state and then on every transition. The
// returned function cancels the subscription.
//
// Subscribe does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *SessionManager) Subscribe(fn func(user *User, loggedIn bool)) (cancel func()) {
	m.subMu.Lock()
	id := m.nextID
	m.nextID++
	m.subs[id] = fn
	m.subMu.Unlock()

	m.mu.RLock()
	user, loggedIn := m.user, m.loggedIn
	m.mu.RUnlock()
	fn(user, loggedIn)

	return func() {
		m.subMu.Lock()
		delete(m.subs, id)
		m.subMu.Unlock()
	}
}

func (m *SessionManager) publish(user *User, loggedIn bool) {
	m.subMu.Lock()
	observers := make([]func(*User, bool), 0, len(m.subs))
	for _, fn := range m.subs {
		observers = append(observers, fn)
	}
	m.subMu.Unlock()

	for _, fn := range observers {
		fn(user, loggedIn)
	}
}

// Login sends credentials to the backend and, on success, atomically establishes
// the new session (persist + in-memory update) and publishes it to observers.
// On failure the error is propagated untouched and no state is mutated.
//
// Login may return an error when input validation, dependency calls, or security checks fail.
func (m *SessionManager) Login(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	var resp AuthResponse
	if err := m.postAuth(ctx, "/auth/login", creds, nil, &resp); err != nil {
		m.metricInc(MetricLoginFailure)
		m.emitAudit(ctx, auditEventLoginFailure, false, "", err, func() map[string]string {
			return map[string]string{"email": creds.Email}
		})
		return nil, err
	}

	if err := m.establishSession(ctx, &resp); err != nil {
		m.metricInc(MetricLoginFailure)
		m.emitAudit(ctx, auditEventLoginFailure, false, "", err, nil)
		return nil, err
	}

	m.metricInc(MetricLoginSuccess)
	m.emitAudit(ctx, auditEventLoginSuccess, true, userIDString(resp.User), nil, nil)

	return &resp, nil
}

// Register creates an account. Registration doubles as login: on success the
// returned session is established immediately, with the same contract as
// [SessionManager.Login].
//
// Register may return an error when input validation, dependency calls, or security checks fail.
func (m *SessionManager) Register(ctx context.Context, reg Registration) (*AuthResponse, error) {
	var resp AuthResponse
	if err := m.postAuth(ctx, "/auth/register", reg, nil, &resp); err != nil {
		m.metricInc(MetricRegisterFailure)
		m.emitAudit(ctx, auditEventRegisterFailure, false, "", err, func() map[string]string {
			return map[string]string{"email": reg.Email}
		})
		return nil, err
	}

	if err := m.establishSession(ctx, &resp); err != nil {
		m.metricInc(MetricRegisterFailure)
		m.emitAudit(ctx, auditEventRegisterFailure, false, "", err, nil)
		return nil, err
	}

	m.metricInc(MetricRegisterSuccess)
	m.emitAudit(ctx, auditEventRegisterSuccess, true, userIDString(resp.User), nil, nil)

	return &resp, nil
}

// Logout clears the persisted and in-memory session, publishes the logged-out
// state, and navigates to the public landing route. Logging out while already
// logged out is a no-op and never fails.
//
// Logout may return an error when input validation, dependency calls, or security checks fail.
func (m *SessionManager) Logout(ctx context.Context) error {
	wasLoggedIn := m.IsAuthenticated()

	if err := m.ClearSession(ctx); err != nil {
		return err
	}

	if wasLoggedIn {
		m.metricInc(MetricLogout)
		m.emitAudit(ctx, auditEventLogout, true, "", nil, nil)
	}
	if m.navigator != nil {
		m.navigator.Navigate(m.config.Routes.Home)
	}

	return nil
}

// ClearSession performs the same state clearing as [SessionManager.Logout]
// without the navigation side effect. It is used internally when a refresh
// fails and no user-facing redirect is appropriate in that call stack.
//
// ClearSession may return an error when input validation, dependency calls, or security checks fail.
func (m *SessionManager) ClearSession(ctx context.Context) error {
	if err := session.Clear(ctx, m.store); err != nil {
		log.Print("goPortal: persisted session clear failed")
		return err
	}

	m.mu.Lock()
	changed := m.loggedIn || m.token != "" || m.user != nil
	m.user = nil
	m.token = ""
	m.expiry = time.Time{}
	m.loggedIn = false
	m.mu.Unlock()

	if changed {
		m.publish(nil, false)
	}

	return nil
}

// CheckTokenValidity reads the persisted session. A complete, unexpired session
// is republished as the active one; anything else (absent, partial, corrupt, or
// expired) is cleared from both storage and memory. It reports whether a valid
// session is active afterwards.
//
// CheckTokenValidity does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *SessionManager) CheckTokenValidity(ctx context.Context) bool {
	sess, err := session.Load(ctx, m.store)
	if err != nil {
		if !errors.Is(err, session.ErrCorruptSession) {
			log.Print("goPortal: persisted session read failed")
		}
		_ = m.ClearSession(ctx)
		return false
	}
	if sess == nil {
		_ = m.ClearSession(ctx)
		return false
	}

	if !sess.Valid(time.Now()) {
		m.metricInc(MetricSessionExpired)
		m.emitAudit(ctx, auditEventSessionExpired, false, "", ErrSessionExpired, nil)
		_ = m.ClearSession(ctx)
		return false
	}

	user := decodeUser(sess.RawUser)

	m.mu.Lock()
	m.user = user
	m.token = sess.Token
	m.expiry = sess.Expiry
	m.loggedIn = true
	m.mu.Unlock()

	m.metricInc(MetricSessionRestored)
	m.emitAudit(ctx, auditEventSessionRestored, true, userIDString(user), nil, nil)
	m.publish(user, true)

	return true
}

// HasValidToken is the pure synchronous check: token, expiry, and user all
// present AND the expiry still in the future. No storage access.
//
// HasValidToken does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *SessionManager) HasValidToken() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.token != "" && m.user != nil && m.expiry.After(time.Now())
}

// IsAuthenticated returns true only when the published logged-in state AND
// [SessionManager.HasValidToken] agree. The published boolean can go stale when
// the clock passes the expiry with no new event fired; recomputing from the
// cached triple closes that gap.
//
// IsAuthenticated does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *SessionManager) IsAuthenticated() bool {
	m.mu.RLock()
	loggedIn := m.loggedIn
	m.mu.RUnlock()

	return loggedIn && m.HasValidToken()
}

// ForceCheckAuthentication re-runs [SessionManager.CheckTokenValidity]
// synchronously and then reports [SessionManager.IsAuthenticated]. Guards use
// it to get an up-to-date answer without waiting on an observable tick.
//
// ForceCheckAuthentication does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *SessionManager) ForceCheckAuthentication(ctx context.Context) bool {
	m.CheckTokenValidity(ctx)
	return m.IsAuthenticated()
}

// Token returns the current bearer token, or the empty string when logged out.
//
// Token does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *SessionManager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// CurrentUser returns the authenticated principal, or nil when logged out.
//
// CurrentUser does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *SessionManager) CurrentUser() *User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user
}

// HasRole reports membership of role in the current user's role set. It returns
// false, never an error, when no user is present or the role list is absent.
//
// HasRole does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *SessionManager) HasRole(role string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.user == nil {
		return false
	}
	return m.user.Roles.Has(role)
}

// IsAdmin reports membership of "ADMIN" in the current user's role set.
//
// IsAdmin does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *SessionManager) IsAdmin() bool {
	return m.HasRole(RoleAdmin)
}

// ValidateToken asks the backend whether a token is valid. It is exposed for
// completeness and is not part of the core lifecycle.
//
// ValidateToken may return an error when input validation, dependency calls, or security checks fail.
func (m *SessionManager) ValidateToken(ctx context.Context, token string) (bool, error) {
	var out struct {
		Valid bool `json:"valid"`
	}
	if err := m.postAuth(ctx, "/auth/validate", nil, url.Values{"token": {token}}, &out); err != nil {
		return false, err
	}
	return out.Valid, nil
}

// NoteGuardDecision records a guard evaluation for observability. The guard/
// package calls it after every allow/deny resolution.
//
// NoteGuardDecision does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *SessionManager) NoteGuardDecision(route string, allowed bool) {
	if allowed {
		m.metricInc(MetricGuardAllowed)
		return
	}
	m.metricInc(MetricGuardDenied)
	if m.audit != nil {
		m.audit.Emit(context.Background(), AuditEvent{
			Timestamp: time.Now(),
			EventType: auditEventGuardDenied,
			Route:     route,
			Success:   false,
		})
	}
}

// establishSession persists the new triple and then commits it to memory and
// observers. Persist-first ordering means a crash between the two leaves a
// durable session that the next bootstrap restores, never the reverse.
func (m *SessionManager) establishSession(ctx context.Context, resp *AuthResponse) error {
	if resp.Token == "" || resp.User == nil {
		return ErrInvalidResponse
	}

	rawUser, err := json.Marshal(resp.User)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	now := time.Now()
	expiry := sessionExpiry(resp, now, m.config.Session.DefaultTokenTTL)

	sess := &session.Session{
		Token:   resp.Token,
		Expiry:  expiry,
		RawUser: rawUser,
	}
	if err := session.Save(ctx, m.store, sess); err != nil {
		return err
	}

	m.mu.Lock()
	m.user = resp.User
	m.token = resp.Token
	m.expiry = expiry
	m.loggedIn = true
	m.mu.Unlock()

	m.publish(resp.User, true)

	return nil
}

// postAuth issues a POST against the backend's auth endpoints using the bare
// (non-intercepted) HTTP client; auth endpoints never participate in the
// 401-refresh cycle.
func (m *SessionManager) postAuth(ctx context.Context, path string, body interface{}, query url.Values, out interface{}) error {
	if m.http == nil {
		return ErrClientNotReady
	}
	endpoint := strings.TrimRight(m.config.API.BaseURL, "/") + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if m.config.API.UserAgent != "" {
		req.Header.Set("User-Agent", m.config.API.UserAgent)
	}

	resp, err := m.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp, path)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Join(ErrInvalidResponse, err)
	}

	return nil
}

func decodeAPIError(resp *http.Response, path string) error {
	apiErr := &APIError{
		Status: resp.StatusCode,
		Path:   path,
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err == nil && len(body) > 0 {
		var payload struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if json.Unmarshal(body, &payload) == nil {
			if payload.Message != "" {
				apiErr.Message = payload.Message
			} else {
				apiErr.Message = payload.Error
			}
		}
	}

	return apiErr
}

// decodeUser tolerates malformed persisted user data: an undecodable object
// yields a user with no roles rather than a failure, keeping role checks total.
func decodeUser(raw []byte) *User {
	var user User
	if err := json.Unmarshal(raw, &user); err != nil {
		return &User{}
	}
	return &user
}

func userIDString(user *User) string {
	if user == nil || user.ID == 0 {
		return ""
	}
	return strconv.FormatInt(user.ID, 10)
}

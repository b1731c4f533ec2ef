package internaldefs

import (
	goPortal "github.com/caribevibes/goPortal"
)

// CounterDef defines a public type used by goPortal APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   goPortal.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by goPortal APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   goPortal.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the portal client.
var CounterDefs = []CounterDef{
	{ID: goPortal.MetricLoginSuccess, Name: "goportal_login_success_total", Help: "Successful login attempts."},
	{ID: goPortal.MetricLoginFailure, Name: "goportal_login_failure_total", Help: "Failed login attempts."},
	{ID: goPortal.MetricRegisterSuccess, Name: "goportal_register_success_total", Help: "Successful registrations."},
	{ID: goPortal.MetricRegisterFailure, Name: "goportal_register_failure_total", Help: "Failed registrations."},
	{ID: goPortal.MetricRefreshSuccess, Name: "goportal_refresh_success_total", Help: "Successful token refreshes."},
	{ID: goPortal.MetricRefreshFailure, Name: "goportal_refresh_failure_total", Help: "Failed token refreshes."},
	{ID: goPortal.MetricRefreshCoalesced, Name: "goportal_refresh_coalesced_total", Help: "Refresh calls that joined an in-flight exchange."},
	{ID: goPortal.MetricLogout, Name: "goportal_logout_total", Help: "Logout operations."},
	{ID: goPortal.MetricSessionRestored, Name: "goportal_session_restored_total", Help: "Sessions restored from persistence."},
	{ID: goPortal.MetricSessionExpired, Name: "goportal_session_expired_total", Help: "Persisted sessions discarded as expired."},
	{ID: goPortal.MetricRequestAuthenticated, Name: "goportal_request_authenticated_total", Help: "Backend requests sent with a bearer token."},
	{ID: goPortal.MetricRequestAnonymous, Name: "goportal_request_anonymous_total", Help: "Backend requests sent without a token."},
	{ID: goPortal.MetricRetryAfterUnauthorized, Name: "goportal_retry_after_unauthorized_total", Help: "Requests retried after a refresh recovered a 401."},
	{ID: goPortal.MetricGuardAllowed, Name: "goportal_guard_allowed_total", Help: "Route guard evaluations that allowed navigation."},
	{ID: goPortal.MetricGuardDenied, Name: "goportal_guard_denied_total", Help: "Route guard evaluations that redirected."},
}

// HistogramDefs is an exported constant or variable used by the portal client.
var HistogramDefs = []HistogramDef{
	{ID: goPortal.MetricRequestLatency, Name: "goportal_request_latency_seconds", Help: "Backend request latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the portal client.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the portal client.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets describes the normalizebuckets operation and its observable behavior.
//
// NormalizeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets describes the cumulativebuckets operation and its observable behavior.
//
// CumulativeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}

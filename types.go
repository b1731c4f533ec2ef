package goPortal

import (
	"encoding/json"
	"io"
	"time"

	internalaudit "github.com/caribevibes/goPortal/internal/audit"
)

// RoleAdmin is an exported constant or variable used by the portal client.
const RoleAdmin = "ADMIN"

// RoleUser is an exported constant or variable used by the portal client.
const RoleUser = "USER"

// RoleSet is the set of role names attached to a [User]. Decoding is tolerant:
// an absent, null, or non-array role field behaves as the empty set, so role
// checks stay total functions.
type RoleSet []string

// Has describes the has operation and its observable behavior.
//
// Has does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (r RoleSet) Has(role string) bool {
	for _, name := range r {
		if name == role {
			return true
		}
	}
	return false
}

// UnmarshalJSON describes the unmarshaljson operation and its observable behavior.
//
// UnmarshalJSON may return an error when input validation, dependency calls, or security checks fail.
func (r *RoleSet) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		// Malformed role data means no roles, never a decode failure.
		*r = nil
		return nil
	}
	*r = names
	return nil
}

// User is the authenticated principal as returned by the backend's auth endpoints
// and persisted under the currentUser storage key.
type User struct {
	ID        int64                  `json:"id"`
	Username  string                 `json:"username,omitempty"`
	Email     string                 `json:"email"`
	FirstName string                 `json:"firstName,omitempty"`
	LastName  string                 `json:"lastName,omitempty"`
	FullName  string                 `json:"fullName,omitempty"`
	Roles     RoleSet                `json:"roleNames"`
	Active    bool                   `json:"isActive,omitempty"`
	Prefs     map[string]interface{} `json:"preferences,omitempty"`
	CreatedAt *time.Time             `json:"createdAt,omitempty"`
}

// Credentials is the input for [SessionManager.Login].
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the input for [SessionManager.Register]. The backend treats a
// successful registration as a login and returns the same response shape.
type Registration struct {
	Username        string                 `json:"username"`
	Email           string                 `json:"email"`
	Password        string                 `json:"password"`
	ConfirmPassword string                 `json:"confirmPassword"`
	FirstName       string                 `json:"firstName"`
	LastName        string                 `json:"lastName"`
	PhoneNumber     string                 `json:"phoneNumber,omitempty"`
	BirthDate       string                 `json:"birthDate,omitempty"`
	Country         string                 `json:"country,omitempty"`
	City            string                 `json:"city,omitempty"`
	Preferences     map[string]interface{} `json:"preferences,omitempty"`
	AcceptTerms     bool                   `json:"acceptTerms"`
	AcceptMarketing bool                   `json:"acceptMarketing,omitempty"`
	PromoCode       string                 `json:"promoCode,omitempty"`
}

// AuthResponse is returned by the backend for login, registration, and (partially)
// refresh. ExpiresIn is in seconds; ExpiresAt, when present, wins over ExpiresIn.
type AuthResponse struct {
	Token     string     `json:"token"`
	TokenType string     `json:"tokenType"`
	ExpiresIn int64      `json:"expiresIn,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	User      *User      `json:"user"`
}

// Navigator receives redirect side effects from [SessionManager.Logout] and the
// guard/ package. Implementations map route names onto whatever navigation the
// host application has (a terminal UI router, a URL open, a no-op in tests).
type Navigator interface {
	Navigate(route string)
}

// NavigatorFunc adapts a function to the [Navigator] interface.
type NavigatorFunc func(route string)

// Navigate describes the navigate operation and its observable behavior.
//
// Navigate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (f NavigatorFunc) Navigate(route string) { f(route) }

// AuditEvent is a structured audit record emitted by the session manager.
type AuditEvent = internalaudit.Event

// AuditSink receives [AuditEvent] values from the audit dispatcher.
type AuditSink = internalaudit.Sink

// NoOpSink is an [AuditSink] that silently discards all events.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink is a buffered channel-based [AuditSink].
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink is an [AuditSink] that writes JSON-encoded events to an
// [io.Writer].
type JSONWriterSink = internalaudit.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}

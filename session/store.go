package session

import (
	"context"
	"errors"
)

// ErrNotFound is an exported constant or variable used by the portal client.
var ErrNotFound = errors.New("session key not found")

// ErrStoreUnavailable is an exported constant or variable used by the portal client.
var ErrStoreUnavailable = errors.New("session store unavailable")

const (
	// KeyToken is an exported constant or variable used by the portal client.
	KeyToken = "token"
	// KeyTokenExpiry is an exported constant or variable used by the portal client.
	KeyTokenExpiry = "tokenExpiry"
	// KeyCurrentUser is an exported constant or variable used by the portal client.
	KeyCurrentUser = "currentUser"
)

// Store is the durable key-value surface sessions persist into. Writes are
// whole-value replacements; there is no transaction spanning multiple keys.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, keys ...string) error
}

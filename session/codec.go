package session

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrCorruptSession is an exported constant or variable used by the portal client.
var ErrCorruptSession = errors.New("persisted session is corrupt")

// Load reads the persisted triple from the store. A fully absent triple returns
// (nil, nil); a partially present or unparsable one returns ErrCorruptSession so
// the caller can clear it.
func Load(ctx context.Context, store Store) (*Session, error) {
	token, tokenErr := store.Get(ctx, KeyToken)
	expiryRaw, expiryErr := store.Get(ctx, KeyTokenExpiry)
	userRaw, userErr := store.Get(ctx, KeyCurrentUser)

	missing := 0
	for _, err := range []error{tokenErr, expiryErr, userErr} {
		switch {
		case err == nil:
		case errors.Is(err, ErrNotFound):
			missing++
		default:
			return nil, err
		}
	}

	if missing == 3 {
		return nil, nil
	}
	if missing > 0 {
		return nil, ErrCorruptSession
	}

	expiry, err := time.Parse(time.RFC3339, expiryRaw)
	if err != nil {
		return nil, ErrCorruptSession
	}

	sess := &Session{
		Token:   token,
		Expiry:  expiry,
		RawUser: []byte(userRaw),
	}
	if !sess.Complete() {
		return nil, ErrCorruptSession
	}

	return sess, nil
}

// Save writes the triple as three whole-value replacements, in the order token,
// expiry, user. Save does not guard against concurrent writers; racing full
// overwrites are last-write-wins and never produce torn single values.
func Save(ctx context.Context, store Store, sess *Session) error {
	if !sess.Complete() {
		return errors.New("refusing to persist a partial session")
	}

	if err := store.Set(ctx, KeyToken, sess.Token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	if err := store.Set(ctx, KeyTokenExpiry, sess.Expiry.UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("persist token expiry: %w", err)
	}
	if err := store.Set(ctx, KeyCurrentUser, string(sess.RawUser)); err != nil {
		return fmt.Errorf("persist current user: %w", err)
	}

	return nil
}

// Clear removes the whole triple. Clearing an absent session is not an error.
func Clear(ctx context.Context, store Store) error {
	return store.Del(ctx, KeyToken, KeyTokenExpiry, KeyCurrentUser)
}

package session

import (
	"context"
	"errors"
	"testing"
	"time"
)

func testSession(expiry time.Time) *Session {
	return &Session{
		Token:   "token-1",
		Expiry:  expiry,
		RawUser: []byte(`{"id":7,"email":"ana@example.com"}`),
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	expiry := time.Now().Add(time.Hour).Truncate(time.Second)

	if err := Save(ctx, store, testSession(expiry)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := Load(ctx, store)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got == nil {
		t.Fatal("Load returned no session")
	}
	if got.Token != "token-1" {
		t.Fatalf("Token = %q", got.Token)
	}
	if !got.Expiry.Equal(expiry) {
		t.Fatalf("Expiry = %v, want %v", got.Expiry, expiry)
	}
	if string(got.RawUser) != `{"id":7,"email":"ana@example.com"}` {
		t.Fatalf("RawUser = %s", got.RawUser)
	}
}

func TestLoadEmptyStore(t *testing.T) {
	got, err := Load(context.Background(), NewMemoryStore())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got != nil {
		t.Fatalf("Load = %+v, want nil for an empty store", got)
	}
}

func TestLoadPartialTripleIsCorrupt(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name string
		keys map[string]string
	}{
		{"token only", map[string]string{KeyToken: "t"}},
		{"missing user", map[string]string{KeyToken: "t", KeyTokenExpiry: time.Now().Format(time.RFC3339)}},
		{"missing token", map[string]string{KeyTokenExpiry: time.Now().Format(time.RFC3339), KeyCurrentUser: "{}"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := NewMemoryStore()
			for k, v := range tc.keys {
				if err := store.Set(ctx, k, v); err != nil {
					t.Fatalf("Set failed: %v", err)
				}
			}

			_, err := Load(ctx, store)
			if !errors.Is(err, ErrCorruptSession) {
				t.Fatalf("err = %v, want ErrCorruptSession", err)
			}
		})
	}
}

func TestLoadUnparseableExpiryIsCorrupt(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	_ = store.Set(ctx, KeyToken, "t")
	_ = store.Set(ctx, KeyTokenExpiry, "not-a-timestamp")
	_ = store.Set(ctx, KeyCurrentUser, "{}")

	if _, err := Load(ctx, store); !errors.Is(err, ErrCorruptSession) {
		t.Fatalf("err = %v, want ErrCorruptSession", err)
	}
}

func TestSaveRefusesPartialSession(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if err := Save(ctx, store, &Session{Token: "t"}); err == nil {
		t.Fatal("Save must refuse an incomplete session")
	}
	// Nothing may have been written.
	if got, err := Load(ctx, store); err != nil || got != nil {
		t.Fatalf("Load = %+v, %v after refused Save", got, err)
	}
}

func TestClearRemovesAllKeys(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if err := Save(ctx, store, testSession(time.Now().Add(time.Hour))); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := Clear(ctx, store); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	for _, key := range []string{KeyToken, KeyTokenExpiry, KeyCurrentUser} {
		if _, err := store.Get(ctx, key); !errors.Is(err, ErrNotFound) {
			t.Fatalf("key %q survived Clear, err = %v", key, err)
		}
	}

	// Clearing an already-empty store stays a no-op success.
	if err := Clear(ctx, store); err != nil {
		t.Fatalf("second Clear failed: %v", err)
	}
}

func TestSaveReplacesWholeValue(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	first := testSession(time.Now().Add(time.Hour))
	if err := Save(ctx, store, first); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	second := &Session{
		Token:   "token-2",
		Expiry:  time.Now().Add(2 * time.Hour),
		RawUser: []byte(`{"id":8}`),
	}
	if err := Save(ctx, store, second); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	got, err := Load(ctx, store)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Token != "token-2" || string(got.RawUser) != `{"id":8}` {
		t.Fatalf("session = %+v, want full replacement", got)
	}
}

func TestSessionValid(t *testing.T) {
	now := time.Now()

	cases := []struct {
		name string
		sess Session
		want bool
	}{
		{"valid", *testSession(now.Add(time.Minute)), true},
		{"expired", *testSession(now.Add(-time.Minute)), false},
		{"no token", Session{Expiry: now.Add(time.Minute), RawUser: []byte("{}")}, false},
		{"no user", Session{Token: "t", Expiry: now.Add(time.Minute)}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.sess.Valid(now); got != tc.want {
				t.Fatalf("Valid = %v, want %v", got, tc.want)
			}
		})
	}
}

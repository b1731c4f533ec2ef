package session

import "time"

// Session is the persisted triple reconstructed from storage. RawUser carries the
// JSON-serialized user object; decoding it belongs to the session manager.
type Session struct {
	Token   string
	Expiry  time.Time
	RawUser []byte
}

// Complete reports whether all three fields are present. An incomplete triple is
// treated as no session at all.
func (s *Session) Complete() bool {
	return s != nil && s.Token != "" && !s.Expiry.IsZero() && len(s.RawUser) > 0
}

// Valid reports whether the session is complete and not yet expired at now.
func (s *Session) Valid(now time.Time) bool {
	return s.Complete() && s.Expiry.After(now)
}

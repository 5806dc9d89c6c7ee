// Package sessions implements server-side browser sessions: an opaque
// token cookie on the client, a Session value in a pluggable store on the
// server.
package sessions

import (
	"context"
	"time"
)

// Flash severity levels rendered by the page templates.
const (
	FlashSuccess = "success"
	FlashInfo    = "info"
	FlashWarning = "warning"
	FlashDanger  = "danger"
)

// Flash is a one-time severity-tagged status message shown on the next
// rendered page only.
type Flash struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Session is the server-side state associated with one browser. A zero
// UserID means the session is anonymous. ExpiresAt is zero for
// browser-session lifetimes and set to now+TTL when a user logs in.
type Session struct {
	Token     string    `json:"-"`
	UserID    int64     `json:"user_id,omitempty"`
	Flashes   []Flash   `json:"flashes,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// LoggedIn reports whether the session is bound to a user.
func (s *Session) LoggedIn() bool {
	return s.UserID != 0
}

// AddFlash queues a one-time message for the next rendered page.
func (s *Session) AddFlash(level, message string) {
	s.Flashes = append(s.Flashes, Flash{Level: level, Message: message})
}

// PopFlashes returns queued flashes and removes them from the session.
func (s *Session) PopFlashes() []Flash {
	flashes := s.Flashes
	s.Flashes = nil
	return flashes
}

// clone returns a deep copy so stored state never aliases caller state.
func (s *Session) clone() Session {
	c := *s
	c.Flashes = append([]Flash(nil), s.Flashes...)
	return c
}

// Store persists sessions keyed by their opaque token. A lookup miss is
// (nil, nil), not an error.
type Store interface {
	Get(ctx context.Context, token string) (*Session, error)
	Set(ctx context.Context, token string, s *Session, ttl time.Duration) error
	Clear(ctx context.Context, token string) error
}

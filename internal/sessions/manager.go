package sessions

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/recipe-share/internal/logger"
)

// CookieName is the cookie carrying the signed session token.
const CookieName = "session_token"

// tokenCodec signs session ids for the cookie and verifies them back.
type tokenCodec interface {
	Generate(ctx context.Context, sessionID string) (string, error)
	GetSessionID(ctx context.Context, tokenString string) (string, error)
}

// Manager binds browser cookies to stored sessions: it loads the session
// named by a request's signed cookie, and persists sessions back while
// refreshing the cookie.
type Manager struct {
	store Store
	codec tokenCodec
	ttl   time.Duration
}

// NewManager creates a Manager over the given store and token codec.
// ttl is the lifetime of a logged-in session, counted from login.
func NewManager(store Store, codec tokenCodec, ttl time.Duration) *Manager {
	return &Manager{
		store: store,
		codec: codec,
		ttl:   ttl,
	}
}

// TTL returns the configured logged-in session lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Load resolves the request's session. It never fails: a missing,
// tampered, expired, or unknown cookie yields a fresh anonymous session.
func (m *Manager) Load(ctx context.Context, r *http.Request) *Session {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return &Session{}
	}

	token, err := m.codec.GetSessionID(ctx, cookie.Value)
	if err != nil {
		logger.Log.Debugw("rejected session cookie", "error", err)
		return &Session{}
	}

	session, err := m.store.Get(ctx, token)
	if err != nil {
		logger.Log.Errorw("failed to load session", "error", err)
		return &Session{}
	}
	if session == nil {
		return &Session{}
	}
	if !session.ExpiresAt.IsZero() && time.Now().After(session.ExpiresAt) {
		if err := m.store.Clear(ctx, token); err != nil {
			logger.Log.Errorw("failed to clear expired session", "error", err)
		}
		return &Session{}
	}

	session.Token = token
	return session
}

// Save persists the session and refreshes the signed cookie. It must run
// before the response body or a redirect status is written.
func (m *Manager) Save(ctx context.Context, w http.ResponseWriter, s *Session) error {
	if s.Token == "" {
		s.Token = uuid.NewString()
	}

	ttl := m.ttl
	if !s.ExpiresAt.IsZero() {
		ttl = time.Until(s.ExpiresAt)
		if ttl <= 0 {
			// Lifetime ran out mid-request: drop the record and the cookie.
			if err := m.store.Clear(ctx, s.Token); err != nil {
				return err
			}
			http.SetCookie(w, &http.Cookie{
				Name:     CookieName,
				Value:    "",
				Path:     "/",
				MaxAge:   -1,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			return nil
		}
	}

	if err := m.store.Set(ctx, s.Token, s, ttl); err != nil {
		return err
	}

	signed, err := m.codec.Generate(ctx, s.Token)
	if err != nil {
		return err
	}

	cookie := &http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if !s.ExpiresAt.IsZero() {
		// Marked-persistent login: the cookie outlives the browser.
		cookie.Expires = s.ExpiresAt
		cookie.MaxAge = int(ttl / time.Second)
	}
	http.SetCookie(w, cookie)
	return nil
}

// Login binds the session to userID under a rotated token with a full
// lifetime. The pre-auth record is discarded; queued flashes survive.
func (m *Manager) Login(ctx context.Context, s *Session, userID int64) {
	if s.Token != "" {
		if err := m.store.Clear(ctx, s.Token); err != nil {
			logger.Log.Errorw("failed to drop pre-login session", "error", err)
		}
	}
	s.Token = uuid.NewString()
	s.UserID = userID
	s.ExpiresAt = time.Now().Add(m.ttl)
}

// Logout clears all session state unconditionally. The next Save starts a
// fresh anonymous record, typically holding just the goodbye flash.
func (m *Manager) Logout(ctx context.Context, s *Session) {
	if s.Token != "" {
		if err := m.store.Clear(ctx, s.Token); err != nil {
			logger.Log.Errorw("failed to clear session", "error", err)
		}
	}
	s.Token = ""
	s.UserID = 0
	s.Flashes = nil
	s.ExpiresAt = time.Time{}
}

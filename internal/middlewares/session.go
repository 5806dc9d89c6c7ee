package middlewares

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/recipe-share/internal/sessions"
)

// SessionLoader resolves a request's session.
type SessionLoader interface {
	Load(ctx context.Context, r *http.Request) *sessions.Session
}

// sessionKey is an unexported type for the session context key.
type sessionKey struct{}

// SessionMiddleware returns a middleware that loads the request's session
// once and exposes it to handlers via SessionFromContext.
func SessionMiddleware(loader SessionLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := loader.Load(r.Context(), r)
			ctx := context.WithValue(r.Context(), sessionKey{}, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext returns the session placed by SessionMiddleware. A
// request that did not pass through the middleware gets a fresh anonymous
// session so callers never handle nil.
func SessionFromContext(ctx context.Context) *sessions.Session {
	if s, ok := ctx.Value(sessionKey{}).(*sessions.Session); ok {
		return s
	}
	return &sessions.Session{}
}

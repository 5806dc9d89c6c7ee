package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/sbilibin2017/recipe-share/internal/middlewares"
	"github.com/sbilibin2017/recipe-share/internal/models"
	"github.com/sbilibin2017/recipe-share/internal/sessions"
)

func newGuardedRouter(auth *fakeAuth, m *sessions.Manager) http.Handler {
	r := chi.NewRouter()
	r.Use(middlewares.SessionMiddleware(m))
	r.Get("/protected", func(w http.ResponseWriter, req *http.Request) {
		user, ok := requireLogin(w, req, auth, m)
		if !ok {
			return
		}
		w.Header().Set("X-User", user.Username)
		w.WriteHeader(http.StatusNoContent)
	})
	return r
}

func TestRequireLogin(t *testing.T) {
	t.Run("LoggedIn", func(t *testing.T) {
		m := newManager(t)
		auth := &fakeAuth{currentUser: &models.User{ID: 5, Username: "alice"}}
		router := newGuardedRouter(auth, m)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(loginCookie(t, m, 5))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Equal(t, "alice", rr.Header().Get("X-User"))
	})

	t.Run("Anonymous", func(t *testing.T) {
		m := newManager(t)
		router := newGuardedRouter(&fakeAuth{}, m)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusFound, rr.Code)
		assert.Equal(t, "/login?next=%2Fprotected", rr.Header().Get("Location"))

		session := sessionAfter(t, m, rr)
		assert.Equal(t, []sessions.Flash{
			{Level: sessions.FlashWarning, Message: "Please log in to access that page."},
		}, session.Flashes)
	})

	t.Run("StaleUser", func(t *testing.T) {
		m := newManager(t)
		// The session names a user id the store no longer has.
		router := newGuardedRouter(&fakeAuth{}, m)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(loginCookie(t, m, 404))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusFound, rr.Code)
		assert.Equal(t, "/login?next=%2Fprotected", rr.Header().Get("Location"))
	})

	t.Run("ResolverError", func(t *testing.T) {
		m := newManager(t)
		router := newGuardedRouter(&fakeAuth{currentErr: errors.New("db down")}, m)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(loginCookie(t, m, 5))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

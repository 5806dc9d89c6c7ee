package handlers

import (
	"net/http"

	"github.com/sbilibin2017/recipe-share/internal/middlewares"
	"github.com/sbilibin2017/recipe-share/internal/sessions"
)

// NewLogoutHandler returns an HTTP handler that clears all session state
// unconditionally. It never fails, logged in or not.
func NewLogoutHandler(sm SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := middlewares.SessionFromContext(r.Context())

		sm.Logout(r.Context(), session)
		flashAndRedirect(w, r, sm, session, sessions.FlashInfo, "You have been logged out.", "/")
	}
}

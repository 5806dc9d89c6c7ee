package handlers

import (
	"net/http"
	"net/url"

	"github.com/sbilibin2017/recipe-share/internal/middlewares"
	"github.com/sbilibin2017/recipe-share/internal/models"
	"github.com/sbilibin2017/recipe-share/internal/sessions"
)

// requireLogin resolves the authenticated user or sends the caller to the
// login page carrying the original destination in next. It reports
// whether the protected handler may proceed; on false the redirect has
// already been written and the protected operation must not run.
func requireLogin(w http.ResponseWriter, r *http.Request, users UserResolver, sm SessionManager) (*models.User, bool) {
	session := middlewares.SessionFromContext(r.Context())

	if session.LoggedIn() {
		user, err := users.CurrentUser(r.Context(), session.UserID)
		if err != nil {
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return nil, false
		}
		if user != nil {
			return user, true
		}
		// A session naming a deleted user falls through to the login
		// redirect like any anonymous caller.
	}

	target := "/login?next=" + url.QueryEscape(r.URL.Path)
	flashAndRedirect(w, r, sm, session, sessions.FlashWarning, "Please log in to access that page.", target)
	return nil, false
}

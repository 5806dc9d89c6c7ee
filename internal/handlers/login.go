package handlers

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/sbilibin2017/recipe-share/internal/logger"
	"github.com/sbilibin2017/recipe-share/internal/middlewares"
	"github.com/sbilibin2017/recipe-share/internal/models"
	"github.com/sbilibin2017/recipe-share/internal/services"
	"github.com/sbilibin2017/recipe-share/internal/sessions"
)

// Loginer defines the interface that the service must implement.
type Loginer interface {
	Login(ctx context.Context, username, password string) (*models.User, error)
}

// NewLoginHandler returns an HTTP handler for the login page and its form
// submission. A next parameter carries the destination the caller was
// originally after.
func NewLoginHandler(svc Loginer, users UserResolver, sm SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			data, ok := pageContext(w, r, users, sm, "Log In")
			if !ok {
				return
			}
			data.Next = r.URL.Query().Get("next")
			render(w, "login.html", data)
			return
		}

		session := middlewares.SessionFromContext(r.Context())
		next := r.FormValue("next")

		user, err := svc.Login(r.Context(), r.FormValue("username"), r.FormValue("password"))
		if err != nil {
			switch err {
			case services.ErrInvalidCredentials:
				target := "/login"
				if next != "" {
					target += "?next=" + url.QueryEscape(next)
				}
				flashAndRedirect(w, r, sm, session, sessions.FlashDanger, "Invalid username or password.", target)
			default:
				logger.Log.Errorw("internal server error", "err", err)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		sm.Login(r.Context(), session, user.ID)
		flashAndRedirect(w, r, sm, session, sessions.FlashSuccess, "Logged in successfully.", safeNext(next))
	}
}

// safeNext accepts only site-local paths for the post-login redirect;
// anything else lands on the home page.
func safeNext(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return "/"
}

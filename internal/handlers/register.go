package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/recipe-share/internal/logger"
	"github.com/sbilibin2017/recipe-share/internal/middlewares"
	"github.com/sbilibin2017/recipe-share/internal/services"
	"github.com/sbilibin2017/recipe-share/internal/sessions"
)

// Registerer defines the interface that the service must implement.
type Registerer interface {
	Register(ctx context.Context, username, password string) (int64, error)
}

// NewRegisterHandler returns an HTTP handler for the registration page and
// its form submission. A successful registration logs the new user in.
func NewRegisterHandler(svc Registerer, users UserResolver, sm SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			data, ok := pageContext(w, r, users, sm, "Register")
			if !ok {
				return
			}
			render(w, "register.html", data)
			return
		}

		session := middlewares.SessionFromContext(r.Context())

		id, err := svc.Register(r.Context(), r.FormValue("username"), r.FormValue("password"))
		if err != nil {
			switch err {
			case services.ErrCredentialsRequired:
				flashAndRedirect(w, r, sm, session, sessions.FlashDanger, "Please enter both username and password.", "/register")
			case services.ErrUsernameTaken:
				flashAndRedirect(w, r, sm, session, sessions.FlashDanger, "Username already taken.", "/register")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		sm.Login(r.Context(), session, id)
		flashAndRedirect(w, r, sm, session, sessions.FlashSuccess, "Registration successful. You're logged in.", "/")
	}
}

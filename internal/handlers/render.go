package handlers

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"net/http"

	"github.com/sbilibin2017/recipe-share/internal/logger"
	"github.com/sbilibin2017/recipe-share/internal/middlewares"
	"github.com/sbilibin2017/recipe-share/internal/models"
	"github.com/sbilibin2017/recipe-share/internal/sessions"
)

//go:embed templates/*.html
var templateFS embed.FS

// pages maps a page template to its parsed set. Every page hangs off
// base.html, which provides the shell, navigation, and flash block.
var pages = func() map[string]*template.Template {
	names := []string{"index.html", "detail.html", "recipe_form.html", "register.html", "login.html"}
	m := make(map[string]*template.Template, len(names))
	for _, name := range names {
		m[name] = template.Must(template.ParseFS(templateFS, "templates/base.html", "templates/"+name))
	}
	return m
}()

// SessionManager persists session changes and binds or unbinds users.
type SessionManager interface {
	Save(ctx context.Context, w http.ResponseWriter, s *sessions.Session) error
	Login(ctx context.Context, s *sessions.Session, userID int64)
	Logout(ctx context.Context, s *sessions.Session)
}

// UserResolver resolves a session's user id to the stored user.
type UserResolver interface {
	CurrentUser(ctx context.Context, userID int64) (*models.User, error)
}

// pageData is everything a page template can draw on.
type pageData struct {
	Title   string
	User    *models.User
	Flashes []sessions.Flash
	Recipes []models.RecipeWithOwner
	Recipe  *models.RecipeWithOwner
	Form    models.RecipeInput
	Action  string
	Next    string
}

// pageContext assembles the state every page shares: the viewing user and
// any queued flash messages.
func pageContext(w http.ResponseWriter, r *http.Request, users UserResolver, sm SessionManager, title string) (pageData, bool) {
	session := middlewares.SessionFromContext(r.Context())

	user, err := users.CurrentUser(r.Context(), session.UserID)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return pageData{}, false
	}

	return pageContextFor(w, r, user, sm, title)
}

// pageContextFor is pageContext for handlers that already resolved the
// user. Draining flashes mutates the session, so the drain is persisted
// before any body bytes are written.
func pageContextFor(w http.ResponseWriter, r *http.Request, user *models.User, sm SessionManager, title string) (pageData, bool) {
	session := middlewares.SessionFromContext(r.Context())

	flashes := session.PopFlashes()
	if len(flashes) > 0 {
		if err := sm.Save(r.Context(), w, session); err != nil {
			logger.Log.Errorw("failed to save session", "err", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return pageData{}, false
		}
	}

	return pageData{Title: title, User: user, Flashes: flashes}, true
}

// render executes the page into a buffer first so a template failure can
// still become a clean 500.
func render(w http.ResponseWriter, name string, data pageData) {
	var buf bytes.Buffer
	if err := pages[name].ExecuteTemplate(&buf, "base.html", data); err != nil {
		logger.Log.Errorw("failed to render page", "page", name, "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// redirect picks the status by method: a POST outcome redirects with
// 303 so the browser follows up with a GET.
func redirect(w http.ResponseWriter, r *http.Request, target string) {
	status := http.StatusFound
	if r.Method != http.MethodGet {
		status = http.StatusSeeOther
	}
	http.Redirect(w, r, target, status)
}

// flashAndRedirect queues a one-time message, persists the session, and
// redirects. Every POST handler ends here on both success and rejection.
func flashAndRedirect(w http.ResponseWriter, r *http.Request, sm SessionManager, s *sessions.Session, level, message, target string) {
	s.AddFlash(level, message)
	if err := sm.Save(r.Context(), w, s); err != nil {
		logger.Log.Errorw("failed to save session", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	redirect(w, r, target)
}

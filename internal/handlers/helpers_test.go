package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/recipe-share/internal/jwt"
	"github.com/sbilibin2017/recipe-share/internal/models"
	"github.com/sbilibin2017/recipe-share/internal/sessions"
)

func newManager(t *testing.T) *sessions.Manager {
	t.Helper()
	return sessions.NewManager(sessions.NewMemoryStore(), jwt.New("test-secret", time.Hour), 168*time.Hour)
}

// loginCookie fabricates a logged-in session and returns its cookie.
func loginCookie(t *testing.T, m *sessions.Manager, userID int64) *http.Cookie {
	t.Helper()

	s := &sessions.Session{}
	m.Login(context.Background(), s, userID)

	rr := httptest.NewRecorder()
	require.NoError(t, m.Save(context.Background(), rr, s))

	for _, c := range rr.Result().Cookies() {
		if c.Name == sessions.CookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie in response", sessions.CookieName)
	return nil
}

// sessionAfter loads the session state a response's cookie points at.
func sessionAfter(t *testing.T, m *sessions.Manager, rr *httptest.ResponseRecorder) *sessions.Session {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rr.Result().Cookies() {
		req.AddCookie(c)
	}
	return m.Load(context.Background(), req)
}

// postForm builds a form POST request.
func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

type fakeAuth struct {
	registerID  int64
	registerErr error
	loginUser   *models.User
	loginErr    error
	currentUser *models.User
	currentErr  error
}

func (f *fakeAuth) Register(ctx context.Context, username, password string) (int64, error) {
	return f.registerID, f.registerErr
}

func (f *fakeAuth) Login(ctx context.Context, username, password string) (*models.User, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginUser, nil
}

func (f *fakeAuth) CurrentUser(ctx context.Context, userID int64) (*models.User, error) {
	if f.currentErr != nil {
		return nil, f.currentErr
	}
	if f.currentUser != nil && f.currentUser.ID == userID {
		return f.currentUser, nil
	}
	return nil, nil
}

type fakeRecipes struct {
	listOut     []models.RecipeWithOwner
	listErr     error
	getOut      *models.RecipeWithOwner
	getErr      error
	getOwnedOut *models.RecipeWithOwner
	getOwnedErr error
	createID    int64
	createErr   error
	updateErr   error
	deleteErr   error

	createCalls int
	updateCalls int
	deleteCalls int
}

func (f *fakeRecipes) List(ctx context.Context) ([]models.RecipeWithOwner, error) {
	return f.listOut, f.listErr
}

func (f *fakeRecipes) Get(ctx context.Context, id int64) (*models.RecipeWithOwner, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeRecipes) GetOwned(ctx context.Context, userID, id int64) (*models.RecipeWithOwner, error) {
	if f.getOwnedErr != nil {
		return nil, f.getOwnedErr
	}
	return f.getOwnedOut, nil
}

func (f *fakeRecipes) Create(ctx context.Context, userID int64, in models.RecipeInput) (int64, error) {
	f.createCalls++
	return f.createID, f.createErr
}

func (f *fakeRecipes) Update(ctx context.Context, userID, id int64, in models.RecipeInput) error {
	f.updateCalls++
	return f.updateErr
}

func (f *fakeRecipes) Delete(ctx context.Context, userID, id int64) error {
	f.deleteCalls++
	return f.deleteErr
}

package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sbilibin2017/recipe-share/internal/logger"
	"github.com/sbilibin2017/recipe-share/internal/middlewares"
	"github.com/sbilibin2017/recipe-share/internal/models"
	"github.com/sbilibin2017/recipe-share/internal/services"
	"github.com/sbilibin2017/recipe-share/internal/sessions"
)

// RecipeGetter defines the interface that the service must implement.
type RecipeGetter interface {
	Get(ctx context.Context, id int64) (*models.RecipeWithOwner, error)
}

// recipeID parses the id route parameter. A non-numeric id reads the same
// as an id with no recipe behind it.
func recipeID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// NewRecipeDetailHandler returns an HTTP handler for a single recipe page.
func NewRecipeDetailHandler(svc RecipeGetter, users UserResolver, sm SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := middlewares.SessionFromContext(r.Context())

		id, err := recipeID(r)
		if err != nil {
			flashAndRedirect(w, r, sm, session, sessions.FlashDanger, "Recipe not found.", "/recipes")
			return
		}

		recipe, err := svc.Get(r.Context(), id)
		if err != nil {
			switch err {
			case services.ErrRecipeNotFound:
				flashAndRedirect(w, r, sm, session, sessions.FlashDanger, "Recipe not found.", "/recipes")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		data, ok := pageContext(w, r, users, sm, recipe.Title)
		if !ok {
			return
		}
		data.Recipe = recipe
		render(w, "detail.html", data)
	}
}

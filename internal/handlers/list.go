package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/recipe-share/internal/logger"
	"github.com/sbilibin2017/recipe-share/internal/models"
)

// RecipeLister defines the interface that the service must implement.
type RecipeLister interface {
	List(ctx context.Context) ([]models.RecipeWithOwner, error)
}

// NewRecipeListHandler returns an HTTP handler for the recipe listing,
// served on both the home page and /recipes.
func NewRecipeListHandler(svc RecipeLister, users UserResolver, sm SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recipes, err := svc.List(r.Context())
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		data, ok := pageContext(w, r, users, sm, "All Recipes")
		if !ok {
			return
		}
		data.Recipes = recipes
		render(w, "index.html", data)
	}
}

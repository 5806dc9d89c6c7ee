package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/recipe-share/internal/middlewares"
	"github.com/sbilibin2017/recipe-share/internal/sessions"
)

// RecipeDeleter defines the interface that the service must implement.
type RecipeDeleter interface {
	Delete(ctx context.Context, userID, id int64) error
}

// NewRecipeDeleteHandler returns an HTTP handler that permanently removes
// a recipe. POST only; only the owner succeeds.
func NewRecipeDeleteHandler(svc RecipeDeleter, users UserResolver, sm SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := requireLogin(w, r, users, sm)
		if !ok {
			return
		}

		session := middlewares.SessionFromContext(r.Context())

		id, err := recipeID(r)
		if err != nil {
			flashAndRedirect(w, r, sm, session, sessions.FlashDanger, "Recipe not found.", "/recipes")
			return
		}

		if err := svc.Delete(r.Context(), user.ID, id); err != nil {
			redirectOwnershipFailure(w, r, sm, session, err, "You are not allowed to delete this recipe.")
			return
		}

		flashAndRedirect(w, r, sm, session, sessions.FlashSuccess, "Recipe deleted.", "/recipes")
	}
}

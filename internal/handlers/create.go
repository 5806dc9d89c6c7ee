package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/recipe-share/internal/logger"
	"github.com/sbilibin2017/recipe-share/internal/middlewares"
	"github.com/sbilibin2017/recipe-share/internal/models"
	"github.com/sbilibin2017/recipe-share/internal/services"
	"github.com/sbilibin2017/recipe-share/internal/sessions"
)

// RecipeCreator defines the interface that the service must implement.
type RecipeCreator interface {
	Create(ctx context.Context, userID int64, in models.RecipeInput) (int64, error)
}

// recipeFormInput collects the five recipe fields from a submitted form.
func recipeFormInput(r *http.Request) models.RecipeInput {
	return models.RecipeInput{
		Title:        r.FormValue("title"),
		Description:  r.FormValue("description"),
		Ingredients:  r.FormValue("ingredients"),
		Instructions: r.FormValue("instructions"),
		PrepTime:     r.FormValue("prep_time"),
	}
}

// NewRecipeCreateHandler returns an HTTP handler for the new-recipe form.
// Both methods require a logged-in caller.
func NewRecipeCreateHandler(svc RecipeCreator, users UserResolver, sm SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := requireLogin(w, r, users, sm)
		if !ok {
			return
		}

		if r.Method == http.MethodGet {
			data, ok := pageContextFor(w, r, user, sm, "New Recipe")
			if !ok {
				return
			}
			data.Action = "Create"
			render(w, "recipe_form.html", data)
			return
		}

		session := middlewares.SessionFromContext(r.Context())

		_, err := svc.Create(r.Context(), user.ID, recipeFormInput(r))
		if err != nil {
			switch err {
			case services.ErrTitleRequired:
				flashAndRedirect(w, r, sm, session, sessions.FlashDanger, "Title is required.", "/recipes/new")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		flashAndRedirect(w, r, sm, session, sessions.FlashSuccess, "Recipe created.", "/recipes")
	}
}

package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/sbilibin2017/recipe-share/internal/logger"
	"github.com/sbilibin2017/recipe-share/internal/middlewares"
	"github.com/sbilibin2017/recipe-share/internal/models"
	"github.com/sbilibin2017/recipe-share/internal/services"
	"github.com/sbilibin2017/recipe-share/internal/sessions"
)

// RecipeUpdater defines the interface that the service must implement.
type RecipeUpdater interface {
	GetOwned(ctx context.Context, userID, id int64) (*models.RecipeWithOwner, error)
	Update(ctx context.Context, userID, id int64, in models.RecipeInput) error
}

// NewRecipeEditHandler returns an HTTP handler for the edit form. Only the
// owner reaches the form or lands an update; an update overwrites all five
// mutable fields.
func NewRecipeEditHandler(svc RecipeUpdater, users UserResolver, sm SessionManager) http.HandlerFunc {
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

		if r.Method == http.MethodGet {
			recipe, err := svc.GetOwned(r.Context(), user.ID, id)
			if err != nil {
				redirectOwnershipFailure(w, r, sm, session, err, "You are not allowed to edit this recipe.")
				return
			}

			data, ok := pageContextFor(w, r, user, sm, "Edit Recipe")
			if !ok {
				return
			}
			data.Action = "Edit"
			data.Recipe = recipe
			data.Form = models.RecipeInput{
				Title:        recipe.Title,
				Description:  recipe.Description,
				Ingredients:  recipe.Ingredients,
				Instructions: recipe.Instructions,
				PrepTime:     recipe.PrepTime,
			}
			render(w, "recipe_form.html", data)
			return
		}

		err = svc.Update(r.Context(), user.ID, id, recipeFormInput(r))
		if err != nil {
			switch err {
			case services.ErrTitleRequired:
				flashAndRedirect(w, r, sm, session, sessions.FlashDanger, "Title is required.", "/recipes/"+strconv.FormatInt(id, 10)+"/edit")
			default:
				redirectOwnershipFailure(w, r, sm, session, err, "You are not allowed to edit this recipe.")
			}
			return
		}

		flashAndRedirect(w, r, sm, session, sessions.FlashSuccess, "Recipe updated.", "/recipes/"+strconv.FormatInt(id, 10))
	}
}

// redirectOwnershipFailure translates the two ownership lookup failures
// into their soft redirects; anything else is a server error.
func redirectOwnershipFailure(w http.ResponseWriter, r *http.Request, sm SessionManager, s *sessions.Session, err error, forbiddenMessage string) {
	switch err {
	case services.ErrRecipeNotFound:
		flashAndRedirect(w, r, sm, s, sessions.FlashDanger, "Recipe not found.", "/recipes")
	case services.ErrNotRecipeOwner:
		flashAndRedirect(w, r, sm, s, sessions.FlashDanger, forbiddenMessage, "/recipes")
	default:
		logger.Log.Errorw("internal server error", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

package services

import (
	"context"
	"errors"
	"strings"

	"github.com/sbilibin2017/recipe-share/internal/logger"
	"github.com/sbilibin2017/recipe-share/internal/models"
)

// Error variables
var (
	ErrTitleRequired  = errors.New("title is required")
	ErrRecipeNotFound = errors.New("recipe not found")
	ErrNotRecipeOwner = errors.New("recipe belongs to another user")
)

// RecipeReader defines read-only operations for recipes.
type RecipeReader interface {
	List(ctx context.Context) ([]models.RecipeWithOwner, error)
	GetByID(ctx context.Context, id int64) (*models.RecipeWithOwner, error)
}

// RecipeWriter defines write operations for recipes.
type RecipeWriter interface {
	Save(ctx context.Context, userID int64, in models.RecipeInput) (int64, error)
	Update(ctx context.Context, id int64, in models.RecipeInput) error
	Delete(ctx context.Context, id int64) error
}

// RecipeService enforces the recipe rules: anyone reads, only the owner
// mutates, a persisted title is never empty.
type RecipeService struct {
	reader RecipeReader
	writer RecipeWriter
}

// NewRecipeService creates a new RecipeService instance.
func NewRecipeService(reader RecipeReader, writer RecipeWriter) *RecipeService {
	return &RecipeService{
		reader: reader,
		writer: writer,
	}
}

// trimInput trims every submitted field at the outer boundary before
// validation and storage.
func trimInput(in models.RecipeInput) models.RecipeInput {
	return models.RecipeInput{
		Title:        strings.TrimSpace(in.Title),
		Description:  strings.TrimSpace(in.Description),
		Ingredients:  strings.TrimSpace(in.Ingredients),
		Instructions: strings.TrimSpace(in.Instructions),
		PrepTime:     strings.TrimSpace(in.PrepTime),
	}
}

// List returns all recipes with their owners' usernames, newest first.
func (svc *RecipeService) List(ctx context.Context) ([]models.RecipeWithOwner, error) {
	recipes, err := svc.reader.List(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list recipes", "err", err)
		return nil, err
	}

	return recipes, nil
}

// Get returns one recipe with its owner's username.
func (svc *RecipeService) Get(ctx context.Context, id int64) (*models.RecipeWithOwner, error) {
	recipe, err := svc.reader.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get recipe", "err", err)
		return nil, err
	}
	if recipe == nil {
		return nil, ErrRecipeNotFound
	}

	return recipe, nil
}

// GetOwned returns the recipe only when userID owns it. Absence wins over
// ownership: an unknown id is ErrRecipeNotFound for everyone.
func (svc *RecipeService) GetOwned(ctx context.Context, userID, id int64) (*models.RecipeWithOwner, error) {
	recipe, err := svc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if recipe.UserID != userID {
		logger.Log.Warnw("recipe access denied", "recipe_id", id, "user_id", userID)
		return nil, ErrNotRecipeOwner
	}

	return recipe, nil
}

// Create inserts a recipe owned by userID and returns its id.
func (svc *RecipeService) Create(ctx context.Context, userID int64, in models.RecipeInput) (int64, error) {
	in = trimInput(in)
	if in.Title == "" {
		return 0, ErrTitleRequired
	}

	id, err := svc.writer.Save(ctx, userID, in)
	if err != nil {
		logger.Log.Errorw("failed to save recipe", "err", err)
		return 0, err
	}

	return id, nil
}

// Update overwrites all five mutable fields of a recipe the caller owns.
// Blank submitted fields blank the stored ones.
func (svc *RecipeService) Update(ctx context.Context, userID, id int64, in models.RecipeInput) error {
	if _, err := svc.GetOwned(ctx, userID, id); err != nil {
		return err
	}

	in = trimInput(in)
	if in.Title == "" {
		return ErrTitleRequired
	}

	if err := svc.writer.Update(ctx, id, in); err != nil {
		logger.Log.Errorw("failed to update recipe", "err", err)
		return err
	}

	return nil
}

// Delete permanently removes a recipe the caller owns.
func (svc *RecipeService) Delete(ctx context.Context, userID, id int64) error {
	if _, err := svc.GetOwned(ctx, userID, id); err != nil {
		return err
	}

	if err := svc.writer.Delete(ctx, id); err != nil {
		logger.Log.Errorw("failed to delete recipe", "err", err)
		return err
	}

	return nil
}

package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/sbilibin2017/recipe-share/internal/logger"
	"github.com/sbilibin2017/recipe-share/internal/models"
)

// RecipeReadRepository handles recipe read operations.
type RecipeReadRepository struct {
	db *sqlx.DB
}

func NewRecipeReadRepository(db *sqlx.DB) *RecipeReadRepository {
	return &RecipeReadRepository{db: db}
}

// List returns every recipe joined with its owner's username, newest
// first. created_at has second resolution, so equal timestamps fall back
// to id order.
func (r *RecipeReadRepository) List(ctx context.Context) ([]models.RecipeWithOwner, error) {
	const query = `
		SELECT r.id, r.user_id, r.title, r.description, r.ingredients,
		       r.instructions, r.prep_time, r.created_at, u.username
		FROM recipes r
		JOIN users u ON u.id = r.user_id
		ORDER BY r.created_at DESC, r.id DESC
	`

	var recipes []models.RecipeWithOwner
	err := r.db.SelectContext(ctx, &recipes, query)

	logger.Log.Debugw("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"result", len(recipes),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return recipes, nil
}

// GetByID returns one recipe joined with its owner's username, or nil
// when the id is unknown.
func (r *RecipeReadRepository) GetByID(ctx context.Context, id int64) (*models.RecipeWithOwner, error) {
	const query = `
		SELECT r.id, r.user_id, r.title, r.description, r.ingredients,
		       r.instructions, r.prep_time, r.created_at, u.username
		FROM recipes r
		JOIN users u ON u.id = r.user_id
		WHERE r.id = ?
	`

	var recipe models.RecipeWithOwner
	err := r.db.GetContext(ctx, &recipe, query, id)

	logger.Log.Debugw("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &recipe, nil
}

// RecipeWriteRepository handles recipe write operations.
type RecipeWriteRepository struct {
	db *sqlx.DB
}

func NewRecipeWriteRepository(db *sqlx.DB) *RecipeWriteRepository {
	return &RecipeWriteRepository{db: db}
}

// Save inserts a recipe owned by userID and returns the generated id.
// created_at is assigned by the database.
func (r *RecipeWriteRepository) Save(ctx context.Context, userID int64, in models.RecipeInput) (int64, error) {
	const query = `
		INSERT INTO recipes (user_id, title, description, ingredients, instructions, prep_time)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	args := []any{userID, in.Title, in.Description, in.Ingredients, in.Instructions, in.PrepTime}

	res, err := r.db.ExecContext(ctx, query, args...)

	var id int64
	if res != nil && err == nil {
		id, err = res.LastInsertId()
	}

	logger.Log.Debugw("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", id,
		"error", err,
	)

	if err != nil {
		return 0, err
	}

	return id, nil
}

// Update overwrites the five mutable fields of the recipe. Owner and
// created_at never change.
func (r *RecipeWriteRepository) Update(ctx context.Context, id int64, in models.RecipeInput) error {
	const query = `
		UPDATE recipes
		SET title = ?, description = ?, ingredients = ?, instructions = ?, prep_time = ?
		WHERE id = ?
	`
	args := []any{in.Title, in.Description, in.Ingredients, in.Instructions, in.PrepTime, id}

	res, err := r.db.ExecContext(ctx, query, args...)

	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Debugw("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", rowsAffected,
		"error", err,
	)

	return err
}

// Delete removes the recipe row.
func (r *RecipeWriteRepository) Delete(ctx context.Context, id int64) error {
	const query = `
		DELETE FROM recipes
		WHERE id = ?
	`

	res, err := r.db.ExecContext(ctx, query, id)

	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Debugw("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id},
		"result", rowsAffected,
		"error", err,
	)

	return err
}

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

// UserReadRepository handles user read operations.
type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

// GetByUsername returns the user with the given username, or nil when no
// such user exists.
func (r *UserReadRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	const query = `
		SELECT id, username, password_hash
		FROM users
		WHERE username = ?
	`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, username)

	logger.Log.Debugw("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{username},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// GetByID returns the user with the given id, or nil when no such user
// exists.
func (r *UserReadRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	const query = `
		SELECT id, username, password_hash
		FROM users
		WHERE id = ?
	`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, id)

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

	return &user, nil
}

// UserWriteRepository handles user write operations.
type UserWriteRepository struct {
	db *sqlx.DB
}

func NewUserWriteRepository(db *sqlx.DB) *UserWriteRepository {
	return &UserWriteRepository{db: db}
}

// Save inserts a user and returns the generated id. The username's UNIQUE
// constraint is the backstop against duplicates racing past the service
// check.
func (r *UserWriteRepository) Save(ctx context.Context, username, passwordHash string) (int64, error) {
	const query = `
		INSERT INTO users (username, password_hash)
		VALUES (?, ?)
	`

	res, err := r.db.ExecContext(ctx, query, username, passwordHash)

	var id int64
	if res != nil && err == nil {
		id, err = res.LastInsertId()
	}

	logger.Log.Debugw("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{username},
		"result", id,
		"error", err,
	)

	if err != nil {
		return 0, err
	}

	return id, nil
}

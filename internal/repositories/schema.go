package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// InitSchema creates the users and recipes tables when they do not exist
// yet. It is idempotent and runs on every startup.
func InitSchema(ctx context.Context, db *sqlx.DB) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS recipes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL REFERENCES users (id),
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		ingredients TEXT NOT NULL DEFAULT '',
		instructions TEXT NOT NULL DEFAULT '',
		prep_time TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	`

	_, err := db.ExecContext(ctx, schema)
	return err
}

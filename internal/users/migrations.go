package users

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// UserIndexes holds the index definitions for the users table. The unique
// lower(email) index enforces case-insensitive email uniqueness at the store
// level; the created_at and name indexes back the list ordering.
var UserIndexes = []string{
	"CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_lower ON users (lower(email))",
	"CREATE INDEX IF NOT EXISTS idx_users_created_at ON users (created_at DESC)",
	"CREATE INDEX IF NOT EXISTS idx_users_name ON users (name)",
}

// CreateTables creates the users table if it does not exist
func CreateTables(ctx context.Context, db *bun.DB) error {
	models := []interface{}{
		(*UserSchema)(nil),
	}

	for _, model := range models {
		_, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create table for model %T: %w", model, err)
		}
	}

	return nil
}

// CreateIndexes creates the users table indexes
func CreateIndexes(ctx context.Context, db *bun.DB) error {
	for _, indexSQL := range UserIndexes {
		_, err := db.ExecContext(ctx, indexSQL)
		if err != nil {
			return fmt.Errorf("failed to create index with SQL %q: %w", indexSQL, err)
		}
	}

	return nil
}

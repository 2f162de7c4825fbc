package users

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// UserSchema represents the users table schema in PostgreSQL
type UserSchema struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID        uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Name      string    `bun:"name,notnull" json:"name"`
	Email     string    `bun:"email,notnull" json:"email"`
	Age       int       `bun:"age,notnull" json:"age"`
	Role      string    `bun:"role,notnull,default:'User'" json:"role"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}

// PostgresStore implements the UserStore interface with PostgreSQL storage
type PostgresStore struct {
	db *bun.DB
}

// NewPostgresStore creates a new PostgreSQL user store
func NewPostgresStore(db *bun.DB) *PostgresStore {
	return &PostgresStore{
		db: db,
	}
}

// ListUsers returns all users ordered by creation time, newest first
func (s *PostgresStore) ListUsers(ctx context.Context) ([]*User, error) {
	var schemas []UserSchema
	err := s.db.NewSelect().
		Model(&schemas).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, wrapStoreError("list users", err)
	}

	users := make([]*User, len(schemas))
	for i, schema := range schemas {
		users[i] = UserSchemaToUser(schema)
	}
	return users, nil
}

// GetUser retrieves a user by ID
func (s *PostgresStore) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	var schema UserSchema
	err := s.db.NewSelect().
		Model(&schema).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewUserNotFoundError(id.String())
		}
		return nil, wrapStoreError("get user", err)
	}

	return UserSchemaToUser(schema), nil
}

// GetUserByEmail retrieves a user by case-insensitive email match, optionally
// excluding one record. A nil result with a nil error means no match.
func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string, excludeID *uuid.UUID) (*User, error) {
	var schema UserSchema
	query := s.db.NewSelect().
		Model(&schema).
		Where("lower(email) = ?", NormalizeEmail(email))
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}

	err := query.Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapStoreError("get user by email", err)
	}

	return UserSchemaToUser(schema), nil
}

// CreateUser inserts a new user and returns the stored record
func (s *PostgresStore) CreateUser(ctx context.Context, user *User) (*User, error) {
	schema := UserToUserSchema(user)

	_, err := s.db.NewInsert().
		Model(&schema).
		Returning("*").
		Exec(ctx)
	if err != nil {
		if isUniqueEmailViolation(err) {
			return nil, NewDuplicateEmailError(user.Email)
		}
		return nil, wrapStoreError("create user", err)
	}

	return UserSchemaToUser(schema), nil
}

// UpdateUser writes the merged record back and returns the stored version
func (s *PostgresStore) UpdateUser(ctx context.Context, user *User) (*User, error) {
	schema := UserToUserSchema(user)

	result, err := s.db.NewUpdate().
		Model(&schema).
		Where("id = ?", user.ID).
		Returning("*").
		Exec(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewUserNotFoundError(user.ID.String())
		}
		if isUniqueEmailViolation(err) {
			return nil, NewDuplicateEmailError(user.Email)
		}
		return nil, wrapStoreError("update user", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, NewUserNotFoundError(user.ID.String())
	}

	return UserSchemaToUser(schema), nil
}

// DeleteUser removes a user permanently and returns the deleted record
func (s *PostgresStore) DeleteUser(ctx context.Context, id uuid.UUID) (*User, error) {
	var schema UserSchema
	result, err := s.db.NewDelete().
		Model(&schema).
		Where("id = ?", id).
		Returning("*").
		Exec(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewUserNotFoundError(id.String())
		}
		return nil, wrapStoreError("delete user", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, NewUserNotFoundError(id.String())
	}

	return UserSchemaToUser(schema), nil
}

// wrapStoreError classifies a storage failure: connectivity problems surface
// as a StoreUnavailable error, anything else is wrapped with the operation
// that failed.
func wrapStoreError(op string, err error) error {
	if isConnectionFailure(err) {
		return NewStoreUnavailableError(err)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

// isConnectionFailure reports whether the error means the database could not
// be reached, as opposed to a query-level failure.
func isConnectionFailure(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, driver.ErrBadConn)
}

// isUniqueEmailViolation detects a violation of the unique email index so the
// store-level constraint surfaces as a duplicate email instead of a raw
// database failure. The constraint is the authoritative backstop for the
// non-atomic check-then-insert sequence in the service layer.
func isUniqueEmailViolation(err error) bool {
	return strings.Contains(err.Error(), "duplicate key value violates unique constraint") ||
		strings.Contains(err.Error(), "idx_users_email_lower")
}

// Helper conversion functions
func UserSchemaToUser(schema UserSchema) *User {
	return &User{
		ID:        schema.ID,
		Name:      schema.Name,
		Email:     schema.Email,
		Age:       schema.Age,
		Role:      Role(schema.Role),
		CreatedAt: schema.CreatedAt,
		UpdatedAt: schema.UpdatedAt,
	}
}

func UserToUserSchema(user *User) UserSchema {
	return UserSchema{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Age:       user.Age,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

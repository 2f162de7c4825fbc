package users

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	store  UserStore
	logger *zap.Logger
}

// NewUserService creates a new user service instance
func NewUserService(store UserStore, logger *zap.Logger) *UserServiceImpl {
	return &UserServiceImpl{
		store:  store,
		logger: logger,
	}
}

// ListUsers returns all users, newest first
func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]*User, error) {
	return s.store.ListUsers(ctx)
}

// GetUser retrieves a single user by its string identifier
func (s *UserServiceImpl) GetUser(ctx context.Context, id string) (*User, error) {
	userID, err := parseUserID(id)
	if err != nil {
		return nil, err
	}
	return s.store.GetUser(ctx, userID)
}

// CreateUser validates the request, enforces email uniqueness and inserts the
// record. Role defaults to User when omitted. The stored name is trimmed and
// the stored email lower-cased.
func (s *UserServiceImpl) CreateUser(ctx context.Context, req *CreateUserRequest) (*User, error) {
	role := req.Role
	if role == "" {
		role = string(RoleUser)
	}

	if fields := ValidateUser(req.Name, req.Email, req.Age, role); len(fields) > 0 {
		return nil, NewValidationFailedError(fields)
	}

	email := NormalizeEmail(req.Email)

	// Application-level uniqueness check. The unique index on lower(email)
	// remains the backstop for concurrent creations with the same address.
	existing, err := s.store.GetUserByEmail(ctx, email, nil)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, NewDuplicateEmailError(email)
	}

	now := time.Now()
	user := &User{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(req.Name),
		Email:     email,
		Age:       *req.Age,
		Role:      Role(role),
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.store.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User created",
		zap.String("user_id", created.ID.String()),
		zap.String("email", created.Email))

	return created, nil
}

// UpdateUser merges a partial update onto the existing record, re-validates
// the merged result and re-checks email uniqueness when the email changes.
// The original record stays untouched when any check fails.
func (s *UserServiceImpl) UpdateUser(ctx context.Context, id string, req *UpdateUserRequest) (*User, error) {
	userID, err := parseUserID(id)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	merged := *existing
	if req.Name != nil {
		merged.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		merged.Email = NormalizeEmail(*req.Email)
	}
	if req.Age != nil {
		merged.Age = *req.Age
	}
	if req.Role != nil {
		merged.Role = Role(*req.Role)
	}

	if fields := ValidateUser(merged.Name, merged.Email, &merged.Age, string(merged.Role)); len(fields) > 0 {
		return nil, NewValidationFailedError(fields)
	}

	if req.Email != nil {
		other, err := s.store.GetUserByEmail(ctx, merged.Email, &userID)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, NewDuplicateEmailError(merged.Email)
		}
	}

	merged.UpdatedAt = time.Now()

	updated, err := s.store.UpdateUser(ctx, &merged)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User updated", zap.String("user_id", updated.ID.String()))

	return updated, nil
}

// DeleteUser removes a user permanently and returns the deleted record
func (s *UserServiceImpl) DeleteUser(ctx context.Context, id string) (*User, error) {
	userID, err := parseUserID(id)
	if err != nil {
		return nil, err
	}

	deleted, err := s.store.DeleteUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User deleted", zap.String("user_id", deleted.ID.String()))

	return deleted, nil
}

// parseUserID validates the identifier before any store call is made
func parseUserID(id string) (uuid.UUID, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, NewInvalidUserIDError(id)
	}
	return userID, nil
}

package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskmate-api/internal/domain"
	"github.com/phrazzld/taskmate-api/internal/platform/logger"
	"github.com/phrazzld/taskmate-api/internal/store"
)

// RegisterResult reports the outcome of RegisterUser.
type RegisterResult struct {
	// Created is false when a user with the email already existed.
	Created bool
	// UserID is the new user's id; uuid.Nil when Created is false.
	UserID uuid.UUID
}

// UserService provides user-related operations
type UserService interface {
	// RegisterUser stores a user for email unless one already exists.
	// profile is kept verbatim.
	RegisterUser(ctx context.Context, email string, profile json.RawMessage) (*RegisterResult, error)
}

// userServiceImpl implements the UserService interface
type userServiceImpl struct {
	users    store.UserStore
	logger   *slog.Logger
	timeFunc func() time.Time
}

// NewUserService creates a new UserService.
// It returns an error if the user store is nil.
func NewUserService(users store.UserStore, logger *slog.Logger) (UserService, error) {
	if users == nil {
		return nil, &UserServiceError{Operation: "create_service", Message: "user store cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &userServiceImpl{
		users:    users,
		logger:   logger.With(slog.String("component", "user_service")),
		timeFunc: time.Now,
	}, nil
}

// RegisterUser implements UserService.RegisterUser
func (s *userServiceImpl) RegisterUser(
	ctx context.Context,
	email string,
	profile json.RawMessage,
) (*RegisterResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(email, profile, s.timeFunc())
	if err != nil {
		return nil, NewUserServiceError("register_user", "invalid user", err)
	}

	created, err := s.users.CreateIfNotExists(ctx, user)
	if err != nil {
		log.Error("failed to register user", slog.String("error", err.Error()))
		return nil, NewUserServiceError("register_user", "failed to save user", err)
	}

	if !created {
		log.Debug("user already registered")
		return &RegisterResult{Created: false}, nil
	}

	log.Info("user registered", slog.String("user_id", user.ID.String()))
	return &RegisterResult{Created: true, UserID: user.ID}, nil
}

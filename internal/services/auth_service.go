package services

import (
	"context"
	"errors"
	"fmt"

	"recipebook/internal/logger"
	"recipebook/internal/models"
	"recipebook/internal/repositories"
)

// SignupInput carries the fields accepted by Signup.
type SignupInput struct {
	Username string `validate:"required"`
	Bio      string
	ImageURL string
	Password string `validate:"required"`
}

var signupJSONNames = map[string]string{
	"Username": "username",
	"Password": "password",
}

// AuthService handles account creation and credential checks.
type AuthService struct {
	userRepo repositories.UserRepository
	events   EventPublisher
	log      *logger.Logger
}

// NewAuthService creates a new AuthService. events may be nil.
func NewAuthService(userRepo repositories.UserRepository, events EventPublisher, log *logger.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		events:   events,
		log:      log,
	}
}

// Signup hashes the password and persists a new user. A taken username
// yields ErrUsernameTaken and leaves no partial state behind.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	if err := models.Validator().Struct(in); err != nil {
		return nil, newValidationError(err, signupJSONNames)
	}

	user := &models.User{
		Username: in.Username,
		Bio:      in.Bio,
		ImageURL: in.ImageURL,
	}
	if err := user.SetPassword(in.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s", ErrUsernameTaken, in.Username)
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("user signed up")
	publish(s.events, s.log, EventUserSignedUp, map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
	})
	return user, nil
}

// Login returns the user whose password matches. Unknown usernames and wrong
// passwords both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !user.VerifyPassword(password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// CurrentUser loads the user a session points at.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user %s: %w", userID, err)
	}
	return user, nil
}

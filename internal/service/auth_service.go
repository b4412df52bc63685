package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"carlog/internal/auth"
	apperrors "carlog/internal/errors"
	"carlog/internal/model"
	"carlog/internal/repository"
	"carlog/internal/validation"
)

const bcryptCost = 10

// AuthService handles registration and session lifecycle.
type AuthService interface {
	Register(ctx context.Context, in *validation.RegisterUserInput) (*model.User, error)
	Login(ctx context.Context, email, password string) (sessionID string, user *model.User, err error)
	Logout(ctx context.Context, sessionID string) error
}

type authService struct {
	users    repository.UserRepository
	sessions auth.SessionStore
	gateway  *validation.Gateway
	now      func() time.Time
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, sessions auth.SessionStore, gateway *validation.Gateway) AuthService {
	return &authService{
		users:    users,
		sessions: sessions,
		gateway:  gateway,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Register validates the payload and creates a user with a hashed password.
func (s *authService) Register(ctx context.Context, in *validation.RegisterUserInput) (*model.User, error) {
	if err := s.gateway.ValidateUser(in); err != nil {
		return nil, err
	}

	// Advisory existence check; the unique index on users.email is the
	// backstop for the check-then-insert race.
	existing, err := s.users.FindByEmail(ctx, in.Email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrEmailExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := in.Role
	if role == "" {
		role = model.RoleUser
	}

	user := &model.User{
		Email:          in.Email,
		PasswordHash:   string(hashedPassword),
		FullName:       in.FullName,
		PhoneNumber:    in.PhoneNumber,
		TelegramChatID: in.TelegramChatID,
		Role:           role,
		IsActive:       true,
		CreatedAt:      s.now(),
		LastLogin:      nil,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrEmailExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	created, err := s.users.FindByID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("read created user: %w", err)
	}
	return created, nil
}

// Login verifies credentials and issues a long-lived session. Unknown email
// and wrong password return the same error; the disabled-account check runs
// only after credential verification so the error path does not reveal
// whether an account exists.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	if email == "" || password == "" {
		return "", nil, apperrors.ErrMissingCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apperrors.ErrInvalidCredentials
		}
		// A store outage is not a credential failure.
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return "", nil, apperrors.ErrAccountDisabled
	}

	loginAt := s.now()
	if err := s.users.UpdateLastLogin(ctx, user.ID, loginAt); err != nil {
		return "", nil, fmt.Errorf("update last login: %w", err)
	}
	user.LastLogin = &loginAt

	sessionID, err := s.sessions.Create(ctx, &auth.Principal{UserID: user.ID, Role: user.Role})
	if err != nil {
		return "", nil, fmt.Errorf("create session: %w", err)
	}

	return sessionID, user, nil
}

// Logout destroys the session if one exists. It always succeeds.
func (s *authService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	_ = s.sessions.Destroy(ctx, sessionID)
	return nil
}

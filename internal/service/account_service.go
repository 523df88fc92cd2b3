package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/places-service/internal/auth"
	"github.com/spec-kit/places-service/internal/config"
	"github.com/spec-kit/places-service/internal/domain"
	"github.com/spec-kit/places-service/internal/events"
	"github.com/spec-kit/places-service/internal/repository"
	"github.com/spec-kit/places-service/internal/upload"
	apperrors "github.com/spec-kit/places-service/pkg/util"
)

// AccountService coordinates signup, login and user listing.
type AccountService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
}

// AccountDependencies bundles requirements for the account service.
type AccountDependencies struct {
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAccountService builds the service.
func NewAccountService(cfg config.Config, deps AccountDependencies) *AccountService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountService{
		users:      deps.UserRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL()),
		dispatcher: deps.Dispatcher,
		logger:     logger,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Register creates a new account with an empty place set and issues a
// token. The staged profile image is discarded whenever persistence
// fails after staging.
func (s *AccountService) Register(ctx context.Context, name, email, password string, image *upload.StagedFile) (*domain.User, string, time.Time, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		s.discard(image)
		return nil, "", time.Time{}, apperrors.NewConflict("user email already exists, try login instead", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		s.discard(image)
		return nil, "", time.Time{}, apperrors.NewStorageFailure("signup failed, please try again later", err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		s.discard(image)
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hash,
		Places:       domain.NewPlaceSet(),
	}
	if image != nil {
		user.ImagePath = image.Path
	}
	if err := s.users.Create(ctx, user); err != nil {
		s.discard(image)
		return nil, "", time.Time{}, apperrors.NewStorageFailure("could not sign up, try again later", err)
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.Event{
		Type:    events.EventUserRegistered,
		UserID:  user.ID,
		Payload: events.UserRegisteredPayload{Email: user.Email},
	})
	return user, token, exp, nil
}

// Login authenticates by email and password. A missing account and a
// wrong password produce the same error so accounts cannot be
// enumerated.
func (s *AccountService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("could not identify user, credentials seem to be wrong")
		}
		return nil, "", time.Time{}, apperrors.NewStorageFailure("logging in failed, please try again later", err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("could not identify user, credentials seem to be wrong")
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return user, token, exp, nil
}

// ListUsers returns all accounts; the password hash never leaves the
// service boundary in any response mapping.
func (s *AccountService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.NewStorageFailure("fetching users failed, please try again later", err)
	}
	return users, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AccountService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AccountService) discard(image *upload.StagedFile) {
	if image == nil {
		return
	}
	if err := image.Remove(); err != nil {
		s.logger.Warn("failed to remove staged image", zap.String("path", image.Path), zap.Error(err))
	}
}

func (s *AccountService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

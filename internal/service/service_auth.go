package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-story-sync/internal/config"
	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/store"
	"github.com/MKhiriev/go-story-sync/internal/utils"
	"github.com/MKhiriev/go-story-sync/models"
	"golang.org/x/crypto/bcrypt"
)

type authService struct {
	users store.UserRepository

	// token parameters; ParseToken rejects tokens of another issuer
	signKey  string
	issuer   string
	lifetime time.Duration

	logger *logger.Logger
}

func NewAuthService(users store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		users:    users,
		signKey:  cfg.TokenSignKey,
		issuer:   cfg.TokenIssuer,
		lifetime: cfg.TokenDuration,
		logger:   logger,
	}
}

func hasCredentials(user models.User) bool {
	return user.Login != "" && user.Password != ""
}

// RegisterUser stores the bcrypt hash of the password, never the password.
// A user without a display name is shown by login.
func (a *authService) RegisterUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx).With().Str("func", "authService.RegisterUser").Str("login", user.Login).Logger()

	if !hasCredentials(user) {
		log.Warn().Msg("login or password missing")
		return models.User{}, ErrInvalidDataProvided
	}

	// bcrypt refuses passwords over 72 bytes
	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Err(err).Msg("failed to hash password")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	user.PasswordHash, user.Password = string(hash), ""
	if user.Name == "" {
		user.Name = user.Login
	}

	created, err := a.users.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Msg("user creation failed")
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

// Login returns the user without its password hash. Unknown logins keep
// the repository error (store.ErrNoUserWasFound); a bad password is
// ErrWrongPassword.
func (a *authService) Login(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx).With().Str("func", "authService.Login").Str("login", user.Login).Logger()

	if !hasCredentials(user) {
		log.Warn().Msg("login or password missing")
		return models.User{}, ErrInvalidDataProvided
	}

	found, err := a.users.FindUserByLogin(ctx, user.Login)
	if err != nil {
		log.Err(err).Msg("user lookup failed")
		return models.User{}, fmt.Errorf("find user: %w", err)
	}

	switch err = bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(user.Password)); {
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		log.Warn().Int64("user_id", found.UserID).Msg("wrong password")
		return models.User{}, ErrWrongPassword
	case err != nil:
		log.Err(err).Int64("user_id", found.UserID).Msg("stored password hash is unusable")
		return models.User{}, fmt.Errorf("%w: %w", ErrWrongPassword, err)
	}

	found.PasswordHash = ""
	return found, nil
}

func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.issuer, user.UserID, a.lifetime, a.signKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}
	return token, nil
}

// ParseToken folds every validation failure into ErrTokenIsExpiredOrInvalid.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.signKey, a.issuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "authService.ParseToken").Msg("token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}
	return token, nil
}

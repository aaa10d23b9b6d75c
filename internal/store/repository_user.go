package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/models"
	"github.com/jackc/pgerrcode"
)

type userRepository struct {
	*DB
	logger *logger.Logger
}

func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateUser returns user with the id and creation time assigned by the
// database. A taken login is ErrLoginAlreadyExists.
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	err := r.QueryRowContext(ctx, createUser, user.Login, user.PasswordHash, user.Name).
		Scan(&user.UserID, &user.Login, &user.PasswordHash, &user.Name, &user.CreatedAt)
	switch {
	case err == nil:
		return user, nil
	case postgresError(err) == pgerrcode.UniqueViolation:
		log.Warn().Str("func", "userRepository.CreateUser").Str("login", user.Login).Msg("login taken")
		return models.User{}, ErrLoginAlreadyExists
	default:
		log.Err(err).Str("func", "userRepository.CreateUser").Str("login", user.Login).Msg("failed to insert user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
}

func (r *userRepository) FindUserByLogin(ctx context.Context, login string) (models.User, error) {
	return r.findUser(ctx, "login", login)
}

func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	return r.findUser(ctx, "user_id", userID)
}

// findUser reports a missing row as ErrNoUserWasFound.
func (r *userRepository) findUser(ctx context.Context, column string, value any) (models.User, error) {
	log := logger.FromContext(ctx).With().Str("func", "userRepository.findUser").Interface(column, value).Logger()

	query, args, err := buildFindUserQuery(column, value)
	if err != nil {
		log.Err(err).Msg("failed to build query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := r.QueryRowContext(ctx, query, args...)
	if err = row.Err(); err != nil {
		if postgresError(err) == pgerrcode.NoDataFound {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Msg("failed to query user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	var found models.User
	err = row.Scan(&found.UserID, &found.Login, &found.PasswordHash, &found.Name, &found.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNoUserWasFound
	}
	if err != nil {
		log.Err(err).Msg("failed to scan user")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return found, nil
}

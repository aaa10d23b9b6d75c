package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/models"
	"github.com/jackc/pgerrcode"
)

type projectRepository struct {
	*DB
	logger *logger.Logger
}

func NewProjectRepository(db *DB, logger *logger.Logger) ProjectRepository {
	logger.Debug().Msg("creating project repository")
	return &projectRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateProject inserts a project and makes ownerID its owner in one
// transaction.
func (p *projectRepository) CreateProject(ctx context.Context, ownerID int64, name string) (models.Project, error) {
	log := logger.FromContext(ctx)

	tx, err := p.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "projectRepository.CreateProject").Msg("failed to begin transaction")
		return models.Project{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	project := models.Project{Role: models.RoleOwner}
	err = tx.QueryRowContext(ctx, createProject, name).Scan(&project.ProjectID, &project.Name, &project.CreatedAt)
	if err != nil {
		log.Err(err).Str("func", "projectRepository.CreateProject").Int64("user_id", ownerID).Msg("failed to insert project")
		return models.Project{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if _, err = tx.ExecContext(ctx, addProjectMember, project.ProjectID, ownerID, models.RoleOwner); err != nil {
		log.Err(err).Str("func", "projectRepository.CreateProject").Int64("project_id", project.ProjectID).Msg("failed to add owner")
		return models.Project{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "projectRepository.CreateProject").Msg("failed to commit transaction")
		return models.Project{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return project, nil
}

func (p *projectRepository) AddMember(ctx context.Context, projectID, userID int64, role models.ProjectRole) error {
	log := logger.FromContext(ctx)

	if _, err := p.ExecContext(ctx, addProjectMember, projectID, userID, role); err != nil {
		log.Err(err).
			Str("func", "projectRepository.AddMember").
			Int64("project_id", projectID).
			Int64("user_id", userID).
			Msg("failed to add project member")

		if postgresError(err) == pgerrcode.ForeignKeyViolation {
			return fmt.Errorf("%w: %w", ErrNoUserWasFound, err)
		}
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (p *projectRepository) ListForUser(ctx context.Context, userID int64) ([]models.Project, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListProjectsQuery(userID)
	if err != nil {
		log.Err(err).Str("func", "projectRepository.ListForUser").Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := p.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "projectRepository.ListForUser").Int64("user_id", userID).Msg("failed to list projects")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	projects := make([]models.Project, 0, 8)
	for rows.Next() {
		var project models.Project
		if err = rows.Scan(&project.ProjectID, &project.Name, &project.Role, &project.CreatedAt); err != nil {
			log.Err(err).Str("func", "projectRepository.ListForUser").Msg("failed to scan project row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		projects = append(projects, project)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "projectRepository.ListForUser").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return projects, nil
}

func (p *projectRepository) HasAccess(ctx context.Context, userID, projectID int64) (bool, error) {
	var ok bool
	if err := p.QueryRowContext(ctx, hasProjectAccess, projectID, userID).Scan(&ok); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "projectRepository.HasAccess").
			Int64("project_id", projectID).
			Int64("user_id", userID).
			Msg("failed to check project access")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return ok, nil
}

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/store"
	"github.com/MKhiriev/go-story-sync/models"
)

type projectService struct {
	projectRepository store.ProjectRepository
	logger            *logger.Logger
}

func NewProjectService(projectRepository store.ProjectRepository, logger *logger.Logger) ProjectService {
	return &projectService{
		projectRepository: projectRepository,
		logger:            logger,
	}
}

// CreateProject creates a project owned by userID.
func (p *projectService) CreateProject(ctx context.Context, userID int64, name string) (models.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" || userID <= 0 {
		logger.FromContext(ctx).Error().Str("func", "projectService.CreateProject").Int64("user_id", userID).Msg("invalid project data")
		return models.Project{}, ErrInvalidDataProvided
	}

	project, err := p.projectRepository.CreateProject(ctx, userID, name)
	if err != nil {
		return models.Project{}, fmt.Errorf("project creation failed: %w", err)
	}

	logger.FromContext(ctx).Info().
		Str("func", "projectService.CreateProject").
		Int64("user_id", userID).
		Int64("project_id", project.ProjectID).
		Msg("project created")
	return project, nil
}

func (p *projectService) ListProjects(ctx context.Context, userID int64) ([]models.Project, error) {
	projects, err := p.projectRepository.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing projects failed: %w", err)
	}
	return projects, nil
}

// AddMember grants userID editor access. Only an owner of the project may
// add members.
func (p *projectService) AddMember(ctx context.Context, ownerID, projectID, userID int64) error {
	projects, err := p.projectRepository.ListForUser(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("listing projects failed: %w", err)
	}

	owner := false
	for _, project := range projects {
		if project.ProjectID == projectID && project.Role == models.RoleOwner {
			owner = true
			break
		}
	}
	if !owner {
		logger.FromContext(ctx).Warn().
			Str("func", "projectService.AddMember").
			Int64("owner_id", ownerID).
			Int64("project_id", projectID).
			Msg("user is not the project owner")
		return ErrAccessDenied
	}

	if err = p.projectRepository.AddMember(ctx, projectID, userID, models.RoleEditor); err != nil {
		return fmt.Errorf("adding member failed: %w", err)
	}
	return nil
}

func (p *projectService) HasAccess(ctx context.Context, userID, projectID int64) (bool, error) {
	if userID <= 0 || projectID <= 0 {
		return false, nil
	}
	return p.projectRepository.HasAccess(ctx, userID, projectID)
}

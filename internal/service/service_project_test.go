package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/mock"
	"github.com/MKhiriev/go-story-sync/internal/store"
	"github.com/MKhiriev/go-story-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestProjectService(t *testing.T) (ProjectService, *mock.MockProjectRepository) {
	t.Helper()
	repo := mock.NewMockProjectRepository(gomock.NewController(t))
	return NewProjectService(repo, logger.Nop()), repo
}

func TestProjectService_CreateProject(t *testing.T) {
	svc, repo := newTestProjectService(t)
	ctx := context.Background()

	repo.EXPECT().CreateProject(gomock.Any(), int64(3), "Novel").
		Return(models.Project{ProjectID: 10, Name: "Novel", Role: models.RoleOwner}, nil)

	project, err := svc.CreateProject(ctx, 3, "  Novel ")
	require.NoError(t, err)
	assert.Equal(t, int64(10), project.ProjectID)

	_, err = svc.CreateProject(ctx, 3, "   ")
	require.ErrorIs(t, err, ErrInvalidDataProvided)
	_, err = svc.CreateProject(ctx, 0, "Novel")
	require.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestProjectService_AddMember(t *testing.T) {
	owned := []models.Project{
		{ProjectID: 1, Role: models.RoleOwner},
		{ProjectID: 2, Role: models.RoleEditor},
	}

	t.Run("owner adds editor", func(t *testing.T) {
		svc, repo := newTestProjectService(t)
		repo.EXPECT().ListForUser(gomock.Any(), int64(3)).Return(owned, nil)
		repo.EXPECT().AddMember(gomock.Any(), int64(1), int64(8), models.RoleEditor).Return(nil)

		require.NoError(t, svc.AddMember(context.Background(), 3, 1, 8))
	})

	t.Run("editor cannot add members", func(t *testing.T) {
		svc, repo := newTestProjectService(t)
		repo.EXPECT().ListForUser(gomock.Any(), int64(3)).Return(owned, nil)

		require.ErrorIs(t, svc.AddMember(context.Background(), 3, 2, 8), ErrAccessDenied)
	})

	t.Run("repository failure", func(t *testing.T) {
		svc, repo := newTestProjectService(t)
		repo.EXPECT().ListForUser(gomock.Any(), int64(3)).Return(nil, store.ErrExecutingQuery)

		require.ErrorIs(t, svc.AddMember(context.Background(), 3, 1, 8), store.ErrExecutingQuery)
	})
}

func TestProjectService_HasAccess(t *testing.T) {
	svc, repo := newTestProjectService(t)
	ctx := context.Background()

	ok, err := svc.HasAccess(ctx, 0, 1)
	require.NoError(t, err)
	assert.False(t, ok, "invalid ids never reach the repository")

	repo.EXPECT().HasAccess(gomock.Any(), int64(3), int64(1)).Return(true, nil)
	ok, err = svc.HasAccess(ctx, 3, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	repo.EXPECT().ListForUser(gomock.Any(), int64(3)).Return([]models.Project{{ProjectID: 1}}, nil)
	projects, err := svc.ListProjects(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, projects, 1)
}

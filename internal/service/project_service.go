package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/service-order-api/internal/domain"
	"github.com/spec-kit/service-order-api/internal/events"
	"github.com/spec-kit/service-order-api/internal/repository"
	apperrors "github.com/spec-kit/service-order-api/pkg/util"
)

// ProjectInput carries validated fields for create and update.
type ProjectInput struct {
	Name        string
	Description *string
}

// ProjectService coordinates project CRUD.
type ProjectService struct {
	projects   repository.ProjectRepository
	dispatcher events.Dispatcher
}

// NewProjectService builds the service.
func NewProjectService(projects repository.ProjectRepository, dispatcher events.Dispatcher) *ProjectService {
	return &ProjectService{projects: projects, dispatcher: dispatcher}
}

// List returns all projects.
func (s *ProjectService) List(ctx context.Context) ([]domain.Project, error) {
	return s.projects.List(ctx)
}

// Get returns the project or NotFound.
func (s *ProjectService) Get(ctx context.Context, id int64) (*domain.Project, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("project", map[string]any{"id": id})
		}
		return nil, err
	}
	return project, nil
}

// Create inserts a project and re-reads it by the generated id so the caller
// receives the canonical stored representation, timestamps included.
func (s *ProjectService) Create(ctx context.Context, input ProjectInput) (*domain.Project, error) {
	id, err := s.projects.Create(ctx, &domain.Project{
		Name:        input.Name,
		Description: input.Description,
	})
	if err != nil {
		return nil, err
	}

	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:     events.EventProjectCreated,
		EntityID: project.ID,
		Payload:  events.ProjectCreatedPayload{Name: project.Name},
	})
	return project, nil
}

// Update applies new fields after an existence check, then re-reads.
func (s *ProjectService) Update(ctx context.Context, id int64, input ProjectInput) (*domain.Project, error) {
	exists, err := s.projects.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NewNotFound("project", map[string]any{"id": id})
	}

	err = s.projects.Update(ctx, &domain.Project{
		ID:          id,
		Name:        input.Name,
		Description: input.Description,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("project", map[string]any{"id": id})
		}
		return nil, err
	}

	return s.projects.GetByID(ctx, id)
}

// Delete removes the project together with its service orders.
func (s *ProjectService) Delete(ctx context.Context, id int64) error {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("project", map[string]any{"id": id})
		}
		return err
	}

	if err := s.projects.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("project", map[string]any{"id": id})
		}
		return err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:     events.EventProjectDeleted,
		EntityID: id,
		Payload:  events.ProjectDeletedPayload{Name: project.Name},
	})
	return nil
}

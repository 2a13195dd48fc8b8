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

// ServiceOrderInput carries validated fields for create and update.
type ServiceOrderInput struct {
	Name        string
	Category    string
	Description *string
	ProjectID   int64
	IsApproved  bool
}

// ServiceOrderService coordinates service-order CRUD and approval toggling.
type ServiceOrderService struct {
	orders     repository.ServiceOrderRepository
	projects   repository.ProjectRepository
	dispatcher events.Dispatcher
}

// NewServiceOrderService builds the service.
func NewServiceOrderService(orders repository.ServiceOrderRepository, projects repository.ProjectRepository, dispatcher events.Dispatcher) *ServiceOrderService {
	return &ServiceOrderService{orders: orders, projects: projects, dispatcher: dispatcher}
}

// List returns all service orders, optionally filtered by project.
func (s *ServiceOrderService) List(ctx context.Context, projectID *int64) ([]domain.ServiceOrder, error) {
	return s.orders.List(ctx, projectID)
}

// Get returns the service order or NotFound.
func (s *ServiceOrderService) Get(ctx context.Context, id int64) (*domain.ServiceOrder, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("service order", map[string]any{"id": id})
		}
		return nil, err
	}
	return order, nil
}

// Create verifies the referenced project exists before inserting, then
// re-reads the joined row for the canonical enriched representation.
func (s *ServiceOrderService) Create(ctx context.Context, input ServiceOrderInput) (*domain.ServiceOrder, error) {
	exists, err := s.projects.Exists(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NewNotFound("project", map[string]any{"id": input.ProjectID})
	}

	id, err := s.orders.Create(ctx, &domain.ServiceOrder{
		Name:        input.Name,
		Category:    input.Category,
		Description: input.Description,
		ProjectID:   input.ProjectID,
		IsApproved:  input.IsApproved,
	})
	if err != nil {
		return nil, err
	}

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:     events.EventServiceOrderCreated,
		EntityID: order.ID,
		Payload: events.ServiceOrderCreatedPayload{
			Name:      order.Name,
			Category:  order.Category,
			ProjectID: order.ProjectID,
		},
	})
	return order, nil
}

// Update validates the order's own existence first, then the (possibly
// reassigned) project's, so NotFound always names the missing entity.
func (s *ServiceOrderService) Update(ctx context.Context, id int64, input ServiceOrderInput) (*domain.ServiceOrder, error) {
	exists, err := s.orders.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NewNotFound("service order", map[string]any{"id": id})
	}

	projectExists, err := s.projects.Exists(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}
	if !projectExists {
		return nil, apperrors.NewNotFound("project", map[string]any{"id": input.ProjectID})
	}

	err = s.orders.Update(ctx, &domain.ServiceOrder{
		ID:          id,
		Name:        input.Name,
		Category:    input.Category,
		Description: input.Description,
		ProjectID:   input.ProjectID,
		IsApproved:  input.IsApproved,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("service order", map[string]any{"id": id})
		}
		return nil, err
	}

	return s.orders.GetByID(ctx, id)
}

// Delete removes the service order after an existence check.
func (s *ServiceOrderService) Delete(ctx context.Context, id int64) error {
	exists, err := s.orders.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.NewNotFound("service order", map[string]any{"id": id})
	}

	if err := s.orders.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("service order", map[string]any{"id": id})
		}
		return err
	}
	return nil
}

// ToggleApproval flips is_approved from the stored value, never from caller
// input, and returns the re-read order.
func (s *ServiceOrderService) ToggleApproval(ctx context.Context, id int64) (*domain.ServiceOrder, error) {
	if err := s.orders.ToggleApproval(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("service order", map[string]any{"id": id})
		}
		return nil, err
	}

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:     events.EventServiceOrderApprovalToggled,
		EntityID: order.ID,
		Payload:  events.ServiceOrderApprovalToggledPayload{IsApproved: order.IsApproved},
	})
	return order, nil
}

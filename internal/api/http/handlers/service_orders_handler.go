package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/service-order-api/internal/api/dto"
	"github.com/spec-kit/service-order-api/internal/domain"
	"github.com/spec-kit/service-order-api/internal/service"
	apperrors "github.com/spec-kit/service-order-api/pkg/util"
)

// ServiceOrdersHandler manages service-order endpoints.
type ServiceOrdersHandler struct {
	service *service.ServiceOrderService
}

// NewServiceOrdersHandler constructs handler.
func NewServiceOrdersHandler(orderService *service.ServiceOrderService) *ServiceOrdersHandler {
	return &ServiceOrdersHandler{service: orderService}
}

// List GET /service-orders with optional ?project_id= filter.
func (h *ServiceOrdersHandler) List(c *fiber.Ctx) error {
	var projectID *int64
	if raw := c.Query("project_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			return apperrors.NewValidationError("project_id must be a positive integer", nil)
		}
		projectID = &parsed
	}

	orders, err := h.service.List(c.Context(), projectID)
	if err != nil {
		return err
	}
	items := make([]dto.ServiceOrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, serviceOrderResponse(&orders[i]))
	}
	return c.JSON(items)
}

// Get GET /service-orders/:id.
func (h *ServiceOrdersHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	order, err := h.service.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(serviceOrderResponse(order))
}

// Create POST /service-orders.
func (h *ServiceOrdersHandler) Create(c *fiber.Ctx) error {
	input, err := parseServiceOrderRequest(c)
	if err != nil {
		return err
	}
	order, err := h.service.Create(c.Context(), input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(serviceOrderResponse(order))
}

// Update PUT /service-orders/:id.
func (h *ServiceOrdersHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	input, err := parseServiceOrderRequest(c)
	if err != nil {
		return err
	}
	order, err := h.service.Update(c.Context(), id, input)
	if err != nil {
		return err
	}
	return c.JSON(serviceOrderResponse(order))
}

// Delete DELETE /service-orders/:id.
func (h *ServiceOrdersHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ToggleApproval PATCH /service-orders/:id/approve.
func (h *ServiceOrdersHandler) ToggleApproval(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	order, err := h.service.ToggleApproval(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(serviceOrderResponse(order))
}

func parseServiceOrderRequest(c *fiber.Ctx) (service.ServiceOrderInput, error) {
	var req dto.ServiceOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return service.ServiceOrderInput{}, apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateStruct(&req); err != nil {
		return service.ServiceOrderInput{}, err
	}
	return service.ServiceOrderInput{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		ProjectID:   req.ProjectID,
		IsApproved:  req.IsApproved,
	}, nil
}

func serviceOrderResponse(order *domain.ServiceOrder) dto.ServiceOrderResponse {
	return dto.ServiceOrderResponse{
		ID:          order.ID,
		Name:        order.Name,
		Category:    order.Category,
		Description: order.Description,
		ProjectID:   order.ProjectID,
		ProjectName: order.ProjectName,
		IsApproved:  order.IsApproved,
		CreatedDate: order.CreatedDate,
		UpdatedDate: order.UpdatedDate,
	}
}

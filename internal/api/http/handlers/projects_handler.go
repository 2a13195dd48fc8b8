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

// ProjectsHandler manages project endpoints.
type ProjectsHandler struct {
	service *service.ProjectService
}

// NewProjectsHandler constructs handler.
func NewProjectsHandler(projectService *service.ProjectService) *ProjectsHandler {
	return &ProjectsHandler{service: projectService}
}

// List GET /projects.
func (h *ProjectsHandler) List(c *fiber.Ctx) error {
	projects, err := h.service.List(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.ProjectResponse, 0, len(projects))
	for i := range projects {
		items = append(items, projectResponse(&projects[i]))
	}
	return c.JSON(items)
}

// Get GET /projects/:id.
func (h *ProjectsHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	project, err := h.service.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(projectResponse(project))
}

// Create POST /projects.
func (h *ProjectsHandler) Create(c *fiber.Ctx) error {
	input, err := parseProjectRequest(c)
	if err != nil {
		return err
	}
	project, err := h.service.Create(c.Context(), input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(projectResponse(project))
}

// Update PUT /projects/:id.
func (h *ProjectsHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	input, err := parseProjectRequest(c)
	if err != nil {
		return err
	}
	project, err := h.service.Update(c.Context(), id, input)
	if err != nil {
		return err
	}
	return c.JSON(projectResponse(project))
}

// Delete DELETE /projects/:id.
func (h *ProjectsHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func parseProjectRequest(c *fiber.Ctx) (service.ProjectInput, error) {
	var req dto.ProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return service.ProjectInput{}, apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateStruct(&req); err != nil {
		return service.ProjectInput{}, err
	}
	return service.ProjectInput{Name: req.Name, Description: req.Description}, nil
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("id must be a positive integer", nil)
	}
	return id, nil
}

func projectResponse(project *domain.Project) dto.ProjectResponse {
	return dto.ProjectResponse{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}

package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/offboarding-service/internal/api/dto"
	"github.com/spec-kit/offboarding-service/internal/domain"
	"github.com/spec-kit/offboarding-service/internal/forms"
	"github.com/spec-kit/offboarding-service/internal/observability"
	"github.com/spec-kit/offboarding-service/internal/service"
	apperrors "github.com/spec-kit/offboarding-service/pkg/util/errorutil"
)

const taskFormName = "task"

// TasksHandler serves task forms and assignment status changes.
type TasksHandler struct {
	formSupport
}

// NewTasksHandler constructs handler.
func NewTasksHandler(svc *service.OffboardingService, deps forms.Dependencies, metrics *observability.Metrics) *TasksHandler {
	return &TasksHandler{formSupport{service: svc, forms: deps, metrics: metrics}}
}

// Form GET /tasks/form?offboarding_id=.
func (h *TasksHandler) Form(c *fiber.Ctx) error {
	f, err := forms.NewTaskForm(c.UserContext(), h.forms, c.Query("offboarding_id"), nil)
	if err != nil {
		return err
	}
	return renderForm(c, f)
}

// Create POST /tasks.
func (h *TasksHandler) Create(c *fiber.Ctx) error {
	return h.submit(c, nil, http.StatusCreated)
}

// Update PUT /tasks/:id.
func (h *TasksHandler) Update(c *fiber.Ctx) error {
	task, err := h.service.GetTask(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return h.submit(c, task, http.StatusOK)
}

// UpdateAssignmentStatus PATCH /employee-tasks/:id/status.
func (h *TasksHandler) UpdateAssignmentStatus(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.UpdateEmployeeTaskStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	actor := *principal.Employee
	actor.Role = principal.Role
	et, err := h.service.UpdateEmployeeTaskStatus(c.UserContext(), &actor, c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": employeeTaskResponse(et)})
}

func (h *TasksHandler) submit(c *fiber.Ctx, existing *domain.Task, status int) error {
	f, err := forms.NewTaskForm(c.UserContext(), h.forms, c.Query("offboarding_id"), existing)
	if err != nil {
		return err
	}
	if err := h.bind(c, taskFormName, f, nil, nil); err != nil {
		return err
	}
	record, err := f.Save(c.UserContext(), true)
	if err != nil {
		return saveError(err)
	}
	return h.saved(c, taskFormName, status, taskResponse(record))
}

package handlers

import (
	"net/http"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/offboarding-service/internal/domain"
	"github.com/spec-kit/offboarding-service/internal/forms"
	"github.com/spec-kit/offboarding-service/internal/observability"
	"github.com/spec-kit/offboarding-service/internal/service"
	apperrors "github.com/spec-kit/offboarding-service/pkg/util/errorutil"
)

const (
	enrollmentFormName  = "offboarding_employee"
	stageSelectFormName = "stage_select"
)

// EnrollmentsHandler serves the enrollment form and the pipeline stage picker.
type EnrollmentsHandler struct {
	formSupport
}

// NewEnrollmentsHandler constructs handler.
func NewEnrollmentsHandler(svc *service.OffboardingService, deps forms.Dependencies, metrics *observability.Metrics) *EnrollmentsHandler {
	return &EnrollmentsHandler{formSupport{service: svc, forms: deps, metrics: metrics}}
}

// NewForm GET /offboardings/:id/employees/form.
func (h *EnrollmentsHandler) NewForm(c *fiber.Ctx) error {
	offboarding, err := h.service.GetOffboarding(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	f, err := forms.NewOffboardingEmployeeForm(c.UserContext(), h.forms, offboarding.ID, nil)
	if err != nil {
		return err
	}
	return renderForm(c, f)
}

// Create POST /offboardings/:id/employees. A blank stage falls back to the
// first stage of the process so the enrollment always belongs to it.
func (h *EnrollmentsHandler) Create(c *fiber.Ctx) error {
	ctx := c.UserContext()
	offboarding, err := h.service.GetOffboarding(ctx, c.Params("id"))
	if err != nil {
		return err
	}
	first, err := h.service.FirstStage(ctx, offboarding.ID)
	if err != nil {
		return err
	}
	if first == nil {
		return apperrors.NewFormError(map[string][]string{
			"stage_id": {"Add a stage to this offboarding before enrolling employees."},
		})
	}
	f, err := forms.NewOffboardingEmployeeForm(ctx, h.forms, offboarding.ID, nil)
	if err != nil {
		return err
	}
	return h.submit(c, f, url.Values{"stage_id": {first.ID}}, http.StatusCreated)
}

// EditForm GET /enrollments/:id/form.
func (h *EnrollmentsHandler) EditForm(c *fiber.Ctx) error {
	_, f, err := h.editForm(c)
	if err != nil {
		return err
	}
	return renderForm(c, f)
}

// Update PUT /enrollments/:id. A blank stage keeps the current one.
func (h *EnrollmentsHandler) Update(c *fiber.Ctx) error {
	enrollment, f, err := h.editForm(c)
	if err != nil {
		return err
	}
	return h.submit(c, f, url.Values{"stage_id": {enrollment.StageID}}, http.StatusOK)
}

// StageForm GET /enrollments/:id/stage/form.
func (h *EnrollmentsHandler) StageForm(c *fiber.Ctx) error {
	f, err := h.stageSelectForm(c)
	if err != nil {
		return err
	}
	return renderForm(c, f)
}

// UpdateStage POST /enrollments/:id/stage.
func (h *EnrollmentsHandler) UpdateStage(c *fiber.Ctx) error {
	f, err := h.stageSelectForm(c)
	if err != nil {
		return err
	}
	if err := h.bind(c, stageSelectFormName, f, nil, nil); err != nil {
		return err
	}
	record, err := f.Save(c.UserContext(), true)
	if err != nil {
		return saveError(err)
	}
	return h.saved(c, stageSelectFormName, http.StatusOK, enrollmentResponse(record))
}

func (h *EnrollmentsHandler) submit(c *fiber.Ctx, f *forms.OffboardingEmployeeForm, defaults url.Values, status int) error {
	if err := h.bind(c, enrollmentFormName, f, defaults, nil); err != nil {
		return err
	}
	record, err := f.Save(c.UserContext(), true)
	if err != nil {
		return saveError(err)
	}
	return h.saved(c, enrollmentFormName, status, enrollmentResponse(record))
}

func (h *EnrollmentsHandler) editForm(c *fiber.Ctx) (*domain.OffboardingEmployee, *forms.OffboardingEmployeeForm, error) {
	enrollment, err := h.service.GetEnrollment(c.UserContext(), c.Params("id"))
	if err != nil {
		return nil, nil, err
	}
	f, err := forms.NewOffboardingEmployeeForm(c.UserContext(), h.forms, "", enrollment)
	if err != nil {
		return nil, nil, err
	}
	return enrollment, f, nil
}

func (h *EnrollmentsHandler) stageSelectForm(c *fiber.Ctx) (*forms.StageSelectForm, error) {
	ctx := c.UserContext()
	enrollment, err := h.service.GetEnrollment(ctx, c.Params("id"))
	if err != nil {
		return nil, err
	}
	offboardingID, err := h.service.EnrollmentOffboardingID(ctx, enrollment)
	if err != nil {
		return nil, err
	}
	return forms.NewStageSelectForm(ctx, h.forms, enrollment, offboardingID)
}

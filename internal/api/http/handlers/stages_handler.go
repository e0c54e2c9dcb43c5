package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/offboarding-service/internal/domain"
	"github.com/spec-kit/offboarding-service/internal/forms"
	"github.com/spec-kit/offboarding-service/internal/observability"
	"github.com/spec-kit/offboarding-service/internal/service"
)

const stageFormName = "offboarding_stage"

// StagesHandler serves pipeline stage forms.
type StagesHandler struct {
	formSupport
}

// NewStagesHandler constructs handler.
func NewStagesHandler(svc *service.OffboardingService, deps forms.Dependencies, metrics *observability.Metrics) *StagesHandler {
	return &StagesHandler{formSupport{service: svc, forms: deps, metrics: metrics}}
}

// Form GET /offboardings/:id/stages/form.
func (h *StagesHandler) Form(c *fiber.Ctx) error {
	offboarding, err := h.service.GetOffboarding(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	f, err := forms.NewOffboardingStageForm(c.UserContext(), h.forms, offboarding.ID, nil)
	if err != nil {
		return err
	}
	return renderForm(c, f)
}

// Create POST /offboardings/:id/stages.
func (h *StagesHandler) Create(c *fiber.Ctx) error {
	offboarding, err := h.service.GetOffboarding(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return h.submit(c, offboarding.ID, nil, http.StatusCreated)
}

// Update PUT /stages/:id.
func (h *StagesHandler) Update(c *fiber.Ctx) error {
	stage, err := h.service.GetStage(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return h.submit(c, stage.OffboardingID, stage, http.StatusOK)
}

func (h *StagesHandler) submit(c *fiber.Ctx, offboardingID string, existing *domain.Stage, status int) error {
	f, err := forms.NewOffboardingStageForm(c.UserContext(), h.forms, offboardingID, existing)
	if err != nil {
		return err
	}
	if err := h.bind(c, stageFormName, f, nil, nil); err != nil {
		return err
	}
	record, err := f.Save(c.UserContext(), true)
	if err != nil {
		return saveError(err)
	}
	return h.saved(c, stageFormName, status, stageResponse(record))
}

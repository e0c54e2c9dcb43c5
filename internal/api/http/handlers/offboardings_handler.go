package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/offboarding-service/internal/api/dto"
	"github.com/spec-kit/offboarding-service/internal/forms"
	"github.com/spec-kit/offboarding-service/internal/observability"
	"github.com/spec-kit/offboarding-service/internal/service"
)

const offboardingFormName = "offboarding"

// OffboardingsHandler serves offboarding processes and their pipeline.
type OffboardingsHandler struct {
	formSupport
}

// NewOffboardingsHandler constructs handler.
func NewOffboardingsHandler(svc *service.OffboardingService, deps forms.Dependencies, metrics *observability.Metrics) *OffboardingsHandler {
	return &OffboardingsHandler{formSupport{service: svc, forms: deps, metrics: metrics}}
}

// List GET /offboardings.
func (h *OffboardingsHandler) List(c *fiber.Ctx) error {
	items, err := h.service.ListOffboardings(c.UserContext())
	if err != nil {
		return err
	}
	out := make([]dto.OffboardingResponse, 0, len(items))
	for i := range items {
		out = append(out, offboardingResponse(&items[i]))
	}
	return c.JSON(fiber.Map{"data": out})
}

// Form GET /offboardings/form and /offboardings/:id/form.
func (h *OffboardingsHandler) Form(c *fiber.Ctx) error {
	f, err := h.loadForm(c)
	if err != nil {
		return err
	}
	return renderForm(c, f)
}

// Create POST /offboardings.
func (h *OffboardingsHandler) Create(c *fiber.Ctx) error {
	return h.submit(c, http.StatusCreated)
}

// Update PUT /offboardings/:id.
func (h *OffboardingsHandler) Update(c *fiber.Ctx) error {
	return h.submit(c, http.StatusOK)
}

// Pipeline GET /offboardings/:id/pipeline.
func (h *OffboardingsHandler) Pipeline(c *fiber.Ctx) error {
	pipeline, err := h.service.Pipeline(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": pipelineResponse(pipeline)})
}

func (h *OffboardingsHandler) submit(c *fiber.Ctx, status int) error {
	f, err := h.loadForm(c)
	if err != nil {
		return err
	}
	if err := h.bind(c, offboardingFormName, f, nil, nil); err != nil {
		return err
	}
	record, err := f.Save(c.UserContext(), true)
	if err != nil {
		return saveError(err)
	}
	return h.saved(c, offboardingFormName, status, offboardingResponse(record))
}

func (h *OffboardingsHandler) loadForm(c *fiber.Ctx) (*forms.OffboardingForm, error) {
	ctx := c.UserContext()
	if id := c.Params("id"); id != "" {
		existing, err := h.service.GetOffboarding(ctx, id)
		if err != nil {
			return nil, err
		}
		return forms.NewOffboardingForm(ctx, h.forms, existing)
	}
	return forms.NewOffboardingForm(ctx, h.forms, nil)
}

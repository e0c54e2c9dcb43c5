package handlers

import (
	"net/http"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/offboarding-service/internal/api/dto"
	"github.com/spec-kit/offboarding-service/internal/domain"
	"github.com/spec-kit/offboarding-service/internal/forms"
	"github.com/spec-kit/offboarding-service/internal/observability"
	"github.com/spec-kit/offboarding-service/internal/service"
)

const noteFormName = "note"

// NotesHandler serves enrollment notes and their attachments.
type NotesHandler struct {
	formSupport
}

// NewNotesHandler constructs handler.
func NewNotesHandler(svc *service.OffboardingService, deps forms.Dependencies, metrics *observability.Metrics) *NotesHandler {
	return &NotesHandler{formSupport{service: svc, forms: deps, metrics: metrics}}
}

// List GET /enrollments/:id/notes.
func (h *NotesHandler) List(c *fiber.Ctx) error {
	notes, err := h.service.ListNotes(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	out := make([]dto.NoteResponse, 0, len(notes))
	for i := range notes {
		out = append(out, noteResponse(&notes[i]))
	}
	return c.JSON(fiber.Map{"data": out})
}

// Form GET /enrollments/:id/notes/form. The note is prefilled with the
// enrollment and the caller as author.
func (h *NotesHandler) Form(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	enrollment, err := h.service.GetEnrollment(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	prefill := &domain.Note{EnrollmentID: enrollment.ID, NoteBy: principal.Employee.ID}
	f, err := forms.NewNoteForm(c.UserContext(), h.forms, prefill)
	if err != nil {
		return err
	}
	return renderForm(c, f)
}

// Create POST /enrollments/:id/notes (multipart). The enrollment comes from
// the route and the author is always the caller.
func (h *NotesHandler) Create(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	ctx := c.UserContext()
	enrollment, err := h.service.GetEnrollment(ctx, c.Params("id"))
	if err != nil {
		return err
	}
	f, err := forms.NewNoteForm(ctx, h.forms, nil)
	if err != nil {
		return err
	}
	fixed := url.Values{
		"employee_id": {enrollment.ID},
		"note_by":     {principal.Employee.ID},
	}
	if err := h.bind(c, noteFormName, f, nil, fixed); err != nil {
		return err
	}
	note, uploads, err := f.Save(ctx, true)
	if err != nil {
		return saveError(err)
	}
	return h.saved(c, noteFormName, http.StatusCreated, noteCreatedResponse(note, uploads))
}

package handlers

import (
	"errors"
	"html/template"
	"mime/multipart"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/offboarding-service/internal/auth"
	"github.com/spec-kit/offboarding-service/internal/forms"
	"github.com/spec-kit/offboarding-service/internal/observability"
	"github.com/spec-kit/offboarding-service/internal/service"
	apperrors "github.com/spec-kit/offboarding-service/pkg/util/errorutil"
)

// boundForm is what every form exposes to the transport layer.
type boundForm interface {
	Bind(values url.Values, files map[string][]*multipart.FileHeader)
	IsValid() bool
	Errors() map[string][]string
	AsHTML() (template.HTML, error)
}

// formSupport carries what every form-backed handler needs.
type formSupport struct {
	service *service.OffboardingService
	forms   forms.Dependencies
	metrics *observability.Metrics
}

// submission holds a parsed form body.
type submission struct {
	values url.Values
	files  map[string][]*multipart.FileHeader
}

func parseSubmission(c *fiber.Ctx) (*submission, error) {
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		mf, err := c.MultipartForm()
		if err != nil {
			return nil, apperrors.NewValidationError("invalid multipart payload", nil)
		}
		return &submission{values: url.Values(mf.Value), files: mf.File}, nil
	}
	values, err := url.ParseQuery(string(c.Body()))
	if err != nil {
		return nil, apperrors.NewValidationError("invalid form payload", nil)
	}
	return &submission{values: values}, nil
}

// bind parses the request body into f and reports validation failures as a
// form error. defaults fill blank fields; fixed replaces whatever was
// submitted, so values scoped by the route cannot be overridden.
func (h *formSupport) bind(c *fiber.Ctx, name string, f boundForm, defaults, fixed url.Values) error {
	sub, err := parseSubmission(c)
	if err != nil {
		return err
	}
	for key, vals := range defaults {
		if sub.values.Get(key) == "" {
			sub.values[key] = vals
		}
	}
	for key, vals := range fixed {
		sub.values[key] = vals
	}
	f.Bind(sub.values, sub.files)
	if !f.IsValid() {
		h.metrics.RecordSubmission(name, "invalid")
		return apperrors.NewFormError(f.Errors())
	}
	return nil
}

// saved records a successful submission and answers with the JSON payload.
func (h *formSupport) saved(c *fiber.Ctx, name string, status int, payload any) error {
	h.metrics.RecordSubmission(name, "saved")
	return c.Status(status).JSON(fiber.Map{"data": payload})
}

// saveError maps form save failures onto the error envelope.
func saveError(err error) error {
	switch {
	case errors.Is(err, forms.ErrMissingOffboarding):
		return apperrors.NewValidationError("offboarding is required", nil)
	case errors.Is(err, forms.ErrMissingEnrollment):
		return apperrors.NewValidationError("enrollment is required", nil)
	default:
		return err
	}
}

func renderForm(c *fiber.Ctx, f boundForm) error {
	html, err := f.AsHTML()
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	c.Type("html")
	return c.SendString(string(html))
}

func requirePrincipal(c *fiber.Ctx) (*auth.Principal, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Employee == nil {
		return nil, apperrors.NewUnauthorized("employee required")
	}
	return principal, nil
}

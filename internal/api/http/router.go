package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spec-kit/offboarding-service/internal/api/http/handlers"
	"github.com/spec-kit/offboarding-service/internal/auth"
	"github.com/spec-kit/offboarding-service/internal/domain"
	"github.com/spec-kit/offboarding-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Offboardings   *handlers.OffboardingsHandler
	Stages         *handlers.StagesHandler
	Enrollments    *handlers.EnrollmentsHandler
	Notes          *handlers.NotesHandler
	Tasks          *handlers.TasksHandler
	Files          *handlers.FilesHandler
	AuthMiddleware *auth.AuthMiddleware
	Metrics        *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Metrics.Registry(), promhttp.HandlerOpts{})))
	}

	api := app.Group("/api/v1", cfg.AuthMiddleware.Handle, auth.RequireAnyRole())
	managers := auth.RequireRole(domain.RoleManager, domain.RoleAdmin)

	api.Get("/offboardings", cfg.Offboardings.List)
	api.Get("/offboardings/form", managers, cfg.Offboardings.Form)
	api.Post("/offboardings", managers, cfg.Offboardings.Create)
	api.Get("/offboardings/:id/form", managers, cfg.Offboardings.Form)
	api.Put("/offboardings/:id", managers, cfg.Offboardings.Update)
	api.Get("/offboardings/:id/pipeline", cfg.Offboardings.Pipeline)

	api.Get("/offboardings/:id/stages/form", managers, cfg.Stages.Form)
	api.Post("/offboardings/:id/stages", managers, cfg.Stages.Create)
	api.Put("/stages/:id", managers, cfg.Stages.Update)

	api.Get("/offboardings/:id/employees/form", managers, cfg.Enrollments.NewForm)
	api.Post("/offboardings/:id/employees", managers, cfg.Enrollments.Create)
	api.Get("/enrollments/:id/form", managers, cfg.Enrollments.EditForm)
	api.Put("/enrollments/:id", managers, cfg.Enrollments.Update)
	api.Get("/enrollments/:id/stage/form", managers, cfg.Enrollments.StageForm)
	api.Post("/enrollments/:id/stage", managers, cfg.Enrollments.UpdateStage)

	api.Get("/enrollments/:id/notes", cfg.Notes.List)
	api.Get("/enrollments/:id/notes/form", cfg.Notes.Form)
	api.Post("/enrollments/:id/notes", cfg.Notes.Create)
	api.Get("/files/*", cfg.Files.Download)

	api.Get("/tasks/form", managers, cfg.Tasks.Form)
	api.Post("/tasks", managers, cfg.Tasks.Create)
	api.Put("/tasks/:id", managers, cfg.Tasks.Update)
	api.Patch("/employee-tasks/:id/status", cfg.Tasks.UpdateAssignmentStatus)
}

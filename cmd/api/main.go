package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/offboarding-service/internal/api/http"
	"github.com/spec-kit/offboarding-service/internal/api/http/handlers"
	"github.com/spec-kit/offboarding-service/internal/auth"
	"github.com/spec-kit/offboarding-service/internal/cache"
	"github.com/spec-kit/offboarding-service/internal/config"
	"github.com/spec-kit/offboarding-service/internal/forms"
	"github.com/spec-kit/offboarding-service/internal/observability"
	"github.com/spec-kit/offboarding-service/internal/persistence"
	"github.com/spec-kit/offboarding-service/internal/repository"
	"github.com/spec-kit/offboarding-service/internal/service"
	"github.com/spec-kit/offboarding-service/internal/storage"
)

const metricsNamespace = "offboarding"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	files, err := storage.NewLocalStore(cfg.Storage.Dir)
	if err != nil {
		logger.Fatal("failed to prepare storage", zap.Error(err))
	}

	pool := pg.PoolHandle()
	employeeRepo := repository.NewEmployeeRepository(pool)
	offboardingRepo := repository.NewOffboardingRepository(pool)
	stageRepo := cache.NewStageRepository(repository.NewStageRepository(pool), redis.Client, cfg.Cache.StageChoicesTTL(), logger)
	enrollmentRepo := repository.NewOffboardingEmployeeRepository(pool)
	noteRepo := repository.NewNoteRepository(pool)
	attachmentRepo := repository.NewAttachmentRepository(pool)
	taskRepo := repository.NewTaskRepository(pool)
	assignmentRepo := repository.NewEmployeeTaskRepository(pool)

	offboardingService := service.NewOffboardingService(service.OffboardingDependencies{
		OffboardingRepo: offboardingRepo,
		StageRepo:       stageRepo,
		EnrollmentRepo:  enrollmentRepo,
		NoteRepo:        noteRepo,
		AttachmentRepo:  attachmentRepo,
		TaskRepo:        taskRepo,
		AssignmentRepo:  assignmentRepo,
	})
	formDeps := forms.Dependencies{
		Employees:    employeeRepo,
		Offboardings: offboardingRepo,
		Stages:       stageRepo,
		Enrollments:  enrollmentRepo,
		Notes:        noteRepo,
		Attachments:  attachmentRepo,
		Tasks:        taskRepo,
		Assignments:  assignmentRepo,
		Files:        files,
		Logger:       logger,
	}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	authMiddleware := auth.NewAuthMiddleware(tokens, employeeRepo)
	metrics := observability.NewMetrics(metricsNamespace)

	app := fiber.New(fiber.Config{
		AppName:   cfg.App.Name,
		BodyLimit: cfg.Storage.MaxUploadBytes(),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Offboardings:   handlers.NewOffboardingsHandler(offboardingService, formDeps, metrics),
		Stages:         handlers.NewStagesHandler(offboardingService, formDeps, metrics),
		Enrollments:    handlers.NewEnrollmentsHandler(offboardingService, formDeps, metrics),
		Notes:          handlers.NewNotesHandler(offboardingService, formDeps, metrics),
		Tasks:          handlers.NewTasksHandler(offboardingService, formDeps, metrics),
		Files:          handlers.NewFilesHandler(files),
		AuthMiddleware: authMiddleware,
		Metrics:        metrics,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}

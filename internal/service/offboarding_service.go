package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/offboarding-service/internal/domain"
	"github.com/spec-kit/offboarding-service/internal/repository"
	apperrors "github.com/spec-kit/offboarding-service/pkg/util/errorutil"
)

// OffboardingService serves the read models around the forms and the
// assignment status workflow.
type OffboardingService struct {
	offboardings repository.OffboardingRepository
	stages       repository.StageRepository
	enrollments  repository.OffboardingEmployeeRepository
	notes        repository.NoteRepository
	attachments  repository.AttachmentRepository
	tasks        repository.TaskRepository
	assignments  repository.EmployeeTaskRepository
}

// OffboardingDependencies bundles repositories.
type OffboardingDependencies struct {
	OffboardingRepo repository.OffboardingRepository
	StageRepo       repository.StageRepository
	EnrollmentRepo  repository.OffboardingEmployeeRepository
	NoteRepo        repository.NoteRepository
	AttachmentRepo  repository.AttachmentRepository
	TaskRepo        repository.TaskRepository
	AssignmentRepo  repository.EmployeeTaskRepository
}

// NewOffboardingService creates the service.
func NewOffboardingService(deps OffboardingDependencies) *OffboardingService {
	return &OffboardingService{
		offboardings: deps.OffboardingRepo,
		stages:       deps.StageRepo,
		enrollments:  deps.EnrollmentRepo,
		notes:        deps.NoteRepo,
		attachments:  deps.AttachmentRepo,
		tasks:        deps.TaskRepo,
		assignments:  deps.AssignmentRepo,
	}
}

// ListOffboardings returns every process.
func (s *OffboardingService) ListOffboardings(ctx context.Context) ([]domain.Offboarding, error) {
	items, err := s.offboardings.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return items, nil
}

// GetOffboarding loads a process.
func (s *OffboardingService) GetOffboarding(ctx context.Context, id string) (*domain.Offboarding, error) {
	item, err := s.offboardings.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "offboarding", "offboarding_id", id)
	}
	return item, nil
}

// GetStage loads a stage.
func (s *OffboardingService) GetStage(ctx context.Context, id string) (*domain.Stage, error) {
	stage, err := s.stages.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "stage", "stage_id", id)
	}
	return stage, nil
}

// GetEnrollment loads an enrollment.
func (s *OffboardingService) GetEnrollment(ctx context.Context, id string) (*domain.OffboardingEmployee, error) {
	enrollment, err := s.enrollments.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "enrollment", "enrollment_id", id)
	}
	return enrollment, nil
}

// EnrollmentOffboardingID resolves the process an enrollment belongs to
// through its current stage. Enrollments without a stage yield "".
func (s *OffboardingService) EnrollmentOffboardingID(ctx context.Context, enrollment *domain.OffboardingEmployee) (string, error) {
	if enrollment.StageID == "" {
		return "", nil
	}
	stage, err := s.GetStage(ctx, enrollment.StageID)
	if err != nil {
		return "", err
	}
	return stage.OffboardingID, nil
}

// FirstStage returns the lowest-sequence stage of a process, or nil when the
// process has no stages yet.
func (s *OffboardingService) FirstStage(ctx context.Context, offboardingID string) (*domain.Stage, error) {
	stages, err := s.stages.ListByOffboarding(ctx, offboardingID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if len(stages) == 0 {
		return nil, nil
	}
	first := stages[0]
	for _, stage := range stages[1:] {
		if stage.Sequence < first.Sequence {
			first = stage
		}
	}
	return &first, nil
}

// GetTask loads a task.
func (s *OffboardingService) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "task", "task_id", id)
	}
	return task, nil
}

// Pipeline returns the stages of a process in sequence order, each with the
// enrollments currently sitting in it.
func (s *OffboardingService) Pipeline(ctx context.Context, offboardingID string) ([]domain.PipelineStage, error) {
	if _, err := s.GetOffboarding(ctx, offboardingID); err != nil {
		return nil, err
	}
	stages, err := s.stages.ListByOffboarding(ctx, offboardingID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	enrollments, err := s.enrollments.ListByOffboarding(ctx, offboardingID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	byStage := make(map[string][]domain.OffboardingEmployee, len(stages))
	for _, e := range enrollments {
		byStage[e.StageID] = append(byStage[e.StageID], e)
	}
	pipeline := make([]domain.PipelineStage, 0, len(stages))
	for _, stage := range stages {
		pipeline = append(pipeline, domain.PipelineStage{Stage: stage, Employees: byStage[stage.ID]})
	}
	return pipeline, nil
}

// ListNotes returns the notes of an enrollment, newest first, with their
// attachment metadata.
func (s *OffboardingService) ListNotes(ctx context.Context, enrollmentID string) ([]domain.Note, error) {
	if _, err := s.GetEnrollment(ctx, enrollmentID); err != nil {
		return nil, err
	}
	notes, err := s.notes.ListByEnrollment(ctx, enrollmentID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	for i := range notes {
		if len(notes[i].AttachmentIDs) == 0 {
			continue
		}
		attachments, err := s.attachments.ListByNote(ctx, notes[i].ID)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		notes[i].Attachments = attachments
	}
	return notes, nil
}

// UpdateEmployeeTaskStatus moves an assignment to a new status. Managers and
// admins may update any assignment; employees only their own.
func (s *OffboardingService) UpdateEmployeeTaskStatus(ctx context.Context, actor *domain.Employee, id string, status domain.TaskStatus) (*domain.EmployeeTask, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("employee required")
	}
	if !status.Valid() {
		return nil, apperrors.NewValidationError("invalid task status", map[string]any{"status": status})
	}

	assignment, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "employee task", "employee_task_id", id)
	}
	if actor.Role != domain.RoleManager && actor.Role != domain.RoleAdmin {
		enrollment, err := s.GetEnrollment(ctx, assignment.EnrollmentID)
		if err != nil {
			return nil, err
		}
		if enrollment.EmployeeID != actor.ID {
			return nil, apperrors.NewForbidden("access denied")
		}
	}

	if err := s.assignments.UpdateStatus(ctx, id, status); err != nil {
		return nil, apperrors.MapError(err)
	}
	assignment.Status = status
	return assignment, nil
}

func notFound(err error, resource, key, id string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound(resource, map[string]any{key: id})
	}
	return apperrors.MapError(err)
}

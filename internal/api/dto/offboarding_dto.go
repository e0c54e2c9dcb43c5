package dto

import (
	"time"

	"github.com/spec-kit/offboarding-service/internal/domain"
)

// OffboardingResponse describes a process.
type OffboardingResponse struct {
	ID          string                   `json:"id"`
	Title       string                   `json:"title"`
	Description string                   `json:"description"`
	Managers    []string                 `json:"managers"`
	Status      domain.OffboardingStatus `json:"status"`
	IsActive    bool                     `json:"is_active"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

// StageResponse describes a pipeline stage.
type StageResponse struct {
	ID            string           `json:"id"`
	OffboardingID string           `json:"offboarding_id"`
	Title         string           `json:"title"`
	Type          domain.StageType `json:"type"`
	Managers      []string         `json:"managers"`
	Sequence      int              `json:"sequence"`
	IsActive      bool             `json:"is_active"`
}

// EnrollmentResponse describes an employee in an offboarding. Dates use YYYY-MM-DD.
type EnrollmentResponse struct {
	ID                 string            `json:"id"`
	EmployeeID         string            `json:"employee_id"`
	EmployeeName       string            `json:"employee_name,omitempty"`
	StageID            string            `json:"stage_id"`
	NoticePeriod       int               `json:"notice_period"`
	Unit               domain.NoticeUnit `json:"unit"`
	NoticePeriodStarts *string           `json:"notice_period_starts"`
	NoticePeriodEnds   *string           `json:"notice_period_ends"`
}

// PipelineStageResponse is one column of the pipeline board.
type PipelineStageResponse struct {
	Stage     StageResponse        `json:"stage"`
	Employees []EnrollmentResponse `json:"employees"`
}

// AttachmentResponse describes a stored file.
type AttachmentResponse struct {
	ID         string `json:"id"`
	StorageKey string `json:"storage_key"`
	FileName   string `json:"file_name"`
	MimeType   string `json:"mime_type"`
	SizeBytes  int64  `json:"size_bytes"`
}

// NoteResponse describes a note.
type NoteResponse struct {
	ID            string               `json:"id"`
	Title         string               `json:"title"`
	Description   string               `json:"description"`
	NoteBy        string               `json:"note_by"`
	EmployeeID    string               `json:"employee_id"`
	Attachment    *string              `json:"attachment"`
	AttachmentIDs []string             `json:"attachment_ids"`
	Attachments   []AttachmentResponse `json:"attachments,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
}

// NoteCreatedResponse adds the names of the files uploaded with the note.
type NoteCreatedResponse struct {
	Note    NoteResponse `json:"note"`
	Uploads []string     `json:"uploads"`
}

// TaskResponse describes a task.
type TaskResponse struct {
	ID       string            `json:"id"`
	Title    string            `json:"title"`
	StageID  *string           `json:"stage_id"`
	Managers []string          `json:"managers"`
	Status   domain.TaskStatus `json:"status"`
}

// EmployeeTaskResponse describes an assignment.
type EmployeeTaskResponse struct {
	ID          string            `json:"id"`
	EmployeeID  string            `json:"employee_id"`
	TaskID      string            `json:"task_id"`
	Status      domain.TaskStatus `json:"status"`
	Description string            `json:"description"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// UpdateEmployeeTaskStatusRequest payload.
type UpdateEmployeeTaskStatusRequest struct {
	Status domain.TaskStatus `json:"status"`
}

package domain

import "time"

// TaskStatus enumerates assignment progress.
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "inprogress"
	TaskStatusStuck      TaskStatus = "stuck"
	TaskStatusCompleted  TaskStatus = "completed"
)

// Valid reports whether s is a known status.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusStuck, TaskStatusCompleted:
		return true
	}
	return false
}

// Task is a unit of offboarding work. A nil StageID targets every stage.
type Task struct {
	ID        string
	Title     string
	StageID   *string
	Managers  []string
	Status    TaskStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EmployeeTask assigns a task to one enrollment. (EnrollmentID, TaskID) is unique.
type EmployeeTask struct {
	ID           string
	EnrollmentID string
	TaskID       string
	Status       TaskStatus
	Description  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

package forms

import (
	"context"
	"fmt"

	"github.com/spec-kit/offboarding-service/internal/domain"
)

type taskInput struct {
	Title    string   `form:"title" validate:"max=100"`
	StageID  string   `form:"stage_id"`
	Managers []string `form:"managers"`
	TasksTo  []string `form:"tasks_to"`
}

func (in *taskInput) clean() {
	in.Title = sanitizeText(in.Title)
}

// OffboardingTasksLabel is the blank stage option of the task form.
const OffboardingTasksLabel = "All Stages in Offboarding"

// TaskForm edits a task and assigns it to the selected enrollments. Status is
// not editable here.
type TaskForm struct {
	*Form
	deps     Dependencies
	instance *domain.Task
	input    taskInput
}

// NewTaskForm builds the task form. Stage choices are limited to
// offboardingID when given, otherwise every stage is offered. Assignment
// targets are all enrollments.
func NewTaskForm(ctx context.Context, deps Dependencies, offboardingID string, instance *domain.Task) (*TaskForm, error) {
	managers, err := employeeChoices(ctx, deps.Employees)
	if err != nil {
		return nil, err
	}
	var stages []domain.Stage
	if offboardingID != "" {
		stages, err = deps.Stages.ListByOffboarding(ctx, offboardingID)
	} else {
		stages, err = deps.Stages.List(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list stages: %w", err)
	}
	targets, err := enrollmentChoices(ctx, deps.Enrollments)
	if err != nil {
		return nil, err
	}

	f := &TaskForm{deps: deps, instance: instance}
	title := &Field{Name: "title", Label: "Title", Widget: WidgetText, Required: true}
	stage := &Field{Name: "stage_id", Label: "Stage", Widget: WidgetSelect, Choices: stageChoices(stages),
		EmptyLabel: emptyLabel(OffboardingTasksLabel)}
	managerField := &Field{Name: "managers", Label: "Task Managers", Widget: WidgetSelectMultiple, Required: true, Choices: managers}
	tasksTo := &Field{Name: "tasks_to", Label: "Assign To", Widget: WidgetSelectMultiple, Required: true, Choices: targets}

	if instance != nil {
		title.Initial = []string{instance.Title}
		if instance.StageID != nil {
			stage.Initial = []string{*instance.StageID}
		}
		managerField.Initial = instance.Managers
		if instance.ID != "" {
			assigned, err := deps.Assignments.ListByTask(ctx, instance.ID)
			if err != nil {
				return nil, fmt.Errorf("list assignments: %w", err)
			}
			for _, a := range assigned {
				tasksTo.Initial = append(tasksTo.Initial, a.EnrollmentID)
			}
		}
	}

	f.Form = newForm("Offboarding Task", &f.input, title, stage, managerField, tasksTo)
	return f, nil
}

// Save persists the task and, when committed, get-or-creates one assignment
// per selected enrollment. Re-saving never duplicates an assignment.
func (f *TaskForm) Save(ctx context.Context, commit bool) (*domain.Task, error) {
	if !f.IsValid() {
		return nil, ErrInvalidForm
	}

	record := &domain.Task{Status: domain.TaskStatusTodo}
	if f.instance != nil {
		*record = *f.instance
	}
	if record.Status == "" {
		record.Status = domain.TaskStatusTodo
	}
	record.Title = f.input.Title
	record.StageID = stringPtr(f.input.StageID)
	record.Managers = f.input.Managers

	if !commit {
		return record, nil
	}
	if record.ID == "" {
		if err := f.deps.Tasks.Create(ctx, record); err != nil {
			return nil, fmt.Errorf("create task: %w", err)
		}
	} else if err := f.deps.Tasks.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	for _, enrollmentID := range f.input.TasksTo {
		if _, _, err := f.deps.Assignments.GetOrCreate(ctx, enrollmentID, record.ID); err != nil {
			return nil, fmt.Errorf("assign task to %s: %w", enrollmentID, err)
		}
	}
	logSaved(f.deps.logger(), "task", record.ID)
	return record, nil
}

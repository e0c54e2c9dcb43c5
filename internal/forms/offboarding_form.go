package forms

import (
	"context"
	"fmt"

	"github.com/spec-kit/offboarding-service/internal/domain"
)

type offboardingInput struct {
	Title       string   `form:"title" validate:"max=100"`
	Description string   `form:"description" validate:"max=255"`
	Managers    []string `form:"managers"`
	Status      string   `form:"status"`
	IsActive    bool     `form:"is_active"`
}

func (in *offboardingInput) clean() {
	in.Title = sanitizeText(in.Title)
	in.Description = sanitizeText(in.Description)
}

// OffboardingForm edits every field of an offboarding process.
type OffboardingForm struct {
	*Form
	deps     Dependencies
	instance *domain.Offboarding
	input    offboardingInput
}

// NewOffboardingForm builds the form, bound to instance when editing.
func NewOffboardingForm(ctx context.Context, deps Dependencies, instance *domain.Offboarding) (*OffboardingForm, error) {
	managers, err := employeeChoices(ctx, deps.Employees)
	if err != nil {
		return nil, err
	}

	f := &OffboardingForm{deps: deps, instance: instance}
	title := &Field{Name: "title", Label: "Title", Widget: WidgetText, Required: true}
	description := &Field{Name: "description", Label: "Description", Widget: WidgetTextarea, Required: true}
	managerField := &Field{Name: "managers", Label: "Managers", Widget: WidgetSelectMultiple, Required: true, Choices: managers}
	status := &Field{Name: "status", Label: "Status", Widget: WidgetSelect, Required: true, Choices: offboardingStatusChoices(),
		Initial: []string{string(domain.OffboardingStatusOngoing)}}
	active := &Field{Name: "is_active", Label: "Is Active", Widget: WidgetCheckbox, Initial: boolInitial(true)}

	if instance != nil {
		title.Initial = []string{instance.Title}
		description.Initial = []string{instance.Description}
		managerField.Initial = instance.Managers
		status.Initial = []string{string(instance.Status)}
		active.Initial = boolInitial(instance.IsActive)
	}

	f.Form = newForm("Offboarding", &f.input, title, description, managerField, status, active)
	return f, nil
}

// Save creates or updates the process. With commit false the record is
// returned without being stored.
func (f *OffboardingForm) Save(ctx context.Context, commit bool) (*domain.Offboarding, error) {
	if !f.IsValid() {
		return nil, ErrInvalidForm
	}

	record := &domain.Offboarding{}
	if f.instance != nil {
		*record = *f.instance
	}
	record.Title = f.input.Title
	record.Description = f.input.Description
	record.Managers = f.input.Managers
	record.Status = domain.OffboardingStatus(f.input.Status)
	record.IsActive = f.input.IsActive

	if !commit {
		return record, nil
	}
	if record.ID == "" {
		if err := f.deps.Offboardings.Create(ctx, record); err != nil {
			return nil, fmt.Errorf("create offboarding: %w", err)
		}
	} else if err := f.deps.Offboardings.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("update offboarding: %w", err)
	}
	logSaved(f.deps.logger(), "offboarding", record.ID)
	return record, nil
}

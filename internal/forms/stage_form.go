package forms

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spec-kit/offboarding-service/internal/domain"
)

type stageInput struct {
	Title    string   `form:"title" validate:"max=100"`
	Type     string   `form:"type"`
	Managers []string `form:"managers"`
	Sequence int      `form:"sequence" validate:"gte=0"`
	IsActive bool     `form:"is_active"`
}

func (in *stageInput) clean() {
	in.Title = sanitizeText(in.Title)
}

// OffboardingStageForm edits a stage. The parent process comes from the
// caller and is never a form field.
type OffboardingStageForm struct {
	*Form
	deps          Dependencies
	offboardingID string
	instance      *domain.Stage
	input         stageInput
}

// NewOffboardingStageForm builds the form for a stage of offboardingID.
// An existing instance keeps its own parent.
func NewOffboardingStageForm(ctx context.Context, deps Dependencies, offboardingID string, instance *domain.Stage) (*OffboardingStageForm, error) {
	managers, err := employeeChoices(ctx, deps.Employees)
	if err != nil {
		return nil, err
	}

	f := &OffboardingStageForm{deps: deps, offboardingID: offboardingID, instance: instance}
	title := &Field{Name: "title", Label: "Title", Widget: WidgetText, Required: true}
	stageType := &Field{Name: "type", Label: "Type", Widget: WidgetSelect, Required: true, Choices: stageTypeChoices(),
		EmptyLabel: emptyLabel(defaultEmptyLabel)}
	managerField := &Field{Name: "managers", Label: "Managers", Widget: WidgetSelectMultiple, Required: true, Choices: managers}
	sequence := &Field{Name: "sequence", Label: "Sequence", Widget: WidgetNumber}
	active := &Field{Name: "is_active", Label: "Is Active", Widget: WidgetCheckbox, Initial: boolInitial(true)}

	if instance != nil {
		title.Initial = []string{instance.Title}
		stageType.Initial = []string{string(instance.Type)}
		managerField.Initial = instance.Managers
		sequence.Initial = []string{strconv.Itoa(instance.Sequence)}
		active.Initial = boolInitial(instance.IsActive)
	}

	f.Form = newForm("Stage", &f.input, title, stageType, managerField, sequence, active)
	return f, nil
}

// Save creates or updates the stage under its parent process.
func (f *OffboardingStageForm) Save(ctx context.Context, commit bool) (*domain.Stage, error) {
	if !f.IsValid() {
		return nil, ErrInvalidForm
	}

	record := &domain.Stage{OffboardingID: f.offboardingID}
	if f.instance != nil {
		*record = *f.instance
	}
	if record.OffboardingID == "" {
		return nil, ErrMissingOffboarding
	}
	record.Title = f.input.Title
	record.Type = domain.StageType(f.input.Type)
	record.Managers = f.input.Managers
	record.Sequence = f.input.Sequence
	record.IsActive = f.input.IsActive

	if !commit {
		return record, nil
	}
	if record.ID == "" {
		if err := f.deps.Stages.Create(ctx, record); err != nil {
			return nil, fmt.Errorf("create stage: %w", err)
		}
	} else if err := f.deps.Stages.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("update stage: %w", err)
	}
	logSaved(f.deps.logger(), "offboarding_stage", record.ID)
	return record, nil
}

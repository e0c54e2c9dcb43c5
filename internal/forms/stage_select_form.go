package forms

import (
	"context"
	"fmt"

	"github.com/spec-kit/offboarding-service/internal/domain"
)

type stageSelectInput struct {
	StageID string `form:"stage_id"`
}

// StageSelectForm is the pipeline drop-down that moves an enrollment to
// another stage of its process.
type StageSelectForm struct {
	*Form
	deps     Dependencies
	instance *domain.OffboardingEmployee
	input    stageSelectInput
}

// NewStageSelectForm lists exactly the stages of offboardingID. An empty
// offboardingID yields no choices.
func NewStageSelectForm(ctx context.Context, deps Dependencies, instance *domain.OffboardingEmployee, offboardingID string) (*StageSelectForm, error) {
	stages, err := deps.Stages.ListByOffboarding(ctx, offboardingID)
	if err != nil {
		return nil, fmt.Errorf("list stages: %w", err)
	}

	f := &StageSelectForm{deps: deps, instance: instance}
	stage := &Field{
		Name:     "stage_id",
		Label:    "",
		Widget:   WidgetSelect,
		Required: true,
		Choices:  stageChoices(stages),
		Attrs: map[string]string{
			"onchange": "offboardingUpdateStage($(this))",
			"class":    "w-100 oh-select-custom",
		},
	}
	if instance != nil {
		stage.Initial = []string{instance.StageID}
	}

	f.Form = newForm("", &f.input, stage)
	return f, nil
}

// Save moves the enrollment to the selected stage.
func (f *StageSelectForm) Save(ctx context.Context, commit bool) (*domain.OffboardingEmployee, error) {
	if !f.IsValid() {
		return nil, ErrInvalidForm
	}

	record := &domain.OffboardingEmployee{}
	if f.instance != nil {
		*record = *f.instance
	}
	record.StageID = f.input.StageID

	if !commit {
		return record, nil
	}
	if record.ID == "" {
		return nil, ErrMissingEnrollment
	}
	if err := f.deps.Enrollments.UpdateStage(ctx, record.ID, record.StageID); err != nil {
		return nil, fmt.Errorf("update enrollment stage: %w", err)
	}
	logSaved(f.deps.logger(), "stage_select", record.ID)
	return record, nil
}

package forms

import (
	"context"
	"fmt"

	"github.com/spec-kit/offboarding-service/internal/domain"
)

func employeeChoices(ctx context.Context, dir EmployeeDirectory) ([]Choice, error) {
	employees, err := dir.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	choices := make([]Choice, 0, len(employees))
	for _, e := range employees {
		if !e.IsActive {
			continue
		}
		choices = append(choices, Choice{Value: e.ID, Label: e.Name})
	}
	return choices, nil
}

func stageChoices(stages []domain.Stage) []Choice {
	choices := make([]Choice, 0, len(stages))
	for _, s := range stages {
		choices = append(choices, Choice{Value: s.ID, Label: s.Title})
	}
	return choices
}

func enrollmentChoices(ctx context.Context, store EnrollmentStore) ([]Choice, error) {
	enrollments, err := store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	choices := make([]Choice, 0, len(enrollments))
	for _, e := range enrollments {
		label := e.EmployeeName
		if label == "" {
			label = e.EmployeeID
		}
		choices = append(choices, Choice{Value: e.ID, Label: label})
	}
	return choices, nil
}

func stageTypeChoices() []Choice {
	choices := make([]Choice, 0, len(domain.StageTypeLabels))
	for _, t := range domain.StageTypeLabels {
		choices = append(choices, Choice{Value: string(t.Type), Label: t.Label})
	}
	return choices
}

func offboardingStatusChoices() []Choice {
	return []Choice{
		{Value: string(domain.OffboardingStatusOngoing), Label: "Ongoing"},
		{Value: string(domain.OffboardingStatusCompleted), Label: "Completed"},
	}
}

func noticeUnitChoices() []Choice {
	return []Choice{
		{Value: string(domain.NoticeUnitDay), Label: "Day"},
		{Value: string(domain.NoticeUnitMonth), Label: "Month"},
	}
}

func boolInitial(v bool) []string {
	if v {
		return []string{"on"}
	}
	return nil
}

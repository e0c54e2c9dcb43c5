package forms

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spec-kit/offboarding-service/internal/domain"
)

type enrollmentInput struct {
	EmployeeID         string    `form:"employee_id"`
	StageID            string    `form:"stage_id"`
	NoticePeriod       int       `form:"notice_period" validate:"gte=0"`
	Unit               string    `form:"unit"`
	NoticePeriodStarts time.Time `form:"notice_period_starts"`
	NoticePeriodEnds   time.Time `form:"notice_period_ends"`
}

// OffboardingEmployeeForm edits an employee's enrollment in a process.
type OffboardingEmployeeForm struct {
	*Form
	deps     Dependencies
	instance *domain.OffboardingEmployee
	input    enrollmentInput
}

// NewOffboardingEmployeeForm builds the enrollment form. Stage choices are the
// stages of offboardingID, or of the process owning the instance's current
// stage when offboardingID is empty. An existing instance must carry both
// notice period dates.
func NewOffboardingEmployeeForm(ctx context.Context, deps Dependencies, offboardingID string, instance *domain.OffboardingEmployee) (*OffboardingEmployeeForm, error) {
	employees, err := employeeChoices(ctx, deps.Employees)
	if err != nil {
		return nil, err
	}

	if offboardingID == "" && instance != nil && instance.StageID != "" {
		stage, err := deps.Stages.GetByID(ctx, instance.StageID)
		if err != nil {
			return nil, fmt.Errorf("load current stage: %w", err)
		}
		offboardingID = stage.OffboardingID
	}
	stages, err := deps.Stages.ListByOffboarding(ctx, offboardingID)
	if err != nil {
		return nil, fmt.Errorf("list stages: %w", err)
	}

	f := &OffboardingEmployeeForm{deps: deps, instance: instance}
	employee := &Field{Name: "employee_id", Label: "Employee", Widget: WidgetSelect, Required: true, Choices: employees,
		EmptyLabel: emptyLabel(defaultEmptyLabel)}
	stage := &Field{Name: "stage_id", Label: "Stage", Widget: WidgetSelect, Choices: stageChoices(stages),
		EmptyLabel: emptyLabel(defaultEmptyLabel)}
	noticePeriod := &Field{Name: "notice_period", Label: "Notice Period", Widget: WidgetNumber}
	unit := &Field{Name: "unit", Label: "Unit", Widget: WidgetSelect, Choices: noticeUnitChoices(),
		EmptyLabel: emptyLabel(defaultEmptyLabel), Initial: []string{string(domain.NoticeUnitMonth)}}
	starts := &Field{Name: "notice_period_starts", Label: "Notice Period Starts", Widget: WidgetDate,
		Attrs: map[string]string{"type": "date"}}
	ends := &Field{Name: "notice_period_ends", Label: "Notice Period Ends", Widget: WidgetDate,
		Attrs: map[string]string{"type": "date"}}

	if instance != nil && instance.ID != "" {
		if instance.NoticePeriodStarts == nil || instance.NoticePeriodEnds == nil {
			return nil, ErrNoticePeriodUnset
		}
		employee.Initial = []string{instance.EmployeeID}
		stage.Initial = []string{instance.StageID}
		noticePeriod.Initial = []string{strconv.Itoa(instance.NoticePeriod)}
		unit.Initial = []string{string(instance.Unit)}
		starts.Initial = []string{formatDate(instance.NoticePeriodStarts)}
		ends.Initial = []string{formatDate(instance.NoticePeriodEnds)}
	}

	f.Form = newForm("Offboarding", &f.input, employee, stage, noticePeriod, unit, starts, ends)
	return f, nil
}

// Save creates or updates the enrollment.
func (f *OffboardingEmployeeForm) Save(ctx context.Context, commit bool) (*domain.OffboardingEmployee, error) {
	if !f.IsValid() {
		return nil, ErrInvalidForm
	}

	record := &domain.OffboardingEmployee{}
	if f.instance != nil {
		*record = *f.instance
	}
	if record.EmployeeID != f.input.EmployeeID {
		record.EmployeeName = ""
	}
	record.EmployeeID = f.input.EmployeeID
	record.StageID = f.input.StageID
	record.NoticePeriod = f.input.NoticePeriod
	record.Unit = domain.NoticeUnit(f.input.Unit)
	record.NoticePeriodStarts = datePtr(f.input.NoticePeriodStarts)
	record.NoticePeriodEnds = datePtr(f.input.NoticePeriodEnds)
	if record.EmployeeName == "" {
		for _, c := range f.Field("employee_id").Choices {
			if c.Value == record.EmployeeID {
				record.EmployeeName = c.Label
				break
			}
		}
	}

	if !commit {
		return record, nil
	}
	if record.ID == "" {
		if err := f.deps.Enrollments.Create(ctx, record); err != nil {
			return nil, fmt.Errorf("create enrollment: %w", err)
		}
	} else if err := f.deps.Enrollments.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("update enrollment: %w", err)
	}
	logSaved(f.deps.logger(), "offboarding_employee", record.ID)
	return record, nil
}

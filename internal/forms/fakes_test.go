package forms

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/offboarding-service/internal/domain"
	"github.com/spec-kit/offboarding-service/internal/storage"
)

type fakeEmployees struct {
	employees []domain.Employee
	err       error
}

func (f *fakeEmployees) List(ctx context.Context) ([]domain.Employee, error) {
	return f.employees, f.err
}

type fakeOffboardings struct {
	created []*domain.Offboarding
	updated []*domain.Offboarding
}

func (f *fakeOffboardings) Create(ctx context.Context, o *domain.Offboarding) error {
	o.ID = fmt.Sprintf("ob-%d", len(f.created)+1)
	f.created = append(f.created, o)
	return nil
}

func (f *fakeOffboardings) Update(ctx context.Context, o *domain.Offboarding) error {
	f.updated = append(f.updated, o)
	return nil
}

type fakeStages struct {
	stages  []domain.Stage
	created []*domain.Stage
	updated []*domain.Stage
}

func (f *fakeStages) Create(ctx context.Context, s *domain.Stage) error {
	s.ID = fmt.Sprintf("new-stage-%d", len(f.created)+1)
	f.created = append(f.created, s)
	return nil
}

func (f *fakeStages) Update(ctx context.Context, s *domain.Stage) error {
	f.updated = append(f.updated, s)
	return nil
}

func (f *fakeStages) GetByID(ctx context.Context, id string) (*domain.Stage, error) {
	for i := range f.stages {
		if f.stages[i].ID == id {
			return &f.stages[i], nil
		}
	}
	return nil, errors.New("stage not found")
}

func (f *fakeStages) ListByOffboarding(ctx context.Context, offboardingID string) ([]domain.Stage, error) {
	var out []domain.Stage
	for _, s := range f.stages {
		if offboardingID != "" && s.OffboardingID == offboardingID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStages) List(ctx context.Context) ([]domain.Stage, error) {
	return f.stages, nil
}

type fakeEnrollments struct {
	enrollments []domain.OffboardingEmployee
	created     []*domain.OffboardingEmployee
	updated     []*domain.OffboardingEmployee
	moves       map[string]string
}

func (f *fakeEnrollments) Create(ctx context.Context, e *domain.OffboardingEmployee) error {
	e.ID = fmt.Sprintf("new-enrollment-%d", len(f.created)+1)
	f.created = append(f.created, e)
	return nil
}

func (f *fakeEnrollments) Update(ctx context.Context, e *domain.OffboardingEmployee) error {
	f.updated = append(f.updated, e)
	return nil
}

func (f *fakeEnrollments) UpdateStage(ctx context.Context, enrollmentID, stageID string) error {
	if f.moves == nil {
		f.moves = map[string]string{}
	}
	f.moves[enrollmentID] = stageID
	return nil
}

func (f *fakeEnrollments) List(ctx context.Context) ([]domain.OffboardingEmployee, error) {
	return f.enrollments, nil
}

type fakeNotes struct {
	created []*domain.Note
	links   map[string][]string
}

func (f *fakeNotes) Create(ctx context.Context, n *domain.Note) error {
	n.ID = fmt.Sprintf("note-%d", len(f.created)+1)
	f.created = append(f.created, n)
	return nil
}

func (f *fakeNotes) Update(ctx context.Context, n *domain.Note) error {
	return nil
}

func (f *fakeNotes) AddAttachments(ctx context.Context, noteID string, ids ...string) error {
	if f.links == nil {
		f.links = map[string][]string{}
	}
	f.links[noteID] = append(f.links[noteID], ids...)
	return nil
}

type fakeAttachments struct {
	created []*domain.Attachment
}

func (f *fakeAttachments) Create(ctx context.Context, a *domain.Attachment) error {
	a.ID = fmt.Sprintf("att-%d", len(f.created)+1)
	f.created = append(f.created, a)
	return nil
}

type fakeTasks struct {
	created []*domain.Task
	updated []*domain.Task
}

func (f *fakeTasks) Create(ctx context.Context, t *domain.Task) error {
	t.ID = fmt.Sprintf("task-%d", len(f.created)+1)
	f.created = append(f.created, t)
	return nil
}

func (f *fakeTasks) Update(ctx context.Context, t *domain.Task) error {
	f.updated = append(f.updated, t)
	return nil
}

// fakeAssignments mimics the unique (enrollment, task) constraint.
type fakeAssignments struct {
	rows []domain.EmployeeTask
}

func (f *fakeAssignments) GetOrCreate(ctx context.Context, enrollmentID, taskID string) (*domain.EmployeeTask, bool, error) {
	for i := range f.rows {
		if f.rows[i].EnrollmentID == enrollmentID && f.rows[i].TaskID == taskID {
			return &f.rows[i], false, nil
		}
	}
	f.rows = append(f.rows, domain.EmployeeTask{
		ID:           fmt.Sprintf("et-%d", len(f.rows)+1),
		EnrollmentID: enrollmentID,
		TaskID:       taskID,
		Status:       domain.TaskStatusTodo,
	})
	return &f.rows[len(f.rows)-1], true, nil
}

func (f *fakeAssignments) ListByTask(ctx context.Context, taskID string) ([]domain.EmployeeTask, error) {
	var out []domain.EmployeeTask
	for _, r := range f.rows {
		if r.TaskID == taskID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAssignments) count(enrollmentID, taskID string) int {
	n := 0
	for _, r := range f.rows {
		if r.EnrollmentID == enrollmentID && r.TaskID == taskID {
			n++
		}
	}
	return n
}

type fakeFiles struct {
	stored []string
	err    error
}

func (f *fakeFiles) Put(ctx context.Context, fh *multipart.FileHeader) (storage.Object, error) {
	if f.err != nil {
		return storage.Object{}, f.err
	}
	key := "offboarding/attachments/" + fh.Filename
	f.stored = append(f.stored, key)
	return storage.Object{Key: key, FileName: fh.Filename, MimeType: "text/plain", Size: fh.Size}, nil
}

type fixture struct {
	employees    *fakeEmployees
	offboardings *fakeOffboardings
	stages       *fakeStages
	enrollments  *fakeEnrollments
	notes        *fakeNotes
	attachments  *fakeAttachments
	tasks        *fakeTasks
	assignments  *fakeAssignments
	files        *fakeFiles
}

func newFixture() *fixture {
	return &fixture{
		employees: &fakeEmployees{employees: []domain.Employee{
			{ID: "emp-1", Name: "Ada Lovelace", IsActive: true},
			{ID: "emp-2", Name: "Grace Hopper", IsActive: true},
			{ID: "emp-3", Name: "Alan Turing", IsActive: true},
		}},
		offboardings: &fakeOffboardings{},
		stages: &fakeStages{stages: []domain.Stage{
			{ID: "s-1", OffboardingID: "ob-A", Title: "Notice Period", Type: domain.StageTypeNoticePeriod},
			{ID: "s-2", OffboardingID: "ob-A", Title: "Exit Interview", Type: domain.StageTypeInterview},
			{ID: "s-3", OffboardingID: "ob-B", Title: "Handover", Type: domain.StageTypeHandover},
		}},
		enrollments: &fakeEnrollments{enrollments: []domain.OffboardingEmployee{
			{ID: "en-1", EmployeeID: "emp-1", EmployeeName: "Ada Lovelace", StageID: "s-1"},
			{ID: "en-2", EmployeeID: "emp-2", EmployeeName: "Grace Hopper", StageID: "s-2"},
			{ID: "en-3", EmployeeID: "emp-3", EmployeeName: "Alan Turing", StageID: "s-3"},
		}},
		notes:       &fakeNotes{},
		attachments: &fakeAttachments{},
		tasks:       &fakeTasks{},
		assignments: &fakeAssignments{},
		files:       &fakeFiles{},
	}
}

func (fx *fixture) deps() Dependencies {
	return Dependencies{
		Employees:    fx.employees,
		Offboardings: fx.offboardings,
		Stages:       fx.stages,
		Enrollments:  fx.enrollments,
		Notes:        fx.notes,
		Attachments:  fx.attachments,
		Tasks:        fx.tasks,
		Assignments:  fx.assignments,
		Files:        fx.files,
	}
}

func uploads(t *testing.T, field string, names ...string) map[string][]*multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, name := range names {
		part, err := w.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = part.Write([]byte("contents of " + name))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File
}

func fieldNames(f *Form) []string {
	names := make([]string, 0, len(f.Fields()))
	for _, field := range f.Fields() {
		names = append(names, field.Name)
	}
	return names
}

func choiceValues(field *Field) []string {
	values := make([]string, 0, len(field.Choices))
	for _, c := range field.Choices {
		values = append(values, c.Value)
	}
	return values
}

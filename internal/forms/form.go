package forms

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/form"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/spec-kit/offboarding-service/internal/domain"
	"github.com/spec-kit/offboarding-service/internal/storage"
)

var (
	// ErrInvalidForm is returned when saving a form that is unbound or failed validation.
	ErrInvalidForm = errors.New("form is not valid")
	// ErrMissingOffboarding is returned when a new stage has no parent process.
	ErrMissingOffboarding = errors.New("stage has no offboarding process")
	// ErrMissingEnrollment is returned when a stage move targets an unsaved enrollment.
	ErrMissingEnrollment = errors.New("enrollment has not been saved")
	// ErrNoticePeriodUnset is returned when an existing enrollment lacks notice period dates.
	ErrNoticePeriodUnset = errors.New("notice period dates are not set")
)

// NonFieldErrors is the error key for problems not tied to one field.
const NonFieldErrors = "__all__"

const (
	msgRequired      = "This field is required."
	msgInvalidChoice = "Select a valid choice. That choice is not one of the available choices."
	msgInvalidValue  = "Enter a valid value."
)

// EmployeeDirectory lists employees for manager and author choices.
type EmployeeDirectory interface {
	List(ctx context.Context) ([]domain.Employee, error)
}

// OffboardingStore persists offboarding processes.
type OffboardingStore interface {
	Create(ctx context.Context, offboarding *domain.Offboarding) error
	Update(ctx context.Context, offboarding *domain.Offboarding) error
}

// StageStore persists and lists pipeline stages.
type StageStore interface {
	Create(ctx context.Context, stage *domain.Stage) error
	Update(ctx context.Context, stage *domain.Stage) error
	GetByID(ctx context.Context, id string) (*domain.Stage, error)
	ListByOffboarding(ctx context.Context, offboardingID string) ([]domain.Stage, error)
	List(ctx context.Context) ([]domain.Stage, error)
}

// EnrollmentStore persists employee enrollments.
type EnrollmentStore interface {
	Create(ctx context.Context, enrollment *domain.OffboardingEmployee) error
	Update(ctx context.Context, enrollment *domain.OffboardingEmployee) error
	UpdateStage(ctx context.Context, enrollmentID, stageID string) error
	List(ctx context.Context) ([]domain.OffboardingEmployee, error)
}

// NoteStore persists notes and their attachment links.
type NoteStore interface {
	Create(ctx context.Context, note *domain.Note) error
	Update(ctx context.Context, note *domain.Note) error
	AddAttachments(ctx context.Context, noteID string, attachmentIDs ...string) error
}

// AttachmentStore persists attachment records.
type AttachmentStore interface {
	Create(ctx context.Context, attachment *domain.Attachment) error
}

// TaskStore persists tasks.
type TaskStore interface {
	Create(ctx context.Context, task *domain.Task) error
	Update(ctx context.Context, task *domain.Task) error
}

// AssignmentStore creates task assignments idempotently.
type AssignmentStore interface {
	GetOrCreate(ctx context.Context, enrollmentID, taskID string) (*domain.EmployeeTask, bool, error)
	ListByTask(ctx context.Context, taskID string) ([]domain.EmployeeTask, error)
}

// FileStore keeps uploaded files.
type FileStore interface {
	Put(ctx context.Context, fh *multipart.FileHeader) (storage.Object, error)
}

// Dependencies bundles the collaborators forms read choices from and save to.
type Dependencies struct {
	Employees    EmployeeDirectory
	Offboardings OffboardingStore
	Stages       StageStore
	Enrollments  EnrollmentStore
	Notes        NoteStore
	Attachments  AttachmentStore
	Tasks        TaskStore
	Assignments  AssignmentStore
	Files        FileStore
	Logger       *zap.Logger
}

func (d Dependencies) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

// Widget names the input control a field renders as.
type Widget string

const (
	WidgetText           Widget = "text"
	WidgetTextarea       Widget = "textarea"
	WidgetNumber         Widget = "number"
	WidgetDate           Widget = "date"
	WidgetSelect         Widget = "select"
	WidgetSelectMultiple Widget = "select_multiple"
	WidgetFileMultiple   Widget = "file_multiple"
	WidgetCheckbox       Widget = "checkbox"
)

// Choice is one selectable option.
type Choice struct {
	Value string
	Label string
}

// Field declares one form input.
type Field struct {
	Name     string
	Label    string
	Widget   Widget
	Required bool
	Attrs    map[string]string
	Choices  []Choice
	// EmptyLabel is the label of the blank option of a single select. Nil
	// means the select offers no blank option.
	EmptyLabel *string
	Initial    []string
}

func (f *Field) isChoice() bool {
	return f.Widget == WidgetSelect || f.Widget == WidgetSelectMultiple
}

func (f *Field) hasChoice(value string) bool {
	for _, c := range f.Choices {
		if c.Value == value {
			return true
		}
	}
	return false
}

func emptyLabel(label string) *string {
	return &label
}

const defaultEmptyLabel = "---------"

// Form holds the declared fields of a form and the submission bound to it.
// Concrete forms embed it and point target at their typed input struct.
type Form struct {
	title   string
	fields  []*Field
	target  any
	values  url.Values
	files   map[string][]*multipart.FileHeader
	bound   bool
	checked bool
	errs    map[string][]string
}

func newForm(title string, target any, fields ...*Field) *Form {
	return &Form{title: title, target: target, fields: fields}
}

// Title is the heading shown above the form.
func (f *Form) Title() string {
	return f.title
}

// Fields returns the declared fields in display order.
func (f *Form) Fields() []*Field {
	return f.fields
}

// Field returns the named field or nil.
func (f *Form) Field(name string) *Field {
	for _, field := range f.fields {
		if field.Name == name {
			return field
		}
	}
	return nil
}

// Bind attaches submitted values and uploaded files. Binding resets any
// previous validation result.
func (f *Form) Bind(values url.Values, files map[string][]*multipart.FileHeader) {
	if values == nil {
		values = url.Values{}
	}
	if v := reflect.ValueOf(f.target); v.Kind() == reflect.Pointer && !v.IsNil() {
		v.Elem().Set(reflect.Zero(v.Elem().Type()))
	}
	f.values = values
	f.files = files
	f.bound = true
	f.checked = false
	f.errs = nil
}

// IsBound reports whether a submission was bound.
func (f *Form) IsBound() bool {
	return f.bound
}

// Files returns the uploads submitted under name.
func (f *Form) Files(name string) []*multipart.FileHeader {
	if f.files == nil {
		return nil
	}
	return f.files[name]
}

// Errors returns field errors keyed by field name.
func (f *Form) Errors() map[string][]string {
	return f.errs
}

// IsValid decodes the bound submission into the typed input, validates it
// and checks choices. An unbound form is never valid.
func (f *Form) IsValid() bool {
	if !f.bound {
		return false
	}
	if f.checked {
		return len(f.errs) == 0
	}
	f.checked = true
	f.errs = map[string][]string{}

	for _, field := range f.fields {
		if field.Required && !f.submitted(field) {
			f.addError(field.Name, msgRequired)
		}
	}

	if err := decoder.Decode(f.target, f.values); err != nil {
		var decodeErrs form.DecodeErrors
		if !errors.As(err, &decodeErrs) {
			f.addError(NonFieldErrors, err.Error())
		}
		for name := range decodeErrs {
			if f.hasError(name) {
				continue
			}
			f.addError(name, decodeMessage(f.Field(name)))
		}
	}

	if c, ok := f.target.(cleaner); ok {
		c.clean()
	}

	if err := validate.Struct(f.target); err != nil {
		var validationErrs validator.ValidationErrors
		if !errors.As(err, &validationErrs) {
			f.addError(NonFieldErrors, err.Error())
		}
		for _, fe := range validationErrs {
			if f.hasError(fe.Field()) {
				continue
			}
			f.addError(fe.Field(), validationMessage(fe))
		}
	}

	for _, field := range f.fields {
		if !field.isChoice() || f.hasError(field.Name) {
			continue
		}
		for _, v := range f.values[field.Name] {
			if v == "" || field.hasChoice(v) {
				continue
			}
			if field.Widget == WidgetSelectMultiple {
				f.addError(field.Name, fmt.Sprintf("Select a valid choice. %s is not one of the available choices.", v))
			} else {
				f.addError(field.Name, msgInvalidChoice)
			}
			break
		}
	}

	if len(f.errs) == 0 {
		f.errs = nil
	}
	return len(f.errs) == 0
}

func (f *Form) submitted(field *Field) bool {
	if field.Widget == WidgetFileMultiple {
		return len(f.Files(field.Name)) > 0
	}
	for _, v := range f.values[field.Name] {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

func (f *Form) hasError(name string) bool {
	return len(f.errs[name]) > 0
}

func (f *Form) addError(name, message string) {
	if f.errs == nil {
		f.errs = map[string][]string{}
	}
	f.errs[name] = append(f.errs[name], message)
}

func logSaved(logger *zap.Logger, name, id string) {
	logger.Debug("form saved", zap.String("form", name), zap.String("id", id))
}

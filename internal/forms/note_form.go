package forms

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/spec-kit/offboarding-service/internal/domain"
)

type noteInput struct {
	Title        string `form:"title" validate:"max=50"`
	Description  string `form:"description" validate:"max=255"`
	NoteBy       string `form:"note_by"`
	EnrollmentID string `form:"employee_id"`
}

func (in *noteInput) clean() {
	in.Title = sanitizeText(in.Title)
	in.Description = sanitizeText(in.Description)
}

// NoteForm edits a note and accepts any number of attachment uploads.
type NoteForm struct {
	*Form
	deps     Dependencies
	instance *domain.Note
	input    noteInput
}

// NewNoteForm builds the note form. The attachment input is not stored on the
// note itself; Save turns each upload into an attachment record.
func NewNoteForm(ctx context.Context, deps Dependencies, instance *domain.Note) (*NoteForm, error) {
	authors, err := employeeChoices(ctx, deps.Employees)
	if err != nil {
		return nil, err
	}
	enrollments, err := enrollmentChoices(ctx, deps.Enrollments)
	if err != nil {
		return nil, err
	}

	f := &NoteForm{deps: deps, instance: instance}
	title := &Field{Name: "title", Label: "Title", Widget: WidgetText, Required: true}
	description := &Field{Name: "description", Label: "Description", Widget: WidgetTextarea}
	noteBy := &Field{Name: "note_by", Label: "Note By", Widget: WidgetSelect, Choices: authors,
		EmptyLabel: emptyLabel(defaultEmptyLabel)}
	enrollment := &Field{Name: "employee_id", Label: "Employee", Widget: WidgetSelect, Required: true, Choices: enrollments,
		EmptyLabel: emptyLabel(defaultEmptyLabel)}
	attachment := &Field{Name: "attachment", Label: "Attachments", Widget: WidgetFileMultiple}

	if instance != nil {
		title.Initial = []string{instance.Title}
		description.Initial = []string{instance.Description}
		noteBy.Initial = []string{instance.NoteBy}
		enrollment.Initial = []string{instance.EnrollmentID}
	}

	f.Form = newForm("Add Note", &f.input, title, description, noteBy, enrollment, attachment)
	return f, nil
}

// Save stores every upload and creates an attachment record for it, points
// the note at the first upload, then persists the note when commit is true.
// Attachment records are created even when commit is false, but they are
// only linked to the note on a committed save. The uploads are returned
// alongside the note, or nil when nothing was uploaded.
func (f *NoteForm) Save(ctx context.Context, commit bool) (*domain.Note, []*multipart.FileHeader, error) {
	if !f.IsValid() {
		return nil, nil, ErrInvalidForm
	}

	record := &domain.Note{}
	if f.instance != nil {
		*record = *f.instance
	}

	var uploads []*multipart.FileHeader
	var attachmentIDs []string
	if files := f.Files("attachment"); len(files) > 0 {
		uploads = files
		for i, fh := range uploads {
			obj, err := f.deps.Files.Put(ctx, fh)
			if err != nil {
				return nil, nil, fmt.Errorf("store attachment %q: %w", fh.Filename, err)
			}
			if i == 0 {
				key := obj.Key
				record.Attachment = &key
			}
			attachment := &domain.Attachment{
				StorageKey: obj.Key,
				FileName:   obj.FileName,
				MimeType:   obj.MimeType,
				SizeBytes:  obj.Size,
			}
			if err := f.deps.Attachments.Create(ctx, attachment); err != nil {
				return nil, nil, fmt.Errorf("create attachment: %w", err)
			}
			attachmentIDs = append(attachmentIDs, attachment.ID)
		}
	}

	record.Title = f.input.Title
	record.Description = f.input.Description
	record.NoteBy = f.input.NoteBy
	record.EnrollmentID = f.input.EnrollmentID

	if !commit {
		return record, uploads, nil
	}
	if record.ID == "" {
		if err := f.deps.Notes.Create(ctx, record); err != nil {
			return nil, nil, fmt.Errorf("create note: %w", err)
		}
	} else if err := f.deps.Notes.Update(ctx, record); err != nil {
		return nil, nil, fmt.Errorf("update note: %w", err)
	}
	if len(attachmentIDs) > 0 {
		if err := f.deps.Notes.AddAttachments(ctx, record.ID, attachmentIDs...); err != nil {
			return nil, nil, fmt.Errorf("link attachments: %w", err)
		}
		record.AttachmentIDs = append(record.AttachmentIDs, attachmentIDs...)
	}
	logSaved(f.deps.logger(), "note", record.ID)
	return record, uploads, nil
}

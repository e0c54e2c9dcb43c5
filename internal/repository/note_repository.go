package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/offboarding-service/internal/domain"
)

// NoteRepository persists enrollment notes and their attachment links.
type NoteRepository interface {
	Create(ctx context.Context, note *domain.Note) error
	Update(ctx context.Context, note *domain.Note) error
	AddAttachments(ctx context.Context, noteID string, attachmentIDs ...string) error
	ListByEnrollment(ctx context.Context, enrollmentID string) ([]domain.Note, error)
}

type noteRepository struct {
	pool *pgxpool.Pool
}

// NewNoteRepository constructs repository.
func NewNoteRepository(pool *pgxpool.Pool) NoteRepository {
	return &noteRepository{pool: pool}
}

func (r *noteRepository) Create(ctx context.Context, note *domain.Note) error {
	const query = `
        INSERT INTO offboarding_notes (title, description, note_by, enrollment_id, attachment)
        VALUES ($1, $2, NULLIF($3,'')::uuid, $4, $5)
        RETURNING id::text, created_at`
	return r.pool.QueryRow(ctx, query,
		note.Title,
		note.Description,
		note.NoteBy,
		note.EnrollmentID,
		note.Attachment,
	).Scan(&note.ID, &note.CreatedAt)
}

func (r *noteRepository) Update(ctx context.Context, note *domain.Note) error {
	const query = `
        UPDATE offboarding_notes SET title=$1, description=$2, note_by=NULLIF($3,'')::uuid, enrollment_id=$4,
            attachment=COALESCE($5, attachment)
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		note.Title,
		note.Description,
		note.NoteBy,
		note.EnrollmentID,
		note.Attachment,
		note.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// AddAttachments links attachments to a note; already linked ids are skipped.
func (r *noteRepository) AddAttachments(ctx context.Context, noteID string, attachmentIDs ...string) error {
	if len(attachmentIDs) == 0 {
		return nil
	}
	const query = `
        INSERT INTO offboarding_note_attachments (note_id, attachment_id)
        SELECT $1, unnest($2::uuid[])
        ON CONFLICT DO NOTHING`
	_, err := r.pool.Exec(ctx, query, noteID, attachmentIDs)
	return err
}

func (r *noteRepository) ListByEnrollment(ctx context.Context, enrollmentID string) ([]domain.Note, error) {
	const query = `
        SELECT n.id::text, n.title, n.description, COALESCE(n.note_by::text, ''), n.enrollment_id::text, n.attachment,
               COALESCE(array_agg(na.attachment_id::text) FILTER (WHERE na.attachment_id IS NOT NULL), '{}'),
               n.created_at
        FROM offboarding_notes n
        LEFT JOIN offboarding_note_attachments na ON na.note_id = n.id
        WHERE n.enrollment_id=$1
        GROUP BY n.id
        ORDER BY n.created_at DESC`
	rows, err := r.pool.Query(ctx, query, enrollmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Note
	for rows.Next() {
		var note domain.Note
		if err := rows.Scan(
			&note.ID,
			&note.Title,
			&note.Description,
			&note.NoteBy,
			&note.EnrollmentID,
			&note.Attachment,
			&note.AttachmentIDs,
			&note.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, note)
	}
	return result, rows.Err()
}

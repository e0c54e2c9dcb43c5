package domain

import "time"

// Note is free text attached to an enrollment. Attachment holds the storage
// key of the first uploaded file; AttachmentIDs is the full collection.
type Note struct {
	ID            string
	Title         string
	Description   string
	NoteBy        string
	EnrollmentID  string
	Attachment    *string
	AttachmentIDs []string
	Attachments   []Attachment
	CreatedAt     time.Time
}

// Attachment stores metadata for a file kept in object storage.
type Attachment struct {
	ID         string
	StorageKey string
	FileName   string
	MimeType   string
	SizeBytes  int64
	CreatedAt  time.Time
}

package model

import "time"

// SubmissionFile maps to the submission_files table. The row holds metadata
// only; the blob lives in the blob store under StoredName. Append-only.
type SubmissionFile struct {
	SubmissionFileID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"submission_file_id"`
	SubmissionID     string    `gorm:"type:uuid;not null;index"                       json:"submission_id"`
	DocumentType     string    `gorm:"type:varchar(120);not null"                     json:"document_type"`
	OriginalName     string    `gorm:"type:varchar(255);not null"                     json:"original_name"`
	StoredName       string    `gorm:"type:varchar(255);not null;uniqueIndex"         json:"stored_name"`
	MimeType         string    `gorm:"type:varchar(255);not null"                     json:"mime_type"`
	SizeBytes        int64     `gorm:"not null"                                       json:"size_bytes"`
	CreatedAt        time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName sets the table name.
func (SubmissionFile) TableName() string { return "submission_files" }

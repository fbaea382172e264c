package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Frey210/SiWarga/internal/model"
)

// SubmissionFileRepository is the submission_files data-access interface.
// Rows are append-only.
type SubmissionFileRepository interface {
	Create(ctx context.Context, file *model.SubmissionFile) error
	GetByID(ctx context.Context, id string) (*model.SubmissionFile, error)
	ListBySubmission(ctx context.Context, submissionID string) ([]model.SubmissionFile, error)
}

type submissionFileRepo struct {
	db *gorm.DB
}

// NewSubmissionFileRepo creates the GORM-backed SubmissionFileRepository.
func NewSubmissionFileRepo(db *gorm.DB) SubmissionFileRepository {
	return &submissionFileRepo{db: db}
}

func (r *submissionFileRepo) Create(ctx context.Context, file *model.SubmissionFile) error {
	return r.db.WithContext(ctx).Create(file).Error
}

func (r *submissionFileRepo) GetByID(ctx context.Context, id string) (*model.SubmissionFile, error) {
	var file model.SubmissionFile
	err := r.db.WithContext(ctx).
		Where("submission_file_id = ?", id).
		First(&file).Error
	if err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *submissionFileRepo) ListBySubmission(ctx context.Context, submissionID string) ([]model.SubmissionFile, error) {
	var files []model.SubmissionFile
	err := r.db.WithContext(ctx).
		Where("submission_id = ?", submissionID).
		Order("created_at ASC").
		Find(&files).Error
	if err != nil {
		return nil, err
	}
	return files, nil
}

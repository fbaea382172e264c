package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Frey210/SiWarga/internal/model"
)

// ApprovalLogRepository reads the append-only audit trail. Writes happen only
// through SubmissionRepository.UpdateStatusWithLog.
type ApprovalLogRepository interface {
	// GetLatest returns the most recent entry, or gorm.ErrRecordNotFound
	// when no action has ever been applied.
	GetLatest(ctx context.Context, submissionID string) (*model.ApprovalLog, error)
	// ListBySubmission returns the full history, most recent first.
	ListBySubmission(ctx context.Context, submissionID string) ([]model.ApprovalLog, error)
}

type approvalLogRepo struct {
	db *gorm.DB
}

// NewApprovalLogRepo creates the GORM-backed ApprovalLogRepository.
func NewApprovalLogRepo(db *gorm.DB) ApprovalLogRepository {
	return &approvalLogRepo{db: db}
}

func (r *approvalLogRepo) GetLatest(ctx context.Context, submissionID string) (*model.ApprovalLog, error) {
	var entry model.ApprovalLog
	err := r.db.WithContext(ctx).
		Where("submission_id = ?", submissionID).
		Order("created_at DESC").
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *approvalLogRepo) ListBySubmission(ctx context.Context, submissionID string) ([]model.ApprovalLog, error) {
	var entries []model.ApprovalLog
	err := r.db.WithContext(ctx).
		Where("submission_id = ?", submissionID).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

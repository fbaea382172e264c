package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Frey210/SiWarga/internal/model"
)

// SubmissionListFilters narrows a resident's own submission list.
type SubmissionListFilters struct {
	Status string
	Type   string
}

// AdminSubmissionFilters narrows the admin review queue. Query is a
// case-insensitive substring matched against the owner's email, full name
// and NIK, the submission type and the payload text.
type AdminSubmissionFilters struct {
	Status string
	Type   string
	Query  string
}

// SubmissionRepository is the submissions data-access interface.
// Submissions are never deleted; status changes go through
// UpdateStatusWithLog so the audit row commits with the update.
type SubmissionRepository interface {
	Create(ctx context.Context, sub *model.Submission) error
	GetByID(ctx context.Context, id string) (*model.Submission, error)
	GetByIDWithOwner(ctx context.Context, id string) (*model.Submission, error)
	ListByOwner(ctx context.Context, userID string, filters *SubmissionListFilters) ([]model.Submission, error)
	AdminList(ctx context.Context, filters *AdminSubmissionFilters, offset, limit int) ([]model.Submission, int64, error)
	// UpdateStatusWithLog persists the submission's status and updated_at
	// together with one approval-log row in a single transaction.
	UpdateStatusWithLog(ctx context.Context, sub *model.Submission, entry *model.ApprovalLog) error
}

type submissionRepo struct {
	db *gorm.DB
}

// NewSubmissionRepo creates the GORM-backed SubmissionRepository.
func NewSubmissionRepo(db *gorm.DB) SubmissionRepository {
	return &submissionRepo{db: db}
}

func (r *submissionRepo) Create(ctx context.Context, sub *model.Submission) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *submissionRepo) GetByID(ctx context.Context, id string) (*model.Submission, error) {
	var sub model.Submission
	err := r.db.WithContext(ctx).
		Where("submission_id = ?", id).
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *submissionRepo) GetByIDWithOwner(ctx context.Context, id string) (*model.Submission, error) {
	var sub model.Submission
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Where("submission_id = ?", id).
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *submissionRepo) ListByOwner(ctx context.Context, userID string, filters *SubmissionListFilters) ([]model.Submission, error) {
	db := r.db.WithContext(ctx).Where("user_id = ?", userID)

	if filters != nil {
		if filters.Status != "" {
			db = db.Where("status = ?", filters.Status)
		}
		if filters.Type != "" {
			db = db.Where("type = ?", filters.Type)
		}
	}

	var subs []model.Submission
	if err := db.Order("created_at DESC").Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *submissionRepo) AdminList(ctx context.Context, filters *AdminSubmissionFilters, offset, limit int) ([]model.Submission, int64, error) {
	db := r.db.WithContext(ctx).Model(&model.Submission{}).
		Joins("JOIN users ON users.user_id = submissions.user_id")

	if filters != nil {
		if filters.Status != "" {
			db = db.Where("submissions.status = ?", filters.Status)
		}
		if filters.Type != "" {
			db = db.Where("submissions.type = ?", filters.Type)
		}
		if filters.Query != "" {
			like := "%" + filters.Query + "%"
			db = db.Where(
				"users.email ILIKE ? OR users.full_name ILIKE ? OR users.nik ILIKE ? OR submissions.type ILIKE ? OR submissions.payload::text ILIKE ?",
				like, like, like, like, like,
			)
		}
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var subs []model.Submission
	if err := db.Preload("Owner").
		Order("submissions.created_at DESC").
		Offset(offset).Limit(limit).
		Find(&subs).Error; err != nil {
		return nil, 0, err
	}

	return subs, total, nil
}

func (r *submissionRepo) UpdateStatusWithLog(ctx context.Context, sub *model.Submission, entry *model.ApprovalLog) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Submission{}).
			Where("submission_id = ?", sub.SubmissionID).
			Updates(map[string]interface{}{
				"status":     sub.Status,
				"updated_at": sub.UpdatedAt,
			}).Error; err != nil {
			return err
		}
		return tx.Create(entry).Error
	})
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Frey210/SiWarga/internal/model"
)

// AnnouncementFilters narrows announcement lists. An empty Status means all
// statuses (admin view); the public board passes PUBLISHED.
type AnnouncementFilters struct {
	Status   string
	Category string
}

// AnnouncementRepository is the announcements data-access interface.
type AnnouncementRepository interface {
	Create(ctx context.Context, a *model.Announcement) error
	GetByID(ctx context.Context, id string) (*model.Announcement, error)
	GetBySlug(ctx context.Context, slug string) (*model.Announcement, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Update(ctx context.Context, a *model.Announcement) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filters *AnnouncementFilters, offset, limit int) ([]model.Announcement, int64, error)
}

type announcementRepo struct {
	db *gorm.DB
}

// NewAnnouncementRepo creates the GORM-backed AnnouncementRepository.
func NewAnnouncementRepo(db *gorm.DB) AnnouncementRepository {
	return &announcementRepo{db: db}
}

func (r *announcementRepo) Create(ctx context.Context, a *model.Announcement) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *announcementRepo) GetByID(ctx context.Context, id string) (*model.Announcement, error) {
	var a model.Announcement
	err := r.db.WithContext(ctx).
		Where("announcement_id = ?", id).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *announcementRepo) GetBySlug(ctx context.Context, slug string) (*model.Announcement, error) {
	var a model.Announcement
	err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *announcementRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Announcement{}).
		Where("slug = ?", slug).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *announcementRepo) Update(ctx context.Context, a *model.Announcement) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *announcementRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("announcement_id = ?", id).
		Delete(&model.Announcement{}).Error
}

func (r *announcementRepo) List(ctx context.Context, filters *AnnouncementFilters, offset, limit int) ([]model.Announcement, int64, error) {
	db := r.db.WithContext(ctx).Model(&model.Announcement{})

	if filters != nil {
		if filters.Status != "" {
			db = db.Where("status = ?", filters.Status)
		}
		if filters.Category != "" {
			db = db.Where("category = ?", filters.Category)
		}
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []model.Announcement
	if err := db.Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

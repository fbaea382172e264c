package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Frey210/SiWarga/config"
	"github.com/Frey210/SiWarga/internal/dto"
	"github.com/Frey210/SiWarga/internal/model"
	"github.com/Frey210/SiWarga/internal/repository"
	"github.com/Frey210/SiWarga/pkg/storage"
)

var (
	ErrAnnouncementNotFound = errors.New("announcement not found")
	ErrCoverTooLarge        = errors.New("cover image too large")
	ErrCoverNotImage        = errors.New("cover must be an image")
	ErrNoCover              = errors.New("announcement has no cover")
)

// CoverUpload carries an incoming cover image.
type CoverUpload struct {
	OriginalName string
	MimeType     string
	SizeBytes    int64
	Content      io.Reader
}

// CoverDownload carries an outgoing cover image.
type CoverDownload struct {
	Content      io.ReadCloser
	OriginalName string
	MimeType     string
	SizeBytes    int64
	Focus        string
}

// AnnouncementService manages the content board: admin CRUD with a
// DRAFT/PUBLISHED/ARCHIVED lifecycle plus the public read surface.
type AnnouncementService interface {
	Create(ctx context.Context, authorID string, req *dto.CreateAnnouncementRequest) (*dto.AnnouncementResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateAnnouncementRequest) (*dto.AnnouncementResponse, error)
	Delete(ctx context.Context, id string) error
	ChangeStatus(ctx context.Context, id, status string) (*dto.AnnouncementResponse, error)
	GetByID(ctx context.Context, id string) (*dto.AnnouncementResponse, error)
	AdminList(ctx context.Context, req *dto.AdminListAnnouncementsRequest) ([]dto.AnnouncementListItem, int64, error)

	PublicList(ctx context.Context, req *dto.ListAnnouncementsRequest) ([]dto.AnnouncementListItem, int64, error)
	PublicGetBySlug(ctx context.Context, slug string) (*dto.AnnouncementResponse, error)
	PublicGetCover(ctx context.Context, slug string) (*CoverDownload, error)

	UploadCover(ctx context.Context, id string, upload *CoverUpload) (*dto.AnnouncementResponse, error)
	DeleteCover(ctx context.Context, id string) (*dto.AnnouncementResponse, error)
}

type announcementService struct {
	cfg    *config.Config
	repo   *repository.Repository
	blobs  storage.Store
	logger *zap.Logger
}

// NewAnnouncementService creates the AnnouncementService implementation.
func NewAnnouncementService(
	cfg *config.Config,
	repo *repository.Repository,
	blobs storage.Store,
	logger *zap.Logger,
) AnnouncementService {
	return &announcementService{cfg: cfg, repo: repo, blobs: blobs, logger: logger}
}

// slugify lowercases the title and collapses every non-alphanumeric run into
// a single separator.
func slugify(title string) string {
	var b strings.Builder
	lastDash := true // suppress a leading dash
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = "announcement"
	}
	if len(slug) > 150 {
		slug = strings.TrimRight(slug[:150], "-")
	}
	return slug
}

// uniqueSlug disambiguates collisions with a numeric suffix: base, base-2,
// base-3, …
func (s *announcementService) uniqueSlug(ctx context.Context, base string) (string, error) {
	slug := base
	for i := 2; ; i++ {
		exists, err := s.repo.Announcement.SlugExists(ctx, slug)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

func (s *announcementService) Create(ctx context.Context, authorID string, req *dto.CreateAnnouncementRequest) (*dto.AnnouncementResponse, error) {
	slug, err := s.uniqueSlug(ctx, slugify(req.Title))
	if err != nil {
		s.logger.Error("derive slug failed", zap.Error(err))
		return nil, err
	}

	focus := req.CoverFocus
	if focus == "" {
		focus = "center"
	}

	a := &model.Announcement{
		Slug:         slug,
		Title:        req.Title,
		Excerpt:      req.Excerpt,
		Category:     req.Category,
		Content:      req.Content,
		Status:       model.AnnouncementDraft,
		CoverFocus:   focus,
		AuthorUserID: &authorID,
	}
	if err := s.repo.Announcement.Create(ctx, a); err != nil {
		s.logger.Error("create announcement failed", zap.Error(err))
		return nil, err
	}

	resp := dto.NewAnnouncementResponse(a)
	return &resp, nil
}

func (s *announcementService) getByID(ctx context.Context, id string) (*model.Announcement, error) {
	a, err := s.repo.Announcement.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnnouncementNotFound
		}
		s.logger.Error("lookup announcement failed", zap.Error(err))
		return nil, err
	}
	return a, nil
}

func (s *announcementService) Update(ctx context.Context, id string, req *dto.UpdateAnnouncementRequest) (*dto.AnnouncementResponse, error) {
	a, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// the slug stays stable across title edits
	if req.Title != "" {
		a.Title = req.Title
	}
	a.Excerpt = req.Excerpt
	a.Category = req.Category
	a.Content = req.Content
	if req.CoverFocus != "" {
		a.CoverFocus = req.CoverFocus
	}
	a.UpdatedAt = time.Now()

	if err := s.repo.Announcement.Update(ctx, a); err != nil {
		s.logger.Error("update announcement failed", zap.Error(err))
		return nil, err
	}

	resp := dto.NewAnnouncementResponse(a)
	return &resp, nil
}

func (s *announcementService) Delete(ctx context.Context, id string) error {
	a, err := s.getByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Announcement.Delete(ctx, id); err != nil {
		s.logger.Error("delete announcement failed", zap.Error(err))
		return err
	}

	// the row is gone; a failed blob delete only leaves an orphan
	if a.HasCover() {
		if err := s.blobs.Delete(a.CoverStoredName); err != nil {
			s.logger.Warn("delete cover blob failed", zap.String("handle", a.CoverStoredName), zap.Error(err))
		}
	}
	return nil
}

func (s *announcementService) ChangeStatus(ctx context.Context, id, status string) (*dto.AnnouncementResponse, error) {
	if !model.ValidAnnouncementStatus(status) {
		return nil, fmt.Errorf("invalid announcement status %q", status)
	}

	a, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch status {
	case model.AnnouncementPublished:
		// the publish timestamp is stamped once; republishing keeps it
		if a.PublishedAt == nil {
			now := time.Now()
			a.PublishedAt = &now
		}
	case model.AnnouncementDraft:
		a.PublishedAt = nil
	case model.AnnouncementArchived:
		// archiving keeps the publish timestamp
	}
	a.Status = status
	a.UpdatedAt = time.Now()

	if err := s.repo.Announcement.Update(ctx, a); err != nil {
		s.logger.Error("change announcement status failed", zap.Error(err))
		return nil, err
	}

	resp := dto.NewAnnouncementResponse(a)
	return &resp, nil
}

func (s *announcementService) GetByID(ctx context.Context, id string) (*dto.AnnouncementResponse, error) {
	a, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewAnnouncementResponse(a)
	return &resp, nil
}

func (s *announcementService) AdminList(ctx context.Context, req *dto.AdminListAnnouncementsRequest) ([]dto.AnnouncementListItem, int64, error) {
	filters := &repository.AnnouncementFilters{
		Status:   req.Status,
		Category: req.Category,
	}
	items, total, err := s.repo.Announcement.List(ctx, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("admin list announcements failed", zap.Error(err))
		return nil, 0, err
	}
	return dto.NewAnnouncementListItems(items), total, nil
}

func (s *announcementService) PublicList(ctx context.Context, req *dto.ListAnnouncementsRequest) ([]dto.AnnouncementListItem, int64, error) {
	filters := &repository.AnnouncementFilters{
		Status:   model.AnnouncementPublished,
		Category: req.Category,
	}
	items, total, err := s.repo.Announcement.List(ctx, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list announcements failed", zap.Error(err))
		return nil, 0, err
	}
	return dto.NewAnnouncementListItems(items), total, nil
}

func (s *announcementService) PublicGetBySlug(ctx context.Context, slug string) (*dto.AnnouncementResponse, error) {
	a, err := s.repo.Announcement.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnnouncementNotFound
		}
		s.logger.Error("lookup announcement failed", zap.Error(err))
		return nil, err
	}
	// unpublished announcements are invisible on the public surface
	if a.Status != model.AnnouncementPublished {
		return nil, ErrAnnouncementNotFound
	}

	resp := dto.NewAnnouncementResponse(a)
	return &resp, nil
}

func (s *announcementService) PublicGetCover(ctx context.Context, slug string) (*CoverDownload, error) {
	a, err := s.repo.Announcement.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnnouncementNotFound
		}
		s.logger.Error("lookup announcement failed", zap.Error(err))
		return nil, err
	}
	if a.Status != model.AnnouncementPublished {
		return nil, ErrAnnouncementNotFound
	}
	if !a.HasCover() {
		return nil, ErrNoCover
	}

	content, size, err := s.blobs.Open(a.CoverStoredName)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNoCover
		}
		s.logger.Error("open cover blob failed", zap.String("handle", a.CoverStoredName), zap.Error(err))
		return nil, err
	}

	return &CoverDownload{
		Content:      content,
		OriginalName: a.CoverOriginalName,
		MimeType:     a.CoverMimeType,
		SizeBytes:    size,
		Focus:        a.CoverFocus,
	}, nil
}

func (s *announcementService) UploadCover(ctx context.Context, id string, upload *CoverUpload) (*dto.AnnouncementResponse, error) {
	a, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// validate before touching storage so a rejected upload leaves the
	// prior cover untouched
	if !strings.HasPrefix(upload.MimeType, "image/") {
		return nil, ErrCoverNotImage
	}
	max := s.cfg.Storage.MaxCoverSizeBytes
	if upload.SizeBytes > max {
		return nil, ErrCoverTooLarge
	}

	handle := storedName(upload.OriginalName)
	size, err := s.blobs.Write(handle, io.LimitReader(upload.Content, max+1))
	if err != nil {
		s.logger.Error("write cover blob failed", zap.String("handle", handle), zap.Error(err))
		return nil, err
	}
	if size > max {
		// declared size lied; drop the blob and reject
		if derr := s.blobs.Delete(handle); derr != nil {
			s.logger.Warn("cleanup oversized cover failed", zap.String("handle", handle), zap.Error(derr))
		}
		return nil, ErrCoverTooLarge
	}

	oldHandle := a.CoverStoredName
	a.CoverOriginalName = upload.OriginalName
	a.CoverStoredName = handle
	a.CoverMimeType = upload.MimeType
	a.CoverSizeBytes = size
	a.UpdatedAt = time.Now()

	if err := s.repo.Announcement.Update(ctx, a); err != nil {
		s.logger.Error("update announcement cover failed", zap.Error(err))
		if derr := s.blobs.Delete(handle); derr != nil {
			s.logger.Warn("cleanup cover blob failed", zap.String("handle", handle), zap.Error(derr))
		}
		return nil, err
	}

	// replacing a cover removes the prior blob
	if oldHandle != "" {
		if err := s.blobs.Delete(oldHandle); err != nil {
			s.logger.Warn("delete replaced cover failed", zap.String("handle", oldHandle), zap.Error(err))
		}
	}

	resp := dto.NewAnnouncementResponse(a)
	return &resp, nil
}

func (s *announcementService) DeleteCover(ctx context.Context, id string) (*dto.AnnouncementResponse, error) {
	a, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !a.HasCover() {
		return nil, ErrNoCover
	}

	oldHandle := a.CoverStoredName
	a.CoverOriginalName = ""
	a.CoverStoredName = ""
	a.CoverMimeType = ""
	a.CoverSizeBytes = 0
	a.UpdatedAt = time.Now()

	if err := s.repo.Announcement.Update(ctx, a); err != nil {
		s.logger.Error("clear announcement cover failed", zap.Error(err))
		return nil, err
	}

	if err := s.blobs.Delete(oldHandle); err != nil {
		s.logger.Warn("delete cover blob failed", zap.String("handle", oldHandle), zap.Error(err))
	}

	resp := dto.NewAnnouncementResponse(a)
	return &resp, nil
}

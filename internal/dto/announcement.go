package dto

import (
	"time"

	"github.com/Frey210/SiWarga/internal/model"
)

// ── requests ──

// CreateAnnouncementRequest creates a draft announcement. The slug is
// derived from the title server-side.
type CreateAnnouncementRequest struct {
	Title      string `json:"title"       binding:"required,max=255"`
	Excerpt    string `json:"excerpt"     binding:"omitempty"`
	Category   string `json:"category"    binding:"omitempty,max=120"`
	Content    string `json:"content"     binding:"omitempty"`
	CoverFocus string `json:"cover_focus" binding:"omitempty,max=32"`
}

// UpdateAnnouncementRequest edits announcement content. A changed title does
// not re-derive the slug; the slug is stable once assigned.
type UpdateAnnouncementRequest struct {
	Title      string `json:"title"       binding:"omitempty,max=255"`
	Excerpt    string `json:"excerpt"     binding:"omitempty"`
	Category   string `json:"category"    binding:"omitempty,max=120"`
	Content    string `json:"content"     binding:"omitempty"`
	CoverFocus string `json:"cover_focus" binding:"omitempty,max=32"`
}

// ChangeAnnouncementStatusRequest moves an announcement through its
// DRAFT/PUBLISHED/ARCHIVED lifecycle.
type ChangeAnnouncementStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=DRAFT PUBLISHED ARCHIVED"`
}

// ListAnnouncementsRequest filters the public board.
type ListAnnouncementsRequest struct {
	PaginationRequest
	Category string `form:"category" binding:"omitempty,max=120"`
}

// AdminListAnnouncementsRequest filters the admin board view.
type AdminListAnnouncementsRequest struct {
	PaginationRequest
	Status   string `form:"status"   binding:"omitempty,oneof=DRAFT PUBLISHED ARCHIVED"`
	Category string `form:"category" binding:"omitempty,max=120"`
}

// ── responses ──

// AnnouncementResponse is the outward shape of an announcement.
type AnnouncementResponse struct {
	ID          string     `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Excerpt     string     `json:"excerpt"`
	Category    string     `json:"category"`
	Content     string     `json:"content"`
	Status      string     `json:"status"`
	HasCover    bool       `json:"has_cover"`
	CoverFocus  string     `json:"cover_focus"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// AnnouncementListItem omits the body for list views.
type AnnouncementListItem struct {
	ID          string     `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Excerpt     string     `json:"excerpt"`
	Category    string     `json:"category"`
	Status      string     `json:"status"`
	HasCover    bool       `json:"has_cover"`
	CoverFocus  string     `json:"cover_focus"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ── mapping ──

// NewAnnouncementResponse maps an announcement entity to its response shape.
func NewAnnouncementResponse(a *model.Announcement) AnnouncementResponse {
	return AnnouncementResponse{
		ID:          a.AnnouncementID,
		Slug:        a.Slug,
		Title:       a.Title,
		Excerpt:     a.Excerpt,
		Category:    a.Category,
		Content:     a.Content,
		Status:      a.Status,
		HasCover:    a.HasCover(),
		CoverFocus:  a.CoverFocus,
		PublishedAt: a.PublishedAt,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// NewAnnouncementListItems maps a slice of announcement entities to list rows.
func NewAnnouncementListItems(items []model.Announcement) []AnnouncementListItem {
	out := make([]AnnouncementListItem, 0, len(items))
	for i := range items {
		a := &items[i]
		out = append(out, AnnouncementListItem{
			ID:          a.AnnouncementID,
			Slug:        a.Slug,
			Title:       a.Title,
			Excerpt:     a.Excerpt,
			Category:    a.Category,
			Status:      a.Status,
			HasCover:    a.HasCover(),
			CoverFocus:  a.CoverFocus,
			PublishedAt: a.PublishedAt,
			CreatedAt:   a.CreatedAt,
		})
	}
	return out
}

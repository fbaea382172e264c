package model

import "time"

// Announcement statuses.
const (
	AnnouncementDraft     = "DRAFT"
	AnnouncementPublished = "PUBLISHED"
	AnnouncementArchived  = "ARCHIVED"
)

// ValidAnnouncementStatus reports whether s is a known announcement status.
func ValidAnnouncementStatus(s string) bool {
	switch s {
	case AnnouncementDraft, AnnouncementPublished, AnnouncementArchived:
		return true
	}
	return false
}

// Announcement maps to the announcements table. The slug is derived from the
// title and globally unique; cover metadata is set only while a cover blob
// exists in the blob store.
type Announcement struct {
	AnnouncementID    string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"announcement_id"`
	Slug              string     `gorm:"type:varchar(160);not null;uniqueIndex"         json:"slug"`
	Title             string     `gorm:"type:varchar(255);not null"                     json:"title"`
	Excerpt           string     `gorm:"type:text"                                      json:"excerpt"`
	Category          string     `gorm:"type:varchar(120)"                              json:"category"`
	Content           string     `gorm:"type:text"                                      json:"content"`
	Status            string     `gorm:"type:varchar(20);not null;default:'DRAFT'"      json:"status"`
	CoverOriginalName string     `gorm:"type:varchar(255)"                              json:"cover_original_name"`
	CoverStoredName   string     `gorm:"type:varchar(255)"                              json:"cover_stored_name"`
	CoverMimeType     string     `gorm:"type:varchar(255)"                              json:"cover_mime_type"`
	CoverSizeBytes    int64      `json:"cover_size_bytes"`
	CoverFocus        string     `gorm:"type:varchar(32);not null;default:'center'"     json:"cover_focus"`
	AuthorUserID      *string    `gorm:"type:uuid"                                      json:"author_user_id,omitempty"`
	PublishedAt       *time.Time `json:"published_at,omitempty"`
	CreatedAt         time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
	UpdatedAt         time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"updated_at"`
}

// TableName sets the table name.
func (Announcement) TableName() string { return "announcements" }

// HasCover reports whether a cover blob is attached.
func (a *Announcement) HasCover() bool { return a.CoverStoredName != "" }

package repository

import "gorm.io/gorm"

// Repository aggregates every data-access interface.
type Repository struct {
	User           UserRepository
	Submission     SubmissionRepository
	SubmissionFile SubmissionFileRepository
	ApprovalLog    ApprovalLogRepository
	Announcement   AnnouncementRepository
}

// NewRepository wires the GORM implementations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:           NewUserRepo(db),
		Submission:     NewSubmissionRepo(db),
		SubmissionFile: NewSubmissionFileRepo(db),
		ApprovalLog:    NewApprovalLogRepo(db),
		Announcement:   NewAnnouncementRepo(db),
	}
}

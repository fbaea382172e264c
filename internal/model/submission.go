package model

import (
	"time"

	"gorm.io/datatypes"
)

// Submission statuses.
const (
	StatusSubmitted    = "SUBMITTED"
	StatusInReview     = "IN_REVIEW"
	StatusNeedRevision = "NEED_REVISION"
	StatusApproved     = "APPROVED"
	StatusRejected     = "REJECTED"
)

// Review actions an administrator can apply to a submission.
const (
	ActionSetInReview     = "SET_IN_REVIEW"
	ActionApprove         = "APPROVE"
	ActionReject          = "REJECT"
	ActionRequestRevision = "REQUEST_REVISION"
)

// ActionStatus maps a review action to the status it produces. The map is
// total over the four actions and does not consider the current status;
// history is reconstructed from the approval log.
var ActionStatus = map[string]string{
	ActionSetInReview:     StatusInReview,
	ActionApprove:         StatusApproved,
	ActionReject:          StatusRejected,
	ActionRequestRevision: StatusNeedRevision,
}

// ValidStatus reports whether s is a known submission status.
func ValidStatus(s string) bool {
	switch s {
	case StatusSubmitted, StatusInReview, StatusNeedRevision, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Submission maps to the submissions table. Owned by exactly one user; the
// status is mutated only by the review workflow and rows are never deleted.
type Submission struct {
	SubmissionID string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"submission_id"`
	UserID       string         `gorm:"type:uuid;not null;index"                       json:"user_id"`
	Type         string         `gorm:"type:varchar(100);not null"                     json:"type"`
	Payload      datatypes.JSON `gorm:"type:jsonb;not null"                            json:"payload"`
	Status       string         `gorm:"type:varchar(20);not null;default:'SUBMITTED'"  json:"status"`
	CreatedAt    time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"updated_at"`

	Owner *User `gorm:"foreignKey:UserID;references:UserID" json:"owner,omitempty"`
}

// TableName sets the table name.
func (Submission) TableName() string { return "submissions" }

package model

import "time"

// ApprovalLog maps to the approval_logs table. One row is appended per
// review action, inside the same transaction as the status update. Rows are
// never updated or deleted; ordering by created_at defines the history.
type ApprovalLog struct {
	ApprovalLogID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"approval_log_id"`
	SubmissionID  string    `gorm:"type:uuid;not null;index"                       json:"submission_id"`
	ActorUserID   string    `gorm:"type:uuid;not null"                             json:"actor_user_id"`
	Action        string    `gorm:"type:varchar(20);not null"                      json:"action"`
	Note          string    `gorm:"type:text"                                      json:"note,omitempty"`
	CreatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName sets the table name.
func (ApprovalLog) TableName() string { return "approval_logs" }

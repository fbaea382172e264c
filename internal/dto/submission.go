package dto

import (
	"encoding/json"
	"time"

	"github.com/Frey210/SiWarga/internal/model"
)

// ── requests ──

// CreateSubmissionRequest opens a new document request. The payload is
// opaque to the server and stored as-is.
type CreateSubmissionRequest struct {
	Type    string          `json:"type"    binding:"required,max=100"`
	Payload json.RawMessage `json:"payload" binding:"required"`
}

// ListSubmissionsRequest filters a resident's own submissions.
type ListSubmissionsRequest struct {
	Status string `form:"status" binding:"omitempty"`
	Type   string `form:"type"   binding:"omitempty"`
}

// AdminListSubmissionsRequest filters the admin review queue. Q is matched
// case-insensitively against owner email, owner full name, owner NIK,
// submission type and the payload text.
type AdminListSubmissionsRequest struct {
	PaginationRequest
	Status string `form:"status" binding:"omitempty"`
	Type   string `form:"type"   binding:"omitempty"`
	Q      string `form:"q"      binding:"omitempty,max=255"`
}

// ApplyActionRequest applies a review action to a submission.
type ApplyActionRequest struct {
	Action string `json:"action" binding:"required,oneof=SET_IN_REVIEW APPROVE REJECT REQUEST_REVISION"`
	Note   string `json:"note"   binding:"omitempty,max=2000"`
}

// ── responses ──

// SubmissionResponse is the outward shape of a submission.
type SubmissionResponse struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// SubmissionFileResponse is the outward shape of an attached file.
type SubmissionFileResponse struct {
	ID           string    `json:"id"`
	SubmissionID string    `json:"submission_id"`
	DocumentType string    `json:"document_type"`
	OriginalName string    `json:"original_name"`
	MimeType     string    `json:"mime_type"`
	SizeBytes    int64     `json:"size_bytes"`
	CreatedAt    time.Time `json:"created_at"`
}

// ApprovalLogResponse is the outward shape of one audit record.
type ApprovalLogResponse struct {
	ID           string    `json:"id"`
	SubmissionID string    `json:"submission_id"`
	ActorUserID  string    `json:"actor_user_id"`
	Action       string    `json:"action"`
	Note         string    `json:"note,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// SubmissionDetailResponse is a resident's view of one submission.
type SubmissionDetailResponse struct {
	SubmissionResponse
	Files      []SubmissionFileResponse `json:"files"`
	LastAction *ApprovalLogResponse     `json:"last_action,omitempty"`
}

// AdminSubmissionListItem is one row of the admin review queue.
type AdminSubmissionListItem struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	OwnerEmail     string    `json:"owner_email"`
	OwnerFullName  string    `json:"owner_full_name"`
	OwnerPhone     string    `json:"owner_phone_number"`
	OwnerNIK       string    `json:"owner_nik"`
	OwnerKKNumber  string    `json:"owner_kk_number"`
	Type           string    `json:"type"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// AdminSubmissionDetailResponse is the full admin view: owner snapshot,
// every file and the complete ordered history.
type AdminSubmissionDetailResponse struct {
	SubmissionResponse
	OwnerEmail    string                   `json:"owner_email"`
	OwnerFullName string                   `json:"owner_full_name"`
	OwnerPhone    string                   `json:"owner_phone_number"`
	OwnerNIK      string                   `json:"owner_nik"`
	OwnerKKNumber string                   `json:"owner_kk_number"`
	Files         []SubmissionFileResponse `json:"files"`
	Logs          []ApprovalLogResponse    `json:"logs"`
}

// ApplyActionResponse returns the updated submission with the new log entry.
type ApplyActionResponse struct {
	Submission SubmissionResponse  `json:"submission"`
	Log        ApprovalLogResponse `json:"log"`
}

// ── mapping ──

// NewSubmissionResponse maps a submission entity to its response shape.
func NewSubmissionResponse(s *model.Submission) SubmissionResponse {
	return SubmissionResponse{
		ID:        s.SubmissionID,
		UserID:    s.UserID,
		Type:      s.Type,
		Payload:   json.RawMessage(s.Payload),
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// NewSubmissionResponses maps a slice of submission entities.
func NewSubmissionResponses(subs []model.Submission) []SubmissionResponse {
	out := make([]SubmissionResponse, 0, len(subs))
	for i := range subs {
		out = append(out, NewSubmissionResponse(&subs[i]))
	}
	return out
}

// NewSubmissionFileResponse maps a file entity to its response shape. The
// stored handle stays server-side.
func NewSubmissionFileResponse(f *model.SubmissionFile) SubmissionFileResponse {
	return SubmissionFileResponse{
		ID:           f.SubmissionFileID,
		SubmissionID: f.SubmissionID,
		DocumentType: f.DocumentType,
		OriginalName: f.OriginalName,
		MimeType:     f.MimeType,
		SizeBytes:    f.SizeBytes,
		CreatedAt:    f.CreatedAt,
	}
}

// NewSubmissionFileResponses maps a slice of file entities.
func NewSubmissionFileResponses(files []model.SubmissionFile) []SubmissionFileResponse {
	out := make([]SubmissionFileResponse, 0, len(files))
	for i := range files {
		out = append(out, NewSubmissionFileResponse(&files[i]))
	}
	return out
}

// NewApprovalLogResponse maps an audit record to its response shape.
func NewApprovalLogResponse(l *model.ApprovalLog) ApprovalLogResponse {
	return ApprovalLogResponse{
		ID:           l.ApprovalLogID,
		SubmissionID: l.SubmissionID,
		ActorUserID:  l.ActorUserID,
		Action:       l.Action,
		Note:         l.Note,
		CreatedAt:    l.CreatedAt,
	}
}

// NewApprovalLogResponses maps a slice of audit records.
func NewApprovalLogResponses(logs []model.ApprovalLog) []ApprovalLogResponse {
	out := make([]ApprovalLogResponse, 0, len(logs))
	for i := range logs {
		out = append(out, NewApprovalLogResponse(&logs[i]))
	}
	return out
}

// NewAdminSubmissionListItem maps a submission with its preloaded owner to
// one review-queue row.
func NewAdminSubmissionListItem(s *model.Submission) AdminSubmissionListItem {
	item := AdminSubmissionListItem{
		ID:        s.SubmissionID,
		UserID:    s.UserID,
		Type:      s.Type,
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	if s.Owner != nil {
		item.OwnerEmail = s.Owner.Email
		item.OwnerFullName = s.Owner.FullName
		item.OwnerPhone = s.Owner.PhoneNumber
		item.OwnerNIK = s.Owner.NIK
		item.OwnerKKNumber = s.Owner.KKNumber
	}
	return item
}

package handler

import "github.com/Frey210/SiWarga/internal/service"

// Handler aggregates every HTTP handler.
type Handler struct {
	Auth            *AuthHandler
	Submission      *SubmissionHandler
	AdminSubmission *AdminSubmissionHandler
	Announcement    *AnnouncementHandler
}

// NewHandler creates the Handler aggregate.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:            NewAuthHandler(svc.Auth),
		Submission:      NewSubmissionHandler(svc.Submission, svc.File),
		AdminSubmission: NewAdminSubmissionHandler(svc.Submission, svc.Workflow, svc.Export),
		Announcement:    NewAnnouncementHandler(svc.Announcement),
	}
}

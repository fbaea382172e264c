package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Frey210/SiWarga/internal/dto"
	"github.com/Frey210/SiWarga/internal/service"
	"github.com/Frey210/SiWarga/pkg/response"
)

// SubmissionHandler handles the resident-facing submission endpoints.
type SubmissionHandler struct {
	submissionSvc service.SubmissionService
	fileSvc       service.FileService
}

// NewSubmissionHandler creates a SubmissionHandler.
func NewSubmissionHandler(submissionSvc service.SubmissionService, fileSvc service.FileService) *SubmissionHandler {
	return &SubmissionHandler{submissionSvc: submissionSvc, fileSvc: fileSvc}
}

// Create submits a new document request.
// POST /api/v1/submissions
func (h *SubmissionHandler) Create(c *gin.Context) {
	var req dto.CreateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	sub, err := h.submissionSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleSubmissionError(c, err)
		return
	}

	response.Created(c, sub)
}

// List returns the caller's own submissions, newest first.
// GET /api/v1/submissions
func (h *SubmissionHandler) List(c *gin.Context) {
	var req dto.ListSubmissionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	items, err := h.submissionSvc.ListOwn(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleSubmissionError(c, err)
		return
	}

	response.OK(c, gin.H{"list": items})
}

// GetDetail returns one of the caller's submissions with files and the
// latest review entry.
// GET /api/v1/submissions/:id
func (h *SubmissionHandler) GetDetail(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "submission id is required")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	detail, err := h.submissionSvc.GetDetail(c.Request.Context(), userID, id)
	if err != nil {
		h.handleSubmissionError(c, err)
		return
	}

	response.OK(c, detail)
}

// UploadFile attaches a supporting document to a submission.
// POST /api/v1/submissions/:id/files  (multipart: document_type, file)
func (h *SubmissionHandler) UploadFile(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "submission id is required")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, 10001, "file is required")
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, 10001, "cannot read uploaded file")
		return
	}
	defer src.Close()

	upload := &service.FileUpload{
		DocumentType: c.PostForm("document_type"),
		OriginalName: fileHeader.Filename,
		MimeType:     fileHeader.Header.Get("Content-Type"),
		Content:      src,
	}

	meta, err := h.fileSvc.Attach(c.Request.Context(), userID, id, upload)
	if err != nil {
		h.handleSubmissionError(c, err)
		return
	}

	response.Created(c, meta)
}

// DownloadFile streams a previously attached document back to its owner
// or to an administrator.
// GET /api/v1/files/:id
func (h *SubmissionHandler) DownloadFile(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "file id is required")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	dl, err := h.fileSvc.Fetch(c.Request.Context(), userID, id)
	if err != nil {
		h.handleSubmissionError(c, err)
		return
	}
	defer dl.Content.Close()

	mime := dl.MimeType
	if mime == "" {
		mime = "application/octet-stream"
	}
	c.Header("Content-Disposition", `attachment; filename="`+dl.OriginalName+`"`)
	c.DataFromReader(http.StatusOK, dl.SizeBytes, mime, dl.Content, nil)
}

// handleSubmissionError maps submission and file business errors.
func (h *SubmissionHandler) handleSubmissionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSubmissionNotFound):
		response.NotFound(c, 12101, "submission not found")
	case errors.Is(err, service.ErrNotOwner):
		response.Forbidden(c, 12102, "not the submission owner")
	case errors.Is(err, service.ErrWargaOnly):
		response.Forbidden(c, 12103, "only residents can submit requests")
	case errors.Is(err, service.ErrProfileIncomplete):
		response.BadRequest(c, 12104, "complete your profile before submitting")
	case errors.Is(err, service.ErrFileNotFound):
		response.NotFound(c, 12105, "file not found")
	case errors.Is(err, service.ErrUserNotFound):
		response.Unauthorized(c, 10002, "account no longer exists")
	default:
		response.InternalError(c)
	}
}

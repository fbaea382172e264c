package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/Frey210/SiWarga/internal/dto"
	"github.com/Frey210/SiWarga/internal/service"
	"github.com/Frey210/SiWarga/pkg/response"
)

// AdminSubmissionHandler handles the administrator review queue.
type AdminSubmissionHandler struct {
	submissionSvc service.SubmissionService
	workflowSvc   service.WorkflowService
	exportSvc     service.ExportService
}

// NewAdminSubmissionHandler creates an AdminSubmissionHandler.
func NewAdminSubmissionHandler(
	submissionSvc service.SubmissionService,
	workflowSvc service.WorkflowService,
	exportSvc service.ExportService,
) *AdminSubmissionHandler {
	return &AdminSubmissionHandler{
		submissionSvc: submissionSvc,
		workflowSvc:   workflowSvc,
		exportSvc:     exportSvc,
	}
}

// List returns the paginated review queue with optional filters.
// GET /api/v1/admin/submissions
func (h *AdminSubmissionHandler) List(c *gin.Context) {
	var req dto.AdminListSubmissionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	items, total, err := h.submissionSvc.AdminList(c.Request.Context(), &req)
	if err != nil {
		h.handleAdminError(c, err)
		return
	}

	response.OKPage(c, items, total, req.GetPage(), req.GetPageSize())
}

// GetDetail returns any submission with its owner snapshot, files and the
// full review history.
// GET /api/v1/admin/submissions/:id
func (h *AdminSubmissionHandler) GetDetail(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "submission id is required")
		return
	}

	detail, err := h.submissionSvc.AdminDetail(c.Request.Context(), id)
	if err != nil {
		h.handleAdminError(c, err)
		return
	}

	response.OK(c, detail)
}

// ApplyAction records a review decision and moves the submission.
// POST /api/v1/admin/submissions/:id/actions
func (h *AdminSubmissionHandler) ApplyAction(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "submission id is required")
		return
	}

	var req dto.ApplyActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.workflowSvc.ApplyAction(c.Request.Context(), id, userID, &req)
	if err != nil {
		h.handleAdminError(c, err)
		return
	}

	response.OK(c, result)
}

// Export downloads the filtered review queue as an xlsx workbook.
// GET /api/v1/admin/submissions/export
func (h *AdminSubmissionHandler) Export(c *gin.Context) {
	var req dto.AdminListSubmissionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	buf, filename, err := h.exportSvc.ExportSubmissions(c.Request.Context(), &req)
	if err != nil {
		h.handleAdminError(c, err)
		return
	}

	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// handleAdminError maps review-side business errors.
func (h *AdminSubmissionHandler) handleAdminError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSubmissionNotFound):
		response.NotFound(c, 12101, "submission not found")
	case errors.Is(err, service.ErrAdminOnly):
		response.Forbidden(c, 13101, "administrator role required")
	case errors.Is(err, service.ErrUnknownAction):
		response.BadRequest(c, 13102, "unknown review action")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}

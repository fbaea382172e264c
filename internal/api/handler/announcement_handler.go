package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Frey210/SiWarga/internal/dto"
	"github.com/Frey210/SiWarga/internal/service"
	"github.com/Frey210/SiWarga/pkg/response"
)

// AnnouncementHandler handles the public board and its admin management.
type AnnouncementHandler struct {
	announcementSvc service.AnnouncementService
}

// NewAnnouncementHandler creates an AnnouncementHandler.
func NewAnnouncementHandler(announcementSvc service.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcementSvc: announcementSvc}
}

// ── public endpoints ──

// PublicList returns published announcements, newest first.
// GET /api/v1/announcements
func (h *AnnouncementHandler) PublicList(c *gin.Context) {
	var req dto.ListAnnouncementsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	items, total, err := h.announcementSvc.PublicList(c.Request.Context(), &req)
	if err != nil {
		h.handleAnnouncementError(c, err)
		return
	}

	response.OKPage(c, items, total, req.GetPage(), req.GetPageSize())
}

// PublicGetBySlug returns one published announcement.
// GET /api/v1/announcements/:slug
func (h *AnnouncementHandler) PublicGetBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		response.BadRequest(c, 10001, "slug is required")
		return
	}

	ann, err := h.announcementSvc.PublicGetBySlug(c.Request.Context(), slug)
	if err != nil {
		h.handleAnnouncementError(c, err)
		return
	}

	response.OK(c, ann)
}

// PublicGetCover streams the cover image of a published announcement.
// GET /api/v1/announcements/:slug/cover
func (h *AnnouncementHandler) PublicGetCover(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		response.BadRequest(c, 10001, "slug is required")
		return
	}

	cover, err := h.announcementSvc.PublicGetCover(c.Request.Context(), slug)
	if err != nil {
		h.handleAnnouncementError(c, err)
		return
	}
	defer cover.Content.Close()

	c.Header("X-Cover-Focus", cover.Focus)
	c.Header("Cache-Control", "public, max-age=300")
	c.DataFromReader(http.StatusOK, cover.SizeBytes, cover.MimeType, cover.Content, nil)
}

// ── admin endpoints ──

// Create adds a draft announcement.
// POST /api/v1/admin/announcements
func (h *AnnouncementHandler) Create(c *gin.Context) {
	var req dto.CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	ann, err := h.announcementSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleAnnouncementError(c, err)
		return
	}

	response.Created(c, ann)
}

// AdminList returns announcements in any status.
// GET /api/v1/admin/announcements
func (h *AnnouncementHandler) AdminList(c *gin.Context) {
	var req dto.AdminListAnnouncementsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	items, total, err := h.announcementSvc.AdminList(c.Request.Context(), &req)
	if err != nil {
		h.handleAnnouncementError(c, err)
		return
	}

	response.OKPage(c, items, total, req.GetPage(), req.GetPageSize())
}

// GetByID returns one announcement regardless of status.
// GET /api/v1/admin/announcements/:id
func (h *AnnouncementHandler) GetByID(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "announcement id is required")
		return
	}

	ann, err := h.announcementSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleAnnouncementError(c, err)
		return
	}

	response.OK(c, ann)
}

// Update edits announcement content. The slug stays stable.
// PUT /api/v1/admin/announcements/:id
func (h *AnnouncementHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "announcement id is required")
		return
	}

	var req dto.UpdateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	ann, err := h.announcementSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleAnnouncementError(c, err)
		return
	}

	response.OK(c, ann)
}

// Delete removes an announcement and its cover blob.
// DELETE /api/v1/admin/announcements/:id
func (h *AnnouncementHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "announcement id is required")
		return
	}

	if err := h.announcementSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleAnnouncementError(c, err)
		return
	}

	response.OK(c, nil)
}

// ChangeStatus moves an announcement through its lifecycle.
// PUT /api/v1/admin/announcements/:id/status
func (h *AnnouncementHandler) ChangeStatus(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "announcement id is required")
		return
	}

	var req dto.ChangeAnnouncementStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	ann, err := h.announcementSvc.ChangeStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.handleAnnouncementError(c, err)
		return
	}

	response.OK(c, ann)
}

// UploadCover sets or replaces the cover image.
// PUT /api/v1/admin/announcements/:id/cover  (multipart: file)
func (h *AnnouncementHandler) UploadCover(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "announcement id is required")
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

	upload := &service.CoverUpload{
		OriginalName: fileHeader.Filename,
		MimeType:     fileHeader.Header.Get("Content-Type"),
		SizeBytes:    fileHeader.Size,
		Content:      src,
	}

	ann, err := h.announcementSvc.UploadCover(c.Request.Context(), id, upload)
	if err != nil {
		h.handleAnnouncementError(c, err)
		return
	}

	response.OK(c, ann)
}

// DeleteCover removes the cover image.
// DELETE /api/v1/admin/announcements/:id/cover
func (h *AnnouncementHandler) DeleteCover(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "announcement id is required")
		return
	}

	ann, err := h.announcementSvc.DeleteCover(c.Request.Context(), id)
	if err != nil {
		h.handleAnnouncementError(c, err)
		return
	}

	response.OK(c, ann)
}

// handleAnnouncementError maps announcement business errors.
func (h *AnnouncementHandler) handleAnnouncementError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAnnouncementNotFound):
		response.NotFound(c, 15101, "announcement not found")
	case errors.Is(err, service.ErrCoverTooLarge):
		response.Error(c, http.StatusRequestEntityTooLarge, 15102, "cover image exceeds the size limit")
	case errors.Is(err, service.ErrCoverNotImage):
		response.BadRequest(c, 15103, "cover must be an image")
	case errors.Is(err, service.ErrNoCover):
		response.NotFound(c, 15104, "announcement has no cover")
	default:
		response.InternalError(c)
	}
}

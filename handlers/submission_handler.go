package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/safetrack/ehs-platform/config"
	"github.com/safetrack/ehs-platform/dto"
	"github.com/safetrack/ehs-platform/models"
	"github.com/safetrack/ehs-platform/repositories"
	"github.com/safetrack/ehs-platform/response"
	"github.com/safetrack/ehs-platform/services"
	"github.com/safetrack/ehs-platform/utils"
	"github.com/safetrack/ehs-platform/websocket"
)

type SubmissionHandler struct {
	service *services.SubmissionService
	hub     *websocket.Hub
}

func NewSubmissionHandler(service *services.SubmissionService, hub *websocket.Hub) *SubmissionHandler {
	return &SubmissionHandler{service: service, hub: hub}
}

func submissionErrStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrSubmissionNotFound),
		errors.Is(err, services.ErrTemplateNotFound),
		errors.Is(err, services.ErrDraftNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrTemplateInactive),
		errors.Is(err, services.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, services.ErrReviewOwnSubmission),
		errors.Is(err, services.ErrNotSubmissionOwner):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

// Submit godoc
// @Summary Submit a filled form
// @Tags submissions
// @Accept json
// @Produce json
// @Param input body dto.SubmitFormInput true "Template id and field values"
// @Success 201 {object} response.SuccessResponse
// @Failure 422 {object} response.ValidationErrorResponse
// @Router /submissions [post]
func (h *SubmissionHandler) Submit(c *gin.Context) {
	claims, err := utils.GetClaimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var input dto.SubmitFormInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	sub, err := h.service.Submit(claims.OrgID, claims.UserID, input)
	if err != nil {
		var vErr *services.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusUnprocessableEntity, response.ValidationErrorResponse{
				Error:  vErr.Error(),
				Fields: vErr.Fields,
			})
			return
		}
		c.JSON(submissionErrStatus(err), response.ErrorResponse{Error: err.Error()})
		return
	}

	h.hub.Broadcast(websocket.SubmissionEvent{
		Type:         "submission.created",
		SubmissionID: sub.ID,
		TemplateID:   sub.TemplateID,
		Status:       string(sub.Status),
		OrgID:        sub.OrgID,
	})
	c.JSON(http.StatusCreated, response.SuccessResponse{Data: sub})
}

// PUT /submissions/drafts
func (h *SubmissionHandler) SaveDraft(c *gin.Context) {
	claims, err := utils.GetClaimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var input dto.SaveDraftInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	draft, err := h.service.SaveDraft(claims.OrgID, claims.UserID, input)
	if err != nil {
		c.JSON(submissionErrStatus(err), response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Data: draft})
}

// GET /submissions/drafts
func (h *SubmissionHandler) ListMyDrafts(c *gin.Context) {
	claims, err := utils.GetClaimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}
	drafts, err := h.service.ListMyDrafts(claims.OrgID, claims.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Data: drafts})
}

// GET /submissions/drafts/:templateId
func (h *SubmissionHandler) GetDraft(c *gin.Context) {
	claims, err := utils.GetClaimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}
	draft, err := h.service.GetDraft(c.Param("templateId"), claims.UserID)
	if err != nil {
		c.JSON(submissionErrStatus(err), response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Data: draft})
}

// DELETE /submissions/drafts/:templateId
func (h *SubmissionHandler) DeleteDraft(c *gin.Context) {
	claims, err := utils.GetClaimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}
	if err := h.service.DeleteDraft(c.Param("templateId"), claims.UserID); err != nil {
		c.JSON(submissionErrStatus(err), response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "draft discarded"})
}

// ListSubmissions godoc
// @Summary List submissions across the organization
// @Tags submissions
// @Produce json
// @Param template_id query string false "Filter by template"
// @Param status query string false "Filter by review status"
// @Param from query string false "Submitted on or after (RFC3339)"
// @Param to query string false "Submitted before (RFC3339)"
// @Param page query int false "Page number, 1-based"
// @Param limit query int false "Page size"
// @Success 200 {object} response.PagedResponse
// @Router /submissions [get]
func (h *SubmissionHandler) ListSubmissions(c *gin.Context) {
	claims, err := utils.GetClaimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	filter := repositories.SubmissionFilter{
		TemplateID: c.Query("template_id"),
		Status:     models.SubmissionStatus(c.Query("status")),
		Page:       utils.ParseQueryIntParam(c, "page", 1),
		Limit:      utils.ParseQueryIntParam(c, "limit", 20),
	}
	if v := c.Query("from"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.From = &t
		}
	}
	if v := c.Query("to"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.To = &t
		}
	}

	subs, total, err := h.service.ListSubmissions(claims.OrgID, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.PagedResponse{
		Data:  subs,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	})
}

// GET /submissions/mine
func (h *SubmissionHandler) ListMySubmissions(c *gin.Context) {
	claims, err := utils.GetClaimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}
	subs, err := h.service.ListMySubmissions(claims.OrgID, claims.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Data: subs})
}

// GET /submissions/:id
func (h *SubmissionHandler) GetSubmission(c *gin.Context) {
	claims, err := utils.GetClaimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}
	sub, err := h.service.GetSubmission(claims.OrgID, c.Param("id"))
	if err != nil {
		c.JSON(submissionErrStatus(err), response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Data: sub})
}

// Review godoc
// @Summary Advance a submission through review
// @Tags submissions
// @Accept json
// @Produce json
// @Param id path string true "Submission id"
// @Param input body dto.ReviewInput true "Target status and optional notes"
// @Success 200 {object} response.SuccessResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /submissions/review/{id} [put]
func (h *SubmissionHandler) Review(c *gin.Context) {
	claims, err := utils.GetClaimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var input dto.ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	sub, err := h.service.Review(claims.OrgID, claims.UserID, c.Param("id"), input)
	if err != nil {
		c.JSON(submissionErrStatus(err), response.ErrorResponse{Error: err.Error()})
		return
	}

	utils.LogAuditWithConsole(c, claims.OrgID, "review", "form_submission", sub.ID, nil, sub, input.Status, h.service.Repos.Audit)
	h.hub.Broadcast(websocket.SubmissionEvent{
		Type:         "submission.reviewed",
		SubmissionID: sub.ID,
		TemplateID:   sub.TemplateID,
		Status:       string(sub.Status),
		OrgID:        sub.OrgID,
	})
	c.JSON(http.StatusOK, response.SuccessResponse{Data: sub})
}

// UploadAttachment godoc
// @Summary Attach a file to an own submission
// @Tags submissions
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Submission id"
// @Param file formData file true "Attachment"
// @Success 200 {object} response.SuccessResponse
// @Failure 413 {object} response.ErrorResponse
// @Router /submissions/{id}/attachments [post]
func (h *SubmissionHandler) UploadAttachment(c *gin.Context) {
	claims, err := utils.GetClaimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "missing file"})
		return
	}
	if fileHeader.Size > config.MaxAttachmentSize {
		c.JSON(http.StatusRequestEntityTooLarge, response.ErrorResponse{
			Error: fmt.Sprintf("file exceeds the %s attachment limit", humanize.IBytes(uint64(config.MaxAttachmentSize))),
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}
	defer file.Close()

	submissionID := c.Param("id")
	attachmentID := uuid.NewString()
	objectKey := fmt.Sprintf("org/%d/submissions/%s/%s-%s", claims.OrgID, submissionID, attachmentID, fileHeader.Filename)
	contentType := fileHeader.Header.Get("Content-Type")
	if err := utils.UploadObject(c.Request.Context(), objectKey, contentType, file, fileHeader.Size); err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "failed to store attachment"})
		return
	}

	sub, err := h.service.AddAttachment(claims.OrgID, claims.UserID, submissionID, models.Attachment{
		ID:        attachmentID,
		ObjectKey: objectKey,
		FileName:  fileHeader.Filename,
		Size:      fileHeader.Size,
	})
	if err != nil {
		// The object is orphaned if the row update fails; best effort cleanup.
		_ = utils.DeleteObject(c.Request.Context(), objectKey)
		c.JSON(submissionErrStatus(err), response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Data: sub})
}

// GET /submissions/:id/attachments/:key/url
func (h *SubmissionHandler) AttachmentURL(c *gin.Context) {
	claims, err := utils.GetClaimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	sub, err := h.service.GetSubmission(claims.OrgID, c.Param("id"))
	if err != nil {
		c.JSON(submissionErrStatus(err), response.ErrorResponse{Error: err.Error()})
		return
	}

	// Object keys contain slashes and cannot travel in a path segment;
	// attachments are addressed by id, with the filename as a fallback.
	key := c.Param("key")
	var found *models.Attachment
	for i := range sub.Attachments {
		if sub.Attachments[i].ID == key || sub.Attachments[i].FileName == key {
			found = &sub.Attachments[i]
			break
		}
	}
	if found == nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{Error: "attachment not found"})
		return
	}

	url, err := utils.PresignedURL(c.Request.Context(), found.ObjectKey, 15*time.Minute)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}
	found.URL = url
	c.JSON(http.StatusOK, response.SuccessResponse{Data: found})
}

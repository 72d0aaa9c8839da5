package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/safetrack/ehs-platform/dto"
	"github.com/safetrack/ehs-platform/models"
	"github.com/safetrack/ehs-platform/repositories"
	"github.com/safetrack/ehs-platform/response"
	"github.com/safetrack/ehs-platform/services"
	"github.com/safetrack/ehs-platform/utils"
)

type TemplateHandler struct {
	service *services.TemplateService
}

func NewTemplateHandler(service *services.TemplateService) *TemplateHandler {
	return &TemplateHandler{service: service}
}

func templateErrStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrTemplateNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidCategory),
		errors.Is(err, models.ErrDuplicateFieldName):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// POST /templates
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	claims, err := utils.GetClaimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var input dto.CreateTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	t, err := h.service.CreateTemplate(claims.OrgID, claims.UserID, input)
	if err != nil {
		c.JSON(templateErrStatus(err), response.ErrorResponse{Error: err.Error()})
		return
	}

	utils.LogAuditWithConsole(c, claims.OrgID, "create", "form_template", t.ID, nil, t, "", h.service.Repos.Audit)
	c.JSON(http.StatusCreated, response.SuccessResponse{Data: t})
}

// PUT /templates/:id
func (h *TemplateHandler) UpdateTemplate(c *gin.Context) {
	claims, err := utils.GetClaimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var input dto.UpdateTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	id := c.Param("id")
	before, _ := h.service.GetTemplate(claims.OrgID, id)

	t, err := h.service.UpdateTemplate(claims.OrgID, id, input)
	if err != nil {
		c.JSON(templateErrStatus(err), response.ErrorResponse{Error: err.Error()})
		return
	}

	utils.LogAuditWithConsole(c, claims.OrgID, "update", "form_template", t.ID, before, t, "", h.service.Repos.Audit)
	c.JSON(http.StatusOK, response.SuccessResponse{Data: t})
}

// PUT /templates/:id/active
func (h *TemplateHandler) ToggleActive(c *gin.Context) {
	claims, err := utils.GetClaimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var input dto.ToggleActiveInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	t, err := h.service.ToggleActive(claims.OrgID, c.Param("id"), input.IsActive)
	if err != nil {
		c.JSON(templateErrStatus(err), response.ErrorResponse{Error: err.Error()})
		return
	}

	action := "retire"
	if input.IsActive {
		action = "activate"
	}
	utils.LogAuditWithConsole(c, claims.OrgID, action, "form_template", t.ID, nil, t, "", h.service.Repos.Audit)
	c.JSON(http.StatusOK, response.SuccessResponse{Data: t})
}

// GET /templates
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	claims, err := utils.GetClaimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	filter := repositories.TemplateFilter{
		Category:   models.FormCategory(c.Query("category")),
		ActiveOnly: c.Query("active") == "true",
	}
	templates, err := h.service.ListTemplates(claims.OrgID, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Data: templates})
}

// GET /templates/:id
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	claims, err := utils.GetClaimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	t, err := h.service.GetTemplate(claims.OrgID, c.Param("id"))
	if err != nil {
		c.JSON(templateErrStatus(err), response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Data: t})
}

// GET /templates/:id/versions
func (h *TemplateHandler) ListVersions(c *gin.Context) {
	claims, err := utils.GetClaimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	chain, err := h.service.ListVersionChain(claims.OrgID, c.Param("id"))
	if err != nil {
		c.JSON(templateErrStatus(err), response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Data: chain})
}

// DELETE /templates/:id
func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	claims, err := utils.GetClaimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	id := c.Param("id")
	before, _ := h.service.GetTemplate(claims.OrgID, id)

	if err := h.service.DeleteTemplate(claims.OrgID, id); err != nil {
		c.JSON(templateErrStatus(err), response.ErrorResponse{Error: err.Error()})
		return
	}

	utils.LogAuditWithConsole(c, claims.OrgID, "delete", "form_template", id, before, nil, "", h.service.Repos.Audit)
	c.JSON(http.StatusOK, response.MessageResponse{Message: "template deleted"})
}

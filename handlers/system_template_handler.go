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

type SystemTemplateHandler struct {
	service *services.CatalogService
}

func NewSystemTemplateHandler(service *services.CatalogService) *SystemTemplateHandler {
	return &SystemTemplateHandler{service: service}
}

// ListSystemTemplates godoc
// @Summary List the system template catalog
// @Tags system-templates
// @Produce json
// @Param category query string false "Filter by category"
// @Param complexity query string false "Filter by complexity"
// @Param industry query string false "Filter by industry tag"
// @Success 200 {object} response.SuccessResponse
// @Router /system-templates [get]
func (h *SystemTemplateHandler) ListSystemTemplates(c *gin.Context) {
	filter := repositories.SystemTemplateFilter{
		Category:   models.FormCategory(c.Query("category")),
		Complexity: models.ComplexityLevel(c.Query("complexity")),
		Industry:   c.Query("industry"),
	}
	templates, err := h.service.ListSystemTemplates(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Data: templates})
}

// GET /system-templates/:id
func (h *SystemTemplateHandler) GetSystemTemplate(c *gin.Context) {
	t, err := h.service.GetSystemTemplate(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrSystemTemplateNotFound) {
			c.JSON(http.StatusNotFound, response.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Data: t})
}

// POST /system-templates/:id/copy
func (h *SystemTemplateHandler) CopyIntoOrg(c *gin.Context) {
	claims, err := utils.GetClaimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var input dto.CopySystemTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	t, err := h.service.CopyIntoOrg(claims.OrgID, claims.UserID, c.Param("id"), input)
	if err != nil {
		if errors.Is(err, services.ErrSystemTemplateNotFound) {
			c.JSON(http.StatusNotFound, response.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}

	utils.LogAuditWithConsole(c, claims.OrgID, "copy", "form_template", t.ID, nil, t, "copied from system catalog", h.service.Repos.Audit)
	c.JSON(http.StatusCreated, response.SuccessResponse{Data: t})
}

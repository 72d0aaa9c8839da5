package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/safetrack/ehs-platform/repositories"
	"github.com/safetrack/ehs-platform/response"
	"github.com/safetrack/ehs-platform/services"
	"github.com/safetrack/ehs-platform/utils"
)

type AuditHandler struct {
	service *services.AuditService
}

func NewAuditHandler(service *services.AuditService) *AuditHandler {
	return &AuditHandler{service: service}
}

// GET /audit
func (h *AuditHandler) ListAuditLogs(c *gin.Context) {
	claims, err := utils.GetClaimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	params := repositories.AuditQueryParams{
		OrgID:        claims.OrgID,
		Action:       c.Query("action"),
		ResourceType: c.Query("resource_type"),
		Page:         utils.ParseQueryIntParam(c, "page", 1),
		Limit:        utils.ParseQueryIntParam(c, "limit", 50),
	}
	if v := c.Query("user_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 64); err == nil {
			params.UserID = uint(id)
		}
	}
	if v := c.Query("from"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			params.From = &t
		}
	}
	if v := c.Query("to"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			params.To = &t
		}
	}

	logs, err := h.service.QueryAuditLogs(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Data: logs})
}

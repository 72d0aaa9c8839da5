package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/safetrack/ehs-platform/middleware"
	"github.com/safetrack/ehs-platform/response"
	"github.com/safetrack/ehs-platform/utils"
)

// MenuItem is one entry of the role-filtered navigation layout the
// frontend renders.
type MenuItem struct {
	Label string `json:"label"`
	Path  string `json:"path"`
	Icon  string `json:"icon,omitempty"`
}

var menuItems = []MenuItem{
	{Label: "Dashboard", Path: "/dashboard", Icon: "home"},
	{Label: "My Submissions", Path: "/submissions/mine", Icon: "inbox"},
	{Label: "Submit a Form", Path: "/submissions", Icon: "edit"},
	{Label: "Review Queue", Path: "/submissions/review", Icon: "check-circle"},
	{Label: "Form Builder", Path: "/templates", Icon: "layout"},
	{Label: "Template Catalog", Path: "/system-templates", Icon: "book"},
	{Label: "Reports", Path: "/reports", Icon: "bar-chart"},
	{Label: "Members", Path: "/members", Icon: "users"},
	{Label: "Audit Trail", Path: "/audit", Icon: "shield"},
}

type NavigationHandler struct{}

func NewNavigationHandler() *NavigationHandler {
	return &NavigationHandler{}
}

// Menu godoc
// @Summary Navigation entries visible to the caller's role
// @Tags navigation
// @Produce json
// @Success 200 {object} response.SuccessResponse
// @Router /navigation [get]
func (h *NavigationHandler) Menu(c *gin.Context) {
	claims, err := utils.GetClaimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	visible := make([]MenuItem, 0, len(menuItems))
	for _, item := range menuItems {
		allowed := middleware.ResolveAllowedRoles(middleware.DefaultRoutePolicies, item.Path)
		if middleware.RoleAllowed(allowed, claims.Role) {
			visible = append(visible, item)
		}
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Data: visible})
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/safetrack/ehs-platform/dto"
	"github.com/safetrack/ehs-platform/models"
	"github.com/safetrack/ehs-platform/response"
	"github.com/safetrack/ehs-platform/services"
	"github.com/safetrack/ehs-platform/utils"
)

type MemberHandler struct {
	service *services.MemberService
}

func NewMemberHandler(service *services.MemberService) *MemberHandler {
	return &MemberHandler{service: service}
}

// CreateMember runs the multi-step creation flow. A failure after the user
// record exists returns 207 with the completed steps; nothing rolls back.
// @Summary Create organization member
// @Tags members
// @Accept json
// @Produce json
// @Param input body dto.CreateMemberInput true "Member info"
// @Success 201 {object} services.CreateMemberResult
// @Failure 207 {object} response.PartialResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /members [post]
func (h *MemberHandler) CreateMember(c *gin.Context) {
	claims, err := utils.GetClaimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var input dto.CreateMemberInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	result := h.service.CreateMember(claims.OrgID, input)
	if result.Err == nil {
		c.JSON(http.StatusCreated, result)
		return
	}

	if result.Partial() {
		c.JSON(http.StatusMultiStatus, response.PartialResponse{
			Message:        "member partially created: " + result.Err.Error(),
			CompletedSteps: result.CompletedSteps,
			FailedStep:     result.FailedStep,
			Data:           result.Member,
		})
		return
	}

	switch {
	case errors.Is(result.Err, services.ErrUsernameTaken):
		c.JSON(http.StatusConflict, response.ErrorResponse{Error: result.Err.Error()})
	case errors.Is(result.Err, services.ErrNoSeatsAvailable):
		c.JSON(http.StatusPaymentRequired, response.ErrorResponse{Error: result.Err.Error()})
	case errors.Is(result.Err, services.ErrOrgNotFound):
		c.JSON(http.StatusNotFound, response.ErrorResponse{Error: result.Err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: result.Err.Error()})
	}
}

// GET /members
func (h *MemberHandler) ListMembers(c *gin.Context) {
	claims, err := utils.GetClaimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	members, err := h.service.ListMembers(claims.OrgID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Data: members})
}

// PUT /members/:id/role
func (h *MemberHandler) UpdateRole(c *gin.Context) {
	claims, err := utils.GetClaimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}
	userID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid user id"})
		return
	}

	var input dto.UpdateMemberRoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	member, err := h.service.UpdateRole(claims.OrgID, userID, models.MemberRole(input.Role))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMemberNotFound):
			c.JSON(http.StatusNotFound, response.ErrorResponse{Error: err.Error()})
		case errors.Is(err, services.ErrNoSeatsAvailable):
			c.JSON(http.StatusPaymentRequired, response.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Data: member})
}

// DELETE /members/:id
func (h *MemberHandler) RemoveMember(c *gin.Context) {
	claims, err := utils.GetClaimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}
	userID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid user id"})
		return
	}

	if err := h.service.RemoveMember(claims.OrgID, userID); err != nil {
		if errors.Is(err, services.ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, response.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "member removed"})
}

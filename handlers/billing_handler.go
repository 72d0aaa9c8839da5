package handlers

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/safetrack/ehs-platform/config"
	"github.com/safetrack/ehs-platform/dto"
	"github.com/safetrack/ehs-platform/response"
	"github.com/safetrack/ehs-platform/services"
)

type BillingHandler struct {
	service *services.BillingService
}

func NewBillingHandler(service *services.BillingService) *BillingHandler {
	return &BillingHandler{service: service}
}

// Webhook godoc
// @Summary Billing provider webhook endpoint
// @Tags billing
// @Accept json
// @Produce json
// @Param X-Webhook-Secret header string true "Shared webhook secret"
// @Success 200 {object} response.MessageResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /billing/webhook [post]
func (h *BillingHandler) Webhook(c *gin.Context) {
	secret := c.GetHeader("X-Webhook-Secret")
	if config.BillingWebhookSecret == "" ||
		subtle.ConstantTimeCompare([]byte(secret), []byte(config.BillingWebhookSecret)) != 1 {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "invalid webhook secret"})
		return
	}

	var event dto.BillingEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.service.HandleEvent(event); err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownEventType):
			// Ack events we do not consume so the provider stops retrying.
			c.JSON(http.StatusOK, response.MessageResponse{Message: "event ignored"})
		case errors.Is(err, services.ErrBadEventPayload):
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "event processed"})
}

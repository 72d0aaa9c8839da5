package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/safetrack/ehs-platform/config"
	"github.com/safetrack/ehs-platform/models"
	"github.com/safetrack/ehs-platform/repositories"
	"github.com/safetrack/ehs-platform/repositories/mock_repositories"
	"github.com/safetrack/ehs-platform/services"
	"github.com/stretchr/testify/assert"
)

func setupBillingWebhook(t *testing.T) (*gin.Engine, *mock_repositories.MockOrganizationRepo, *mock_repositories.MockMemberRepo) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })

	mockOrg := mock_repositories.NewMockOrganizationRepo(ctrl)
	mockMember := mock_repositories.NewMockMemberRepo(ctrl)
	mockAudit := mock_repositories.NewMockAuditRepo(ctrl)
	mockAudit.EXPECT().CreateAuditLog(gomock.Any()).Return(nil).AnyTimes()
	repos := &repositories.Repos{Organization: mockOrg, Member: mockMember, Audit: mockAudit}
	handler := NewBillingHandler(services.NewBillingService(repos))

	r := gin.New()
	r.POST("/billing/webhook", handler.Webhook)

	config.BillingWebhookSecret = "whsec_test"
	t.Cleanup(func() { config.BillingWebhookSecret = "" })

	return r, mockOrg, mockMember
}

func postWebhook(r *gin.Engine, secret, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/billing/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if secret != "" {
		req.Header.Set("X-Webhook-Secret", secret)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWebhook_RejectsBadSecret(t *testing.T) {
	r, _, _ := setupBillingWebhook(t)

	w := postWebhook(r, "wrong", `{"type": "checkout.session.completed"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postWebhook(r, "", `{"type": "checkout.session.completed"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWebhook_CheckoutProvisionsOrg(t *testing.T) {
	r, mockOrg, mockMember := setupBillingWebhook(t)

	mockOrg.EXPECT().Create(gomock.Any()).DoAndReturn(func(org *models.Organization) error {
		org.OrgID = 7
		return nil
	})
	mockMember.EXPECT().Create(gomock.Any()).Return(nil)

	w := postWebhook(r, "whsec_test", `{
		"id": "evt_1",
		"type": "checkout.session.completed",
		"data": {"object": {
			"subscription": "sub_123",
			"metadata": {
				"organizationName": "Acme Construction",
				"creatorUserId": "42",
				"adminLicenses": "1",
				"userLicenses": "10",
				"billingCycle": "monthly"
			}
		}}
	}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWebhook_BadPayload(t *testing.T) {
	r, _, _ := setupBillingWebhook(t)

	w := postWebhook(r, "whsec_test", `{
		"type": "checkout.session.completed",
		"data": {"object": {"metadata": {}}}
	}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWebhook_UnknownEventAcked(t *testing.T) {
	r, _, _ := setupBillingWebhook(t)

	w := postWebhook(r, "whsec_test", `{"type": "invoice.paid", "data": {"object": {}}}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "event ignored")
}

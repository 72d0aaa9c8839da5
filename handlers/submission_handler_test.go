package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/safetrack/ehs-platform/models"
	"github.com/safetrack/ehs-platform/repositories"
	"github.com/safetrack/ehs-platform/repositories/mock_repositories"
	"github.com/safetrack/ehs-platform/services"
	"github.com/safetrack/ehs-platform/types"
	"github.com/safetrack/ehs-platform/utils"
	"github.com/safetrack/ehs-platform/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAttachmentURLRoute(t *testing.T) (*gin.Engine, *mock_repositories.MockSubmissionRepo) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })

	mockSubmission := mock_repositories.NewMockSubmissionRepo(ctrl)
	repos := &repositories.Repos{Submission: mockSubmission}
	handler := NewSubmissionHandler(services.NewSubmissionService(repos), websocket.NewHub())

	origPresign := utils.PresignedURL
	t.Cleanup(func() { utils.PresignedURL = origPresign })
	utils.PresignedURL = func(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
		return "https://storage.example/" + objectName + "?signed", nil
	}

	r := gin.New()
	r.GET("/submissions/:id/attachments/:key/url", func(c *gin.Context) {
		c.Set("claims", &types.Claims{UserID: 42, OrgID: 1, Role: models.RoleAnalyst})
		handler.AttachmentURL(c)
	})
	return r, mockSubmission
}

func attachedSubmission() models.FormSubmission {
	return models.FormSubmission{
		ID:          "s-1",
		OrgID:       1,
		SubmitterID: 42,
		Status:      models.SubmissionSubmitted,
		Attachments: models.AttachmentList{
			{
				ID:        "att-1",
				ObjectKey: "org/1/submissions/s-1/att-1-report.pdf",
				FileName:  "report.pdf",
				Size:      1024,
			},
		},
	}
}

func TestAttachmentURL_ByAttachmentID(t *testing.T) {
	r, mockSubmission := setupAttachmentURLRoute(t)
	mockSubmission.EXPECT().GetOrgSubmission(uint(1), "s-1").Return(attachedSubmission(), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/submissions/s-1/attachments/att-1/url", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "org/1/submissions/s-1/att-1-report.pdf?signed")
}

func TestAttachmentURL_ByFileName(t *testing.T) {
	r, mockSubmission := setupAttachmentURLRoute(t)
	mockSubmission.EXPECT().GetOrgSubmission(uint(1), "s-1").Return(attachedSubmission(), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/submissions/s-1/attachments/report.pdf/url", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "?signed")
}

func TestAttachmentURL_UnknownKey(t *testing.T) {
	r, mockSubmission := setupAttachmentURLRoute(t)
	mockSubmission.EXPECT().GetOrgSubmission(uint(1), "s-1").Return(attachedSubmission(), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/submissions/s-1/attachments/other.pdf/url", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

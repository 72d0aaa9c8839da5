package integration

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/safetrack/ehs-platform/models"
	"github.com/stretchr/testify/require"
)

func TestSubmissionWorkflow(t *testing.T) {
	adminToken := loginUser(t, "alice", "123456")
	tmpl := createTemplate(t, adminToken, "Workflow Incident")

	ensureMember(t, adminToken, "dave", "user")
	ensureMember(t, adminToken, "erin", "analyst")
	daveToken := loginUser(t, "dave", "123456")
	erinToken := loginUser(t, "erin", "123456")

	// Draft first, partial values, no validation.
	draftBody := map[string]interface{}{
		"template_id": tmpl.ID,
		"values":      map[string]interface{}{"incident_title": "Ladder slip"},
	}
	doRequest(t, "PUT", "/submissions/drafts", daveToken, draftBody, http.StatusOK)

	resp := doRequest(t, "GET", "/submissions/drafts", daveToken, nil, http.StatusOK)
	var drafts []models.FormDraft
	decodeData(t, resp, &drafts)
	require.Len(t, drafts, 1)

	// Submitting with the full values removes the draft.
	submitBody := map[string]interface{}{
		"template_id": tmpl.ID,
		"values": map[string]interface{}{
			"incident_title": "Ladder slip",
			"incident_date":  "2026-08-28",
			"severity":       "low",
		},
	}
	resp = doRequest(t, "POST", "/submissions", daveToken, submitBody, http.StatusCreated)
	var sub models.FormSubmission
	decodeData(t, resp, &sub)
	require.Equal(t, models.SubmissionSubmitted, sub.Status)
	require.Equal(t, tmpl.Version, sub.TemplateVersion)

	doRequest(t, "GET", "/submissions/drafts/"+tmpl.ID, daveToken, nil, http.StatusNotFound)

	// The submitter cannot reach the review queue.
	doRequest(t, "GET", "/submissions", daveToken, nil, http.StatusForbidden)
	doRequest(t, "PUT", "/submissions/review/"+sub.ID, daveToken,
		map[string]string{"status": "inReview"}, http.StatusForbidden)

	// The analyst walks the submission through to approval.
	resp = doRequest(t, "GET", "/submissions", erinToken, nil, http.StatusOK)
	var page struct {
		Data  []models.FormSubmission `json:"data"`
		Total int64                   `json:"total"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &page))
	require.NotEmpty(t, page.Data)

	resp = doRequest(t, "PUT", "/submissions/review/"+sub.ID, erinToken,
		map[string]string{"status": "inReview"}, http.StatusOK)
	var reviewed models.FormSubmission
	decodeData(t, resp, &reviewed)
	require.Equal(t, models.SubmissionInReview, reviewed.Status)
	require.NotNil(t, reviewed.ReviewerID)

	doRequest(t, "PUT", "/submissions/review/"+sub.ID, erinToken,
		map[string]interface{}{"status": "approved", "notes": "Handled on site"}, http.StatusOK)

	// Approved is terminal.
	doRequest(t, "PUT", "/submissions/review/"+sub.ID, erinToken,
		map[string]string{"status": "rejected"}, http.StatusConflict)

	// The submitter still sees the outcome.
	resp = doRequest(t, "GET", "/submissions/mine", daveToken, nil, http.StatusOK)
	var mine []models.FormSubmission
	decodeData(t, resp, &mine)
	require.Len(t, mine, 1)
	require.Equal(t, models.SubmissionApproved, mine[0].Status)
}

func TestSubmitValidation(t *testing.T) {
	adminToken := loginUser(t, "alice", "123456")
	tmpl := createTemplate(t, adminToken, "Validation Incident")

	body := map[string]interface{}{
		"template_id": tmpl.ID,
		"values":      map[string]interface{}{"incident_title": "Missing date"},
	}
	resp := doRequest(t, "POST", "/submissions", adminToken, body, http.StatusUnprocessableEntity)
	require.Contains(t, resp.Body.String(), "incident_date")
}

func TestSubmitAgainstRetiredTemplate(t *testing.T) {
	adminToken := loginUser(t, "alice", "123456")
	tmpl := createTemplate(t, adminToken, "Retired Incident")
	doRequest(t, "PUT", "/templates/"+tmpl.ID+"/active", adminToken,
		map[string]bool{"is_active": false}, http.StatusOK)

	body := map[string]interface{}{
		"template_id": tmpl.ID,
		"values": map[string]interface{}{
			"incident_title": "Too late",
			"incident_date":  "2026-08-28",
		},
	}
	doRequest(t, "POST", "/submissions", adminToken, body, http.StatusConflict)
}

func TestAuditTrailRecordsTemplateActions(t *testing.T) {
	adminToken := loginUser(t, "alice", "123456")
	createTemplate(t, adminToken, "Audited Template")

	resp := doRequest(t, "GET", "/audit?action=create&resource_type=form_template", adminToken, nil, http.StatusOK)
	var logs []models.AuditLog
	decodeData(t, resp, &logs)
	require.NotEmpty(t, logs)
	require.Equal(t, "create", logs[0].Action)
	require.Equal(t, "form_template", logs[0].ResourceType)
}

package services

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/safetrack/ehs-platform/dto"
	"github.com/safetrack/ehs-platform/models"
	"github.com/safetrack/ehs-platform/repositories"
	"github.com/safetrack/ehs-platform/repositories/mock_repositories"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type submissionMocks struct {
	template   *mock_repositories.MockTemplateRepo
	submission *mock_repositories.MockSubmissionRepo
	draft      *mock_repositories.MockDraftRepo
}

func setupSubmissionServiceMocks(t *testing.T) (*SubmissionService, submissionMocks) {
	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })

	m := submissionMocks{
		template:   mock_repositories.NewMockTemplateRepo(ctrl),
		submission: mock_repositories.NewMockSubmissionRepo(ctrl),
		draft:      mock_repositories.NewMockDraftRepo(ctrl),
	}
	repos := &repositories.Repos{
		Template:   m.template,
		Submission: m.submission,
		Draft:      m.draft,
	}
	return NewSubmissionService(repos), m
}

func activeIncidentTemplate() models.FormTemplate {
	return models.FormTemplate{
		ID:       "t-1",
		OrgID:    7,
		Version:  3,
		IsActive: true,
		Fields: models.FieldList{
			{Name: "incident_title", Label: "Incident Title", Type: models.FieldTypeText, Required: true, Order: 1},
			{Name: "incident_date", Label: "Incident Date", Type: models.FieldTypeDate, Required: true, Order: 2},
		},
	}
}

// --------------------- Submit ---------------------
func TestSubmit_Success(t *testing.T) {
	svc, m := setupSubmissionServiceMocks(t)

	m.template.EXPECT().GetOrgTemplate(uint(7), "t-1").Return(activeIncidentTemplate(), nil)
	m.submission.EXPECT().Create(gomock.Any()).Return(nil)
	m.draft.EXPECT().Delete("t-1", uint(42)).Return(nil)

	sub, err := svc.Submit(7, 42, dto.SubmitFormInput{
		TemplateID: "t-1",
		Values: map[string]interface{}{
			"incident_title": "Forklift near miss",
			"incident_date":  "2026-08-12",
		},
	})
	assert.NoError(t, err)
	assert.Equal(t, models.SubmissionSubmitted, sub.Status)
	assert.Equal(t, 3, sub.TemplateVersion)
	assert.Equal(t, uint(42), sub.SubmitterID)
	assert.NotEmpty(t, sub.ID)
}

func TestSubmit_RetiredTemplateRejected(t *testing.T) {
	svc, m := setupSubmissionServiceMocks(t)

	tmpl := activeIncidentTemplate()
	tmpl.IsActive = false
	m.template.EXPECT().GetOrgTemplate(uint(7), "t-1").Return(tmpl, nil)

	_, err := svc.Submit(7, 42, dto.SubmitFormInput{
		TemplateID: "t-1",
		Values:     map[string]interface{}{"incident_title": "x", "incident_date": "2026-08-12"},
	})
	assert.Equal(t, ErrTemplateInactive, err)
}

func TestSubmit_ValidationFailureListsFields(t *testing.T) {
	svc, m := setupSubmissionServiceMocks(t)

	m.template.EXPECT().GetOrgTemplate(uint(7), "t-1").Return(activeIncidentTemplate(), nil)

	_, err := svc.Submit(7, 42, dto.SubmitFormInput{
		TemplateID: "t-1",
		Values:     map[string]interface{}{"incident_title": "Forklift near miss"},
	})

	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Fields, 1)
	assert.Equal(t, "incident_date", vErr.Fields[0].Field)
}

func TestSubmit_TemplateNotFound(t *testing.T) {
	svc, m := setupSubmissionServiceMocks(t)

	m.template.EXPECT().GetOrgTemplate(uint(7), "nope").
		Return(models.FormTemplate{}, gorm.ErrRecordNotFound)

	_, err := svc.Submit(7, 42, dto.SubmitFormInput{TemplateID: "nope", Values: map[string]interface{}{}})
	assert.Equal(t, ErrTemplateNotFound, err)
}

// --------------------- Drafts ---------------------
func TestSaveDraft_SkipsValidation(t *testing.T) {
	svc, m := setupSubmissionServiceMocks(t)

	m.template.EXPECT().GetOrgTemplate(uint(7), "t-1").Return(activeIncidentTemplate(), nil)
	m.draft.EXPECT().Upsert(gomock.Any()).Return(nil)
	m.draft.EXPECT().GetByTemplateAndUser("t-1", uint(42)).
		Return(models.FormDraft{ID: "d-1", TemplateID: "t-1", UserID: 42}, nil)

	// Values would fail submission validation; drafts take them anyway.
	draft, err := svc.SaveDraft(7, 42, dto.SaveDraftInput{
		TemplateID: "t-1",
		Values:     map[string]interface{}{"incident_title": ""},
	})
	assert.NoError(t, err)
	assert.Equal(t, "d-1", draft.ID)
}

func TestDeleteDraft_NotFound(t *testing.T) {
	svc, m := setupSubmissionServiceMocks(t)

	m.draft.EXPECT().GetByTemplateAndUser("t-1", uint(42)).
		Return(models.FormDraft{}, gorm.ErrRecordNotFound)

	err := svc.DeleteDraft("t-1", 42)
	assert.Equal(t, ErrDraftNotFound, err)
}

// --------------------- Review ---------------------
func TestReview_SubmittedToInReview(t *testing.T) {
	svc, m := setupSubmissionServiceMocks(t)

	m.submission.EXPECT().GetOrgSubmission(uint(7), "s-1").
		Return(models.FormSubmission{ID: "s-1", OrgID: 7, SubmitterID: 42, Status: models.SubmissionSubmitted}, nil)
	m.submission.EXPECT().Save(gomock.Any()).Return(nil)

	sub, err := svc.Review(7, 99, "s-1", dto.ReviewInput{Status: "inReview"})
	assert.NoError(t, err)
	assert.Equal(t, models.SubmissionInReview, sub.Status)
	assert.Equal(t, uint(99), *sub.ReviewerID)
	assert.NotNil(t, sub.ReviewedAt)
}

func TestReview_SkippingInReviewRejected(t *testing.T) {
	svc, m := setupSubmissionServiceMocks(t)

	m.submission.EXPECT().GetOrgSubmission(uint(7), "s-1").
		Return(models.FormSubmission{ID: "s-1", SubmitterID: 42, Status: models.SubmissionSubmitted}, nil)

	_, err := svc.Review(7, 99, "s-1", dto.ReviewInput{Status: "approved"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestReview_TerminalStateIsFinal(t *testing.T) {
	svc, m := setupSubmissionServiceMocks(t)

	m.submission.EXPECT().GetOrgSubmission(uint(7), "s-1").
		Return(models.FormSubmission{ID: "s-1", SubmitterID: 42, Status: models.SubmissionApproved}, nil)

	_, err := svc.Review(7, 99, "s-1", dto.ReviewInput{Status: "rejected"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestReview_OwnSubmissionRefused(t *testing.T) {
	svc, m := setupSubmissionServiceMocks(t)

	m.submission.EXPECT().GetOrgSubmission(uint(7), "s-1").
		Return(models.FormSubmission{ID: "s-1", SubmitterID: 99, Status: models.SubmissionSubmitted}, nil)

	_, err := svc.Review(7, 99, "s-1", dto.ReviewInput{Status: "inReview"})
	assert.Equal(t, ErrReviewOwnSubmission, err)
}

func TestReview_WithNotes(t *testing.T) {
	svc, m := setupSubmissionServiceMocks(t)

	m.submission.EXPECT().GetOrgSubmission(uint(7), "s-1").
		Return(models.FormSubmission{ID: "s-1", SubmitterID: 42, Status: models.SubmissionInReview}, nil)
	m.submission.EXPECT().Save(gomock.Any()).Return(nil)

	notes := "Missing witness statement"
	sub, err := svc.Review(7, 99, "s-1", dto.ReviewInput{Status: "rejected", Notes: &notes})
	assert.NoError(t, err)
	assert.Equal(t, models.SubmissionRejected, sub.Status)
	assert.Equal(t, notes, *sub.ReviewNotes)
}

// --------------------- Attachments ---------------------
func TestAddAttachment_OnlySubmitter(t *testing.T) {
	svc, m := setupSubmissionServiceMocks(t)

	m.submission.EXPECT().GetOrgSubmission(uint(7), "s-1").
		Return(models.FormSubmission{ID: "s-1", SubmitterID: 42}, nil)

	_, err := svc.AddAttachment(7, 99, "s-1", models.Attachment{ObjectKey: "k"})
	assert.Equal(t, ErrNotSubmissionOwner, err)
}

func TestAddAttachment_Appends(t *testing.T) {
	svc, m := setupSubmissionServiceMocks(t)

	m.submission.EXPECT().GetOrgSubmission(uint(7), "s-1").
		Return(models.FormSubmission{ID: "s-1", SubmitterID: 42}, nil)
	m.submission.EXPECT().Save(gomock.Any()).Return(nil)

	sub, err := svc.AddAttachment(7, 42, "s-1", models.Attachment{ObjectKey: "k", FileName: "photo.jpg", Size: 1024})
	assert.NoError(t, err)
	assert.Len(t, sub.Attachments, 1)
	assert.Equal(t, "photo.jpg", sub.Attachments[0].FileName)
}

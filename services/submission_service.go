package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/safetrack/ehs-platform/dto"
	"github.com/safetrack/ehs-platform/models"
	"github.com/safetrack/ehs-platform/repositories"
	"github.com/safetrack/ehs-platform/response"
	"gorm.io/gorm"
)

var (
	ErrSubmissionNotFound  = errors.New("submission not found")
	ErrTemplateInactive    = errors.New("template is not accepting submissions")
	ErrInvalidTransition   = errors.New("invalid review status transition")
	ErrDraftNotFound       = errors.New("draft not found")
	ErrNotSubmissionOwner  = errors.New("not the submitter of this submission")
	ErrReviewOwnSubmission = errors.New("cannot review your own submission")
)

// ValidationError carries the per-field failures of a rejected submission.
type ValidationError struct {
	Fields []response.FieldErrorItem
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("submission failed validation on %d field(s)", len(e.Fields))
}

type SubmissionService struct {
	Repos *repositories.Repos
}

func NewSubmissionService(repos *repositories.Repos) *SubmissionService {
	return &SubmissionService{Repos: repos}
}

// Submit validates the values against the template's current field set and
// stores the submission with the template version stamped. Any draft the
// submitter held for this template is consumed in the same transaction.
func (s *SubmissionService) Submit(orgID, userID uint, input dto.SubmitFormInput) (*models.FormSubmission, error) {
	t, err := s.Repos.Template.GetOrgTemplate(orgID, input.TemplateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	if !t.IsActive {
		return nil, ErrTemplateInactive
	}

	if fieldErrs := ValidateValues(t.Fields, input.Values); len(fieldErrs) > 0 {
		return nil, &ValidationError{Fields: fieldErrs}
	}

	sub := &models.FormSubmission{
		ID:              uuid.NewString(),
		OrgID:           orgID,
		TemplateID:      t.ID,
		TemplateVersion: t.Version,
		SubmitterID:     userID,
		Status:          models.SubmissionSubmitted,
		Values:          input.Values,
		SubmittedAt:     time.Now(),
	}

	err = s.Repos.ExecTx(func(tx *repositories.Repos) error {
		if err := tx.Submission.Create(sub); err != nil {
			return err
		}
		return tx.Draft.Delete(t.ID, userID)
	})
	if err != nil {
		return nil, err
	}
	return sub, nil
}

// SaveDraft upserts the user's draft for a template. Drafts skip
// validation; partial and even invalid values are kept as-is.
func (s *SubmissionService) SaveDraft(orgID, userID uint, input dto.SaveDraftInput) (*models.FormDraft, error) {
	t, err := s.Repos.Template.GetOrgTemplate(orgID, input.TemplateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}

	draft := &models.FormDraft{
		ID:              uuid.NewString(),
		OrgID:           orgID,
		TemplateID:      t.ID,
		UserID:          userID,
		TemplateVersion: t.Version,
		Values:          input.Values,
	}
	if err := s.Repos.Draft.Upsert(draft); err != nil {
		return nil, err
	}
	saved, err := s.Repos.Draft.GetByTemplateAndUser(t.ID, userID)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (s *SubmissionService) GetDraft(templateID string, userID uint) (*models.FormDraft, error) {
	d, err := s.Repos.Draft.GetByTemplateAndUser(templateID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDraftNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (s *SubmissionService) DeleteDraft(templateID string, userID uint) error {
	if _, err := s.Repos.Draft.GetByTemplateAndUser(templateID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDraftNotFound
		}
		return err
	}
	return s.Repos.Draft.Delete(templateID, userID)
}

func (s *SubmissionService) ListMyDrafts(orgID, userID uint) ([]models.FormDraft, error) {
	return s.Repos.Draft.ListByUser(orgID, userID)
}

func (s *SubmissionService) GetSubmission(orgID uint, id string) (*models.FormSubmission, error) {
	sub, err := s.Repos.Submission.GetOrgSubmission(orgID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (s *SubmissionService) ListSubmissions(orgID uint, filter repositories.SubmissionFilter) ([]models.FormSubmission, int64, error) {
	return s.Repos.Submission.ListByOrg(orgID, filter)
}

func (s *SubmissionService) ListMySubmissions(orgID, userID uint) ([]models.FormSubmission, error) {
	return s.Repos.Submission.ListByUser(orgID, userID)
}

// Review advances a submission through the review state machine:
// submitted -> inReview -> approved | rejected.
func (s *SubmissionService) Review(orgID, reviewerID uint, id string, input dto.ReviewInput) (*models.FormSubmission, error) {
	sub, err := s.Repos.Submission.GetOrgSubmission(orgID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}
	if sub.SubmitterID == reviewerID {
		return nil, ErrReviewOwnSubmission
	}

	next := models.SubmissionStatus(input.Status)
	if !sub.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, sub.Status, next)
	}

	now := time.Now()
	sub.Status = next
	sub.ReviewerID = &reviewerID
	sub.ReviewedAt = &now
	if input.Notes != nil {
		sub.ReviewNotes = input.Notes
	}

	if err := s.Repos.Submission.Save(&sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// AddAttachment appends an uploaded object reference to a submission. Only
// the submitter may attach, and only before review completes.
func (s *SubmissionService) AddAttachment(orgID, userID uint, id string, att models.Attachment) (*models.FormSubmission, error) {
	sub, err := s.Repos.Submission.GetOrgSubmission(orgID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}
	if sub.SubmitterID != userID {
		return nil, ErrNotSubmissionOwner
	}

	sub.Attachments = append(sub.Attachments, att)
	if err := s.Repos.Submission.Save(&sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

type SubmissionStatus string

const (
	SubmissionDraft     SubmissionStatus = "draft"
	SubmissionSubmitted SubmissionStatus = "submitted"
	SubmissionInReview  SubmissionStatus = "inReview"
	SubmissionApproved  SubmissionStatus = "approved"
	SubmissionRejected  SubmissionStatus = "rejected"
)

// CanTransitionTo encodes the review state machine:
// submitted -> inReview -> approved | rejected.
func (s SubmissionStatus) CanTransitionTo(next SubmissionStatus) bool {
	switch s {
	case SubmissionSubmitted:
		return next == SubmissionInReview
	case SubmissionInReview:
		return next == SubmissionApproved || next == SubmissionRejected
	}
	return false
}

// Attachment records one uploaded file backing a submission value.
type Attachment struct {
	ID        string `json:"id"`
	ObjectKey string `json:"object_key"`
	FileName  string `json:"file_name"`
	Size      int64  `json:"size"`
	URL       string `json:"url,omitempty"`
}

type AttachmentList []Attachment

func (l AttachmentList) Value() (driver.Value, error) {
	if l == nil {
		l = AttachmentList{}
	}
	return json.Marshal(l)
}

func (l *AttachmentList) Scan(value interface{}) error {
	if value == nil {
		*l = AttachmentList{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported attachment column type %T", value)
	}
	return json.Unmarshal(data, l)
}

// FormSubmission is one filled instance of a template. Values are keyed by
// field name and are validated against the template's field set at submit
// time; TemplateVersion pins the schema the submitter actually saw.
type FormSubmission struct {
	ID              string            `gorm:"type:uuid;primaryKey" json:"id"`
	OrgID           uint              `gorm:"not null;index" json:"org_id"`
	TemplateID      string            `gorm:"type:uuid;not null;index" json:"template_id"`
	TemplateVersion int               `gorm:"not null;default:1" json:"template_version"`
	SubmitterID     uint              `gorm:"not null;index" json:"submitter_id"`
	Status          SubmissionStatus  `gorm:"size:20;not null;default:'submitted'" json:"status"`
	Values          datatypes.JSONMap `gorm:"type:jsonb" json:"values"`
	Attachments     AttachmentList    `gorm:"type:jsonb" json:"attachments"`
	SubmittedAt     time.Time         `json:"submitted_at"`
	ReviewerID      *uint             `json:"reviewer_id,omitempty"`
	ReviewedAt      *time.Time        `json:"reviewed_at,omitempty"`
	ReviewNotes     *string           `gorm:"type:text" json:"review_notes,omitempty"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

func (FormSubmission) TableName() string {
	return "form_submissions"
}

// FormDraft is a partially filled submission. One draft per user and
// template; saving again overwrites. Drafts skip validation entirely.
type FormDraft struct {
	ID              string            `gorm:"type:uuid;primaryKey" json:"id"`
	OrgID           uint              `gorm:"not null;index" json:"org_id"`
	TemplateID      string            `gorm:"type:uuid;not null;uniqueIndex:uq_draft_template_user" json:"template_id"`
	UserID          uint              `gorm:"not null;uniqueIndex:uq_draft_template_user" json:"user_id"`
	TemplateVersion int               `gorm:"not null;default:1" json:"template_version"`
	Values          datatypes.JSONMap `gorm:"type:jsonb" json:"values"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`
}

func (FormDraft) TableName() string {
	return "form_drafts"
}

package models

import "time"

type FormCategory string

const (
	CategoryIncident       FormCategory = "incident"
	CategoryRecognition    FormCategory = "recognition"
	CategoryHeatPrevention FormCategory = "heatPrevention"
	CategoryOther          FormCategory = "other"
)

func (c FormCategory) Valid() bool {
	switch c {
	case CategoryIncident, CategoryRecognition, CategoryHeatPrevention, CategoryOther:
		return true
	}
	return false
}

// FormTemplate is an organization-owned form schema. Edits mutate the row
// in place; the version pointers are kept for the version-history view but
// saves do not fork new rows.
type FormTemplate struct {
	ID                   string       `gorm:"type:uuid;primaryKey" json:"id"`
	OrgID                uint         `gorm:"not null;index" json:"org_id"`
	Name                 string       `gorm:"size:200;not null" json:"name"`
	Description          string       `gorm:"type:text" json:"description"`
	Category             FormCategory `gorm:"size:30;not null;default:'other'" json:"category"`
	Fields               FieldList    `gorm:"type:jsonb;not null" json:"fields"`
	IsActive             bool         `gorm:"not null;default:true" json:"is_active"`
	Version              int          `gorm:"not null;default:1" json:"version"`
	PreviousVersionID    *string      `gorm:"type:uuid" json:"previous_version_id,omitempty"`
	IsLatestVersion      bool         `gorm:"not null;default:true" json:"is_latest_version"`
	CopiedFromTemplateID *string      `gorm:"type:uuid" json:"copied_from_template_id,omitempty"`
	CreatedBy            uint         `json:"created_by"`
	CreatedAt            time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

func (FormTemplate) TableName() string {
	return "form_templates"
}

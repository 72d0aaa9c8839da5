package models

import (
	"time"

	"github.com/lib/pq"
)

type ComplexityLevel string

const (
	ComplexityBasic        ComplexityLevel = "basic"
	ComplexityIntermediate ComplexityLevel = "intermediate"
	ComplexityAdvanced     ComplexityLevel = "advanced"
)

// SystemFormTemplate is a shared catalog entry, organization-independent.
// Copying one into an org deep-clones its fields into a new FormTemplate.
type SystemFormTemplate struct {
	ID               string          `gorm:"type:uuid;primaryKey" json:"id"`
	Name             string          `gorm:"size:200;not null;uniqueIndex" json:"name"`
	Description      string          `gorm:"type:text" json:"description"`
	Category         FormCategory    `gorm:"size:30;not null;default:'other'" json:"category"`
	Fields           FieldList       `gorm:"type:jsonb;not null" json:"fields"`
	IndustryTags     pq.StringArray  `gorm:"type:text[]" json:"industry_tags"`
	Complexity       ComplexityLevel `gorm:"size:20;not null;default:'basic'" json:"complexity"`
	EstimatedMinutes int             `json:"estimated_minutes"`
	UsageCount       int             `gorm:"not null;default:0" json:"usage_count"`
	IsActive         bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SystemFormTemplate) TableName() string {
	return "system_form_templates"
}

package dto

import "github.com/safetrack/ehs-platform/models"

type CreateTemplateInput struct {
	Name        string              `json:"name" binding:"required"`
	Description string              `json:"description"`
	Category    models.FormCategory `json:"category" binding:"required,oneof=incident recognition heatPrevention other"`
	Fields      models.FieldList    `json:"fields" binding:"required"`
}

// UpdateTemplateInput replaces the whole field list on save, builder style.
// Nil slices/pointers leave the current value untouched.
type UpdateTemplateInput struct {
	Name        *string              `json:"name"`
	Description *string              `json:"description"`
	Category    *models.FormCategory `json:"category" binding:"omitempty,oneof=incident recognition heatPrevention other"`
	Fields      models.FieldList     `json:"fields"`
}

type ToggleActiveInput struct {
	IsActive bool `json:"is_active"`
}

type CopySystemTemplateInput struct {
	Name *string `json:"name"`
}

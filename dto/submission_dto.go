package dto

type SubmitFormInput struct {
	TemplateID string                 `json:"template_id" binding:"required,uuid"`
	Values     map[string]interface{} `json:"values" binding:"required"`
}

type SaveDraftInput struct {
	TemplateID string                 `json:"template_id" binding:"required,uuid"`
	Values     map[string]interface{} `json:"values"`
}

type ReviewInput struct {
	Status string  `json:"status" binding:"required,oneof=inReview approved rejected"`
	Notes  *string `json:"notes"`
}

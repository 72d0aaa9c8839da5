package response

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type SuccessResponse struct {
	Data interface{} `json:"data"`
}

type TokenResponse struct {
	Token    string `json:"token"`
	UID      uint   `json:"user_id"`
	Username string `json:"username"`
	OrgID    uint   `json:"org_id"`
	Role     string `json:"role"`
}

// FieldErrorItem is one inline validation failure, keyed by field name.
type FieldErrorItem struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationErrorResponse struct {
	Error  string           `json:"error"`
	Fields []FieldErrorItem `json:"fields"`
}

type PagedResponse struct {
	Data  interface{} `json:"data"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

// PartialResponse reports a multi-step flow that stopped partway; completed
// steps are not rolled back.
type PartialResponse struct {
	Message        string      `json:"message"`
	CompletedSteps []string    `json:"completed_steps"`
	FailedStep     string      `json:"failed_step"`
	Data           interface{} `json:"data,omitempty"`
}

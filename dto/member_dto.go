package dto

// CreateMemberInput is the admin "create member" payload. The server
// creates the auth record, the membership and sends the welcome mail.
type CreateMemberInput struct {
	Username string  `json:"username" binding:"required"`
	Password string  `json:"password" binding:"required,min=6"`
	Email    string  `json:"email" binding:"required,email"`
	FullName *string `json:"full_name"`
	Role     string  `json:"role" binding:"required,oneof=admin analyst user"`
}

type UpdateMemberRoleInput struct {
	Role string `json:"role" binding:"required,oneof=admin analyst user"`
}

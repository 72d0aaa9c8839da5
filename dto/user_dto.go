package dto

type RegisterInput struct {
	Username string  `json:"username" binding:"required" example:"johndoe"`
	Password string  `json:"password" binding:"required,min=6" example:"password123"`
	Email    *string `json:"email" binding:"omitempty,email" example:"user@example.com"`
	FullName *string `json:"full_name" example:"John Doe"`
}

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateUserInput struct {
	OldPassword *string `json:"old_password"`
	Password    *string `json:"password" binding:"omitempty,min=6"`
	Email       *string `json:"email" binding:"omitempty,email"`
	FullName    *string `json:"full_name"`
	Status      *string `json:"status" binding:"omitempty,oneof=active disabled delete"`
}

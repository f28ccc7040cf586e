package dto

type RegisterInput struct {
	Username string `json:"username" validate:"required,max=150"`
	Password string `json:"password" validate:"required"`
	Email    string `json:"email" validate:"required,email,max=320"`
}

type RegisterOutput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

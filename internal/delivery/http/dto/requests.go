package dto

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type ValidateMatchRequest struct {
	Status string `json:"status" validate:"required,oneof=validated rejected"`
	Notes  string `json:"notes" validate:"max=2000"`
}

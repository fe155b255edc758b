package dto

// SignupRequest payload for admin and user signup.
type SignupRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=32"`
}

// SigninRequest payload for admin and user signin.
type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=32"`
}

// MessageResponse is the body of responses that carry no record.
type MessageResponse struct {
	Message string `json:"message"`
}

// SigninResponse carries the issued token.
type SigninResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

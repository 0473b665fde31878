package requests

// SignupRequest registers a new email/password user.
type SignupRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password1 string `json:"password1" binding:"required,min=8"`
	Password2 string `json:"password2" binding:"required"`
}

// SigninRequest authenticates an existing user.
type SigninRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest rotates a session token pair.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

package dto

// SignUpRequest is the JSON body for POST /auth/signup.
type SignUpRequest struct {
	Username string `json:"username" binding:"required,min=1,max=120"`
	Password string `json:"password" binding:"required,min=1"`
}

// SignInRequest is the JSON body for POST /auth/signin.
type SignInRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries the issued session token.
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// UserResponse is returned after signup.
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

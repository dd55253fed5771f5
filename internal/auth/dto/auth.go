package dto

import authdomain "painplus-backend/internal/auth/domain"

// Request bodies are explicit structs with enumerated fields; validation
// happens in the usecase so each failure maps to its own error code.

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// OAuthCallbackRequest carries either a provider access token (SPA flow)
// or an authorization code to exchange server-side.
type OAuthCallbackRequest struct {
	AccessToken string `json:"access_token"`
	Code        string `json:"code"`
}

type AuthResponse struct {
	Token string           `json:"token"`
	User  *authdomain.User `json:"user"`
}

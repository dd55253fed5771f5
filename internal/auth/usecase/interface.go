package usecase

import (
	"context"

	authdomain "painplus-backend/internal/auth/domain"
	authdto "painplus-backend/internal/auth/dto"
	"painplus-backend/internal/auth/oauth"
)

// AuthUsecase is the gateway every auth endpoint goes through.
type AuthUsecase interface {
	Signup(req *authdto.SignupRequest) (*authdto.AuthResponse, error)
	Login(req *authdto.LoginRequest) (*authdto.AuthResponse, error)
	MicrosoftCallback(ctx context.Context, req *authdto.OAuthCallbackRequest) (*authdto.AuthResponse, error)
	VerifyToken(tokenString string) (*authdomain.User, error)
}

// OAuthProvider is the contract the gateway needs from an external identity
// provider: a token for a code, and a stable profile for a token.
type OAuthProvider interface {
	ExchangeCode(ctx context.Context, code string) (string, error)
	FetchProfile(ctx context.Context, accessToken string) (*oauth.Profile, error)
}

package usecase

import (
	"context"
	"errors"
	"regexp"
	"strings"

	authdomain "painplus-backend/internal/auth/domain"
	authdto "painplus-backend/internal/auth/dto"
	"painplus-backend/internal/auth/password"
	"painplus-backend/internal/auth/repository"
	"painplus-backend/internal/auth/token"
)

// MinPasswordLength is the minimum accepted password length for signup.
const MinPasswordLength = 8

var (
	ErrMissingFields = errors.New("email, password and name are required")
	ErrInvalidEmail  = errors.New("invalid email address")
	ErrWeakPassword  = errors.New("password must be at least 8 characters")
	ErrEmailExists   = errors.New("email already registered")
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password so responses never reveal whether an account exists.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWrongAuthProvider  = errors.New("please use Microsoft Sign-In for this account")
	ErrUserNotFound       = errors.New("user not found")
	ErrOAuthFailed        = errors.New("authentication failed")
	ErrInvalidRequest     = errors.New("access token or authorization code is required")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// authUsecase implements AuthUsecase interface
type authUsecase struct {
	userRepo repository.UserRepository
	tokens   *token.Manager
	provider OAuthProvider
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(userRepo repository.UserRepository, tokens *token.Manager, provider OAuthProvider) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		tokens:   tokens,
		provider: provider,
	}
}

func (u *authUsecase) Signup(req *authdto.SignupRequest) (*authdto.AuthResponse, error) {
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return nil, ErrMissingFields
	}
	if !emailPattern.MatchString(req.Email) {
		return nil, ErrInvalidEmail
	}
	if len(req.Password) < MinPasswordLength {
		return nil, ErrWeakPassword
	}

	existing, err := u.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	hash, salt, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &authdomain.User{
		Email:        strings.ToLower(req.Email),
		Name:         req.Name,
		PasswordHash: hash,
		PasswordSalt: salt,
	}

	if err := u.userRepo.Create(user); err != nil {
		// A concurrent signup for the same email loses the insert race on
		// the unique index; report it as the same conflict.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	return u.issueFor(user)
}

func (u *authUsecase) Login(req *authdto.LoginRequest) (*authdto.AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, ErrMissingFields
	}

	user, err := u.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if !user.HasPassword() {
		return nil, ErrWrongAuthProvider
	}

	if !password.Verify(req.Password, user.PasswordHash, user.PasswordSalt) {
		return nil, ErrInvalidCredentials
	}

	return u.issueFor(user)
}

func (u *authUsecase) MicrosoftCallback(ctx context.Context, req *authdto.OAuthCallbackRequest) (*authdto.AuthResponse, error) {
	accessToken := req.AccessToken
	if accessToken == "" {
		if req.Code == "" {
			return nil, ErrInvalidRequest
		}
		exchanged, err := u.provider.ExchangeCode(ctx, req.Code)
		if err != nil {
			return nil, ErrOAuthFailed
		}
		accessToken = exchanged
	}

	profile, err := u.provider.FetchProfile(ctx, accessToken)
	if err != nil {
		return nil, ErrOAuthFailed
	}

	// Find or create, keyed on the stable external id.
	user, err := u.userRepo.FindByMicrosoftID(profile.ID)
	if err != nil {
		return nil, err
	}

	if user == nil {
		microsoftID := profile.ID
		user = &authdomain.User{
			Email:       strings.ToLower(profile.EmailAddress()),
			Name:        profile.DisplayName,
			MicrosoftID: &microsoftID,
		}
		if err := u.userRepo.Create(user); err != nil {
			// Lost a concurrent find-or-create race; the row exists now.
			if errors.Is(err, repository.ErrDuplicate) {
				user, err = u.userRepo.FindByMicrosoftID(profile.ID)
				if err != nil {
					return nil, err
				}
				if user == nil {
					return nil, ErrOAuthFailed
				}
			} else {
				return nil, err
			}
		}
	}

	return u.issueFor(user)
}

func (u *authUsecase) VerifyToken(tokenString string) (*authdomain.User, error) {
	claims, err := u.tokens.Verify(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, ErrUserNotFound
	}

	return user, nil
}

func (u *authUsecase) issueFor(user *authdomain.User) (*authdto.AuthResponse, error) {
	signed, err := u.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &authdto.AuthResponse{
		Token: signed,
		User:  user,
	}, nil
}

package usecase

import (
	"errors"

	authdomain "painplus-backend/internal/auth/domain"
	authrepo "painplus-backend/internal/auth/repository"
	userdto "painplus-backend/internal/user/dto"
)

var ErrNotFound = errors.New("user not found")

// ProfileUsecase reads and updates the account's public profile. It is a
// downstream consumer of the auth gateway: the caller has already been
// authenticated by the middleware.
type ProfileUsecase interface {
	Get(userID string) (*authdomain.User, error)
	Update(userID string, req *userdto.UpdateProfileRequest) (*authdomain.User, error)
}

type profileUsecase struct {
	userRepo authrepo.UserRepository
}

// NewProfileUsecase creates a new instance of profileUsecase
func NewProfileUsecase(userRepo authrepo.UserRepository) ProfileUsecase {
	return &profileUsecase{
		userRepo: userRepo,
	}
}

func (u *profileUsecase) Get(userID string) (*authdomain.User, error) {
	user, err := u.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

func (u *profileUsecase) Update(userID string, req *userdto.UpdateProfileRequest) (*authdomain.User, error) {
	user, err := u.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.AvatarURL != nil {
		user.AvatarURL = *req.AvatarURL
	}

	if err := u.userRepo.Update(user); err != nil {
		return nil, err
	}

	return user, nil
}

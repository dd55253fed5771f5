package repository

import (
	"errors"
	"strings"
	"time"

	authdomain "painplus-backend/internal/auth/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrDuplicate is returned by Create when a unique constraint (email or
// microsoft id) rejects the insert.
var ErrDuplicate = errors.New("record already exists")

// UserRepository abstracts account persistence for the auth gateway.
type UserRepository interface {
	Create(user *authdomain.User) error
	FindByEmail(email string) (*authdomain.User, error)
	FindByID(id string) (*authdomain.User, error)
	FindByMicrosoftID(microsoftID string) (*authdomain.User, error)
	Update(user *authdomain.User) error
}

// userRepository implements UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of userRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		db: db,
	}
}

// Create inserts the account. Duplicate emails or microsoft ids surface as
// gorm.ErrDuplicatedKey via the unique indexes; concurrent signups for the
// same email are serialized by the constraint, not by application locking.
func (r *userRepository) Create(user *authdomain.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.Email = strings.ToLower(user.Email)
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// FindByEmail looks an account up case-insensitively. Emails are stored
// lowercase, so lowering the needle is enough.
func (r *userRepository) FindByEmail(email string) (*authdomain.User, error) {
	var user authdomain.User
	err := r.db.Where("email = ?", strings.ToLower(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByID(id string) (*authdomain.User, error) {
	var user authdomain.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByMicrosoftID(microsoftID string) (*authdomain.User, error) {
	var user authdomain.User
	err := r.db.Where("microsoft_id = ?", microsoftID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(user *authdomain.User) error {
	user.UpdatedAt = time.Now()
	return r.db.Save(user).Error
}

package usecase

import (
	"errors"
	"testing"

	authdomain "painplus-backend/internal/auth/domain"
	authrepo "painplus-backend/internal/auth/repository"
	userdto "painplus-backend/internal/user/dto"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupProfileUsecase(t *testing.T) (ProfileUsecase, *authdomain.User) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&authdomain.User{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	repo := authrepo.NewUserRepository(db)
	user := &authdomain.User{Email: "a@b.com", Name: "Before", PasswordHash: "aa", PasswordSalt: "bb"}
	if err := repo.Create(user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	return NewProfileUsecase(repo), user
}

func TestProfileUpdate(t *testing.T) {
	uc, user := setupProfileUsecase(t)

	name := "After"
	avatar := "https://example.com/a.png"
	updated, err := uc.Update(user.ID, &userdto.UpdateProfileRequest{Name: &name, AvatarURL: &avatar})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if updated.Name != "After" {
		t.Errorf("expected updated name, got %q", updated.Name)
	}
	if updated.AvatarURL != avatar {
		t.Errorf("expected updated avatar, got %q", updated.AvatarURL)
	}

	// Omitted fields stay untouched.
	name2 := "Final"
	updated, err = uc.Update(user.ID, &userdto.UpdateProfileRequest{Name: &name2})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.AvatarURL != avatar {
		t.Errorf("avatar changed unexpectedly to %q", updated.AvatarURL)
	}
}

func TestProfileGet_NotFound(t *testing.T) {
	uc, _ := setupProfileUsecase(t)

	if _, err := uc.Get("missing-id"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

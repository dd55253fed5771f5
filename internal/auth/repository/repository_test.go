package repository

import (
	"errors"
	"testing"
	"time"

	authdomain "painplus-backend/internal/auth/domain"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&authdomain.User{}, &authdomain.RateLimitAttempt{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))

	user := &authdomain.User{
		Email:        "A@B.com",
		Name:         "Test User",
		PasswordHash: "abcd",
		PasswordSalt: "ef01",
	}
	if err := repo.Create(user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if user.ID == "" {
		t.Error("Create() did not assign an id")
	}
	if user.Email != "a@b.com" {
		t.Errorf("expected email stored lowercase, got %q", user.Email)
	}

	// Lookup is case-insensitive.
	found, err := repo.FindByEmail("a@B.COM")
	if err != nil {
		t.Fatalf("FindByEmail() error = %v", err)
	}
	if found == nil {
		t.Fatal("FindByEmail() returned nil for existing account")
	}
	if found.ID != user.ID {
		t.Errorf("expected id %q, got %q", user.ID, found.ID)
	}

	byID, err := repo.FindByID(user.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if byID == nil || byID.Email != "a@b.com" {
		t.Errorf("FindByID() returned %+v", byID)
	}
}

func TestUserRepository_NotFoundIsNil(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))

	user, err := repo.FindByEmail("missing@example.com")
	if err != nil {
		t.Fatalf("FindByEmail() error = %v", err)
	}
	if user != nil {
		t.Errorf("expected nil for missing account, got %+v", user)
	}

	user, err = repo.FindByID("missing-id")
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if user != nil {
		t.Errorf("expected nil for missing id, got %+v", user)
	}
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))

	first := &authdomain.User{Email: "a@b.com", Name: "First", PasswordHash: "aa", PasswordSalt: "bb"}
	if err := repo.Create(first); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// A duplicate insert loses on the unique index; no second row appears.
	second := &authdomain.User{Email: "A@B.COM", Name: "Second", PasswordHash: "cc", PasswordSalt: "dd"}
	err := repo.Create(second)
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestUserRepository_FindByMicrosoftID(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))

	externalID := "ext-1"
	user := &authdomain.User{Email: "x@y.com", Name: "OAuth User", MicrosoftID: &externalID}
	if err := repo.Create(user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	found, err := repo.FindByMicrosoftID("ext-1")
	if err != nil {
		t.Fatalf("FindByMicrosoftID() error = %v", err)
	}
	if found == nil || found.ID != user.ID {
		t.Errorf("FindByMicrosoftID() returned %+v", found)
	}

	missing, err := repo.FindByMicrosoftID("ext-2")
	if err != nil {
		t.Fatalf("FindByMicrosoftID() error = %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown external id, got %+v", missing)
	}
}

func TestUserRepository_MultiplePasswordOnlyAccounts(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))

	// Accounts without an external id must not collide on the nullable
	// unique index.
	for _, email := range []string{"one@example.com", "two@example.com"} {
		user := &authdomain.User{Email: email, Name: "User", PasswordHash: "aa", PasswordSalt: "bb"}
		if err := repo.Create(user); err != nil {
			t.Fatalf("Create(%s) error = %v", email, err)
		}
	}
}

func TestAttemptRepository_WindowOperations(t *testing.T) {
	store := NewAttemptRepository(setupTestDB(t))

	now := time.Now()
	for _, offset := range []time.Duration{-90 * time.Second, -30 * time.Second, -10 * time.Second} {
		if err := store.Record("1.2.3.4", "login", now.Add(offset)); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	windowStart := now.Add(-time.Minute)

	count, err := store.CountSince("1.2.3.4", "login", windowStart)
	if err != nil {
		t.Fatalf("CountSince() error = %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 attempts in window, got %d", count)
	}

	oldest, err := store.OldestSince("1.2.3.4", "login", windowStart)
	if err != nil {
		t.Fatalf("OldestSince() error = %v", err)
	}
	if want := now.Add(-30 * time.Second).UnixMilli(); oldest.UnixMilli() != want {
		t.Errorf("expected oldest at %d, got %d", want, oldest.UnixMilli())
	}

	if err := store.DeleteBefore("1.2.3.4", "login", windowStart); err != nil {
		t.Fatalf("DeleteBefore() error = %v", err)
	}

	count, err = store.CountSince("1.2.3.4", "login", now.Add(-2*time.Minute))
	if err != nil {
		t.Fatalf("CountSince() error = %v", err)
	}
	if count != 2 {
		t.Errorf("expected pruning to leave 2 attempts, got %d", count)
	}
}

func TestAttemptRepository_KeysAreScoped(t *testing.T) {
	store := NewAttemptRepository(setupTestDB(t))

	now := time.Now()
	if err := store.Record("1.2.3.4", "login", now); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if err := store.Record("1.2.3.4", "signup", now); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if err := store.Record("5.6.7.8", "login", now); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	since := now.Add(-time.Minute)
	count, err := store.CountSince("1.2.3.4", "login", since)
	if err != nil {
		t.Fatalf("CountSince() error = %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 attempt for (client, endpoint) pair, got %d", count)
	}

	oldest, err := store.OldestSince("9.9.9.9", "login", since)
	if err != nil {
		t.Fatalf("OldestSince() error = %v", err)
	}
	if !oldest.IsZero() {
		t.Errorf("expected zero time for unseen key, got %v", oldest)
	}
}

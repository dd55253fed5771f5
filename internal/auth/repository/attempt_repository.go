package repository

import (
	"errors"
	"time"

	authdomain "painplus-backend/internal/auth/domain"
	"painplus-backend/internal/auth/ratelimit"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// attemptRepository implements ratelimit.AttemptStore on the
// rate_limit_attempts table.
type attemptRepository struct {
	db *gorm.DB
}

// NewAttemptRepository creates a GORM-backed attempt store for the rate
// limiter.
func NewAttemptRepository(db *gorm.DB) ratelimit.AttemptStore {
	return &attemptRepository{
		db: db,
	}
}

func (r *attemptRepository) Record(clientID, endpoint string, ts time.Time) error {
	attempt := &authdomain.RateLimitAttempt{
		ID:        uuid.New().String(),
		ClientID:  clientID,
		Endpoint:  endpoint,
		Timestamp: ts.UnixMilli(),
	}
	return r.db.Create(attempt).Error
}

func (r *attemptRepository) CountSince(clientID, endpoint string, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&authdomain.RateLimitAttempt{}).
		Where("client_id = ? AND endpoint = ? AND timestamp >= ?", clientID, endpoint, since.UnixMilli()).
		Count(&count).Error
	return count, err
}

// OldestSince returns the oldest surviving attempt in the window, or the
// zero time when none survives.
func (r *attemptRepository) OldestSince(clientID, endpoint string, since time.Time) (time.Time, error) {
	var attempt authdomain.RateLimitAttempt
	err := r.db.Where("client_id = ? AND endpoint = ? AND timestamp >= ?", clientID, endpoint, since.UnixMilli()).
		Order("timestamp asc").
		First(&attempt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return time.Time{}, nil
		}
		return time.Time{}, err
	}
	return time.UnixMilli(attempt.Timestamp), nil
}

func (r *attemptRepository) DeleteBefore(clientID, endpoint string, cutoff time.Time) error {
	return r.db.Where("client_id = ? AND endpoint = ? AND timestamp < ?", clientID, endpoint, cutoff.UnixMilli()).
		Delete(&authdomain.RateLimitAttempt{}).Error
}

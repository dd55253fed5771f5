package domain

// RateLimitAttempt is one logged request against a rate-limited endpoint.
// The sliding window for a (client, endpoint) pair is the set of attempts
// with Timestamp >= now - window; older rows are pruned lazily on the next
// check for the same pair.
type RateLimitAttempt struct {
	ID        string `gorm:"primaryKey"`
	ClientID  string `gorm:"index:idx_attempt_key"`
	Endpoint  string `gorm:"index:idx_attempt_key"`
	Timestamp int64  `gorm:"index:idx_attempt_key"` // unix milliseconds
}

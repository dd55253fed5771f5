package ratelimit

import (
	"time"
)

// Endpoint names recognized by the limiter.
const (
	EndpointLogin  = "login"
	EndpointSignup = "signup"
)

// AttemptStore persists the attempt log backing the sliding window. The
// store is a constructor dependency so tests can inject doubles.
type AttemptStore interface {
	Record(clientID, endpoint string, ts time.Time) error
	CountSince(clientID, endpoint string, since time.Time) (int64, error)
	OldestSince(clientID, endpoint string, since time.Time) (time.Time, error)
	DeleteBefore(clientID, endpoint string, cutoff time.Time) error
}

// Policy configures the window for one endpoint.
type Policy struct {
	Window        time.Duration
	MaxRequests   int
	BlockDuration time.Duration // fallback retry hint when no attempt survives
}

// Result is the verdict for a single request.
type Result struct {
	Allowed    bool
	Remaining  int // -1 when unknown (degraded store)
	RetryAfter int // seconds; set only on denial
	Degraded   bool
}

// Limiter implements a sliding window over a discrete attempt log.
//
// The read-then-write sequence (count, then record) is not atomic: two
// simultaneous requests from the same client can both observe a count just
// under the limit and both be admitted, briefly exceeding MaxRequests. This
// approximation is accepted; the limiter is a brute-force deterrent, not an
// exact quota.
type Limiter struct {
	store    AttemptStore
	policies map[string]Policy
	now      func() time.Time
}

// NewLimiter creates a limiter over store with per-endpoint policies.
// Endpoints without a policy are never limited.
func NewLimiter(store AttemptStore, policies map[string]Policy) *Limiter {
	return &Limiter{
		store:    store,
		policies: policies,
		now:      time.Now,
	}
}

// Check prunes expired attempts, counts the surviving window and either
// records the attempt (allow) or computes a retry hint (deny).
//
// If the store errors the limiter fails OPEN: legitimate users are not
// locked out by infrastructure failure, and the Degraded flag lets the
// caller log the lost protection.
func (l *Limiter) Check(clientID, endpoint string) Result {
	policy, ok := l.policies[endpoint]
	if !ok {
		return Result{Allowed: true, Remaining: -1}
	}

	now := l.now()
	windowStart := now.Add(-policy.Window)

	if err := l.store.DeleteBefore(clientID, endpoint, windowStart); err != nil {
		return Result{Allowed: true, Remaining: -1, Degraded: true}
	}

	count, err := l.store.CountSince(clientID, endpoint, windowStart)
	if err != nil {
		return Result{Allowed: true, Remaining: -1, Degraded: true}
	}

	if count >= int64(policy.MaxRequests) {
		retryAfter := int(policy.BlockDuration / time.Second)
		if oldest, err := l.store.OldestSince(clientID, endpoint, windowStart); err == nil && !oldest.IsZero() {
			retryAfter = int(oldest.Add(policy.Window).Sub(now).Seconds())
		}
		if retryAfter < 1 {
			retryAfter = 1
		}
		return Result{Allowed: false, Remaining: 0, RetryAfter: retryAfter}
	}

	if err := l.store.Record(clientID, endpoint, now); err != nil {
		return Result{Allowed: true, Remaining: -1, Degraded: true}
	}

	return Result{Allowed: true, Remaining: policy.MaxRequests - int(count) - 1}
}

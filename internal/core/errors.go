package core

// Error codes surfaced by the session gateway for malformed frames.
// The core itself never fails: unknown rooms, unknown connections and
// duplicate joins all degrade to no-ops.
const (
	ErrCodeBadRequest     = "bad_request"
	ErrCodeInvalidMessage = "invalid_message"
	ErrCodeRateLimited    = "rate_limited"
)

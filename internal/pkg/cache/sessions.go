package cache

import "time"

const (
	processedSessionPrefix = "webhook:processed:"
	processedSessionTTL    = 24 * time.Hour
)

// MarkSessionProcessed records that a checkout session went through the
// pipeline. This is a fast-path hint for redeliveries only; the unique index
// on the transaction's session id stays the idempotency authority, so a cache
// miss or an unavailable cache is always safe.
func MarkSessionProcessed(sessionID string) error {
	return Set(processedSessionPrefix+sessionID, "1", processedSessionTTL)
}

// IsSessionProcessed reports whether a session was recently processed. Cache
// errors are reported as "unknown" (false) so callers fall through to the
// database.
func IsSessionProcessed(sessionID string) bool {
	val, err := Get(processedSessionPrefix + sessionID)
	if err != nil {
		return false
	}
	return val == "1"
}

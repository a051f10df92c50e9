package types

import (
	"time"

	"github.com/google/uuid"
)

// RequestID identifies one finalized parameter set in the ledger.
// UUIDv7 keeps ledger inserts time-ordered.
type RequestID string

// NewRequestID generates a UUIDv7 request identifier.
// Panics on clock regression (uuid.Must); acceptable for ID generation.
func NewRequestID() RequestID {
	return RequestID(uuid.Must(uuid.NewV7()).String())
}

// ParseRequestID validates and converts a string to RequestID.
func ParseRequestID(s string) (RequestID, error) {
	if _, err := uuid.Parse(s); err != nil {
		return "", err
	}
	return RequestID(s), nil
}

// RequestIDTime extracts the timestamp embedded in a UUIDv7 ID.
// Returns zero time for invalid UUIDs; caller should check IsZero().
func RequestIDTime(id RequestID) time.Time {
	u, err := uuid.Parse(string(id))
	if err != nil {
		return time.Time{}
	}
	sec, nsec := u.Time().UnixTime()
	return time.Unix(sec, nsec)
}

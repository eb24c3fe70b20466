package constants

import "time"

// RFC 3339 date-time format string.
// Use this format for all date-time serialization and communication with external systems.
const RFC3339DateTimeFormat = "2006-01-02T15:04:05Z07:00"

const (
	// DefaultRequestTimeout bounds a single HTTP request, store calls included.
	DefaultRequestTimeout = 30 * time.Second

	// DefaultNotificationTimeout bounds one confirmation email, detached from the request.
	DefaultNotificationTimeout = 20 * time.Second

	// DefaultSeenEmailTTL is how long the cache remembers an email that is already on the list.
	DefaultSeenEmailTTL = 24 * time.Hour
)

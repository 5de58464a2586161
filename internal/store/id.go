package store

import "github.com/google/uuid"

// newID mints an opaque player id, matching the original source's
// Uuid::new_v4() identifier scheme.
func newID() string {
	return uuid.New().String()
}

package task

import "github.com/google/uuid"

// NewSyncID generates a fresh, globally unique sync_id for a newly
// established pairing (title bootstrap, or creation of a new item on one
// side). sync_id is never reused once assigned.
func NewSyncID() string {
	return uuid.NewString()
}

package models

import "time"

// Notification is a single message queued for a user. Delivery is handled
// outside this service.
type Notification struct {
	ID          string            `json:"id"`
	RecipientID string            `json:"recipient_id"`
	Message     string            `json:"message"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

package models

import "time"

// Notification types.
const (
	NotificationExpiry = "expiry"
	NotificationStock  = "stock"
)

// Notification is a message shown on the notifications page.
type Notification struct {
	ID        int       `json:"id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	IsRead    bool      `json:"is_read"`
	Type      string    `json:"type"`
}

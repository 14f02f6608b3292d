package dto

// TestNotificationResponse acknowledges a manually triggered test notification.
type TestNotificationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

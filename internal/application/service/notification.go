package service

import (
	"context"
	"reminderd/internal/application/dto"
)

// NotificationService sends notifications on demand, outside the scheduler.
type NotificationService interface {
	// SendTestNotification pushes a test notification to the user's registered device.
	SendTestNotification(ctx context.Context, userID uint) (*dto.TestNotificationResponse, error)
}

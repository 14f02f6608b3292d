package service

import (
	"context"
	"errors"
	"fmt"
	"reminderd/internal/application/dto"
	"reminderd/internal/domain/constant"
	"reminderd/internal/domain/push"
	"reminderd/internal/domain/repository"
	appErrors "reminderd/internal/pkg/errors"
	"reminderd/internal/pkg/logger"
	"time"

	"gorm.io/gorm"
)

const (
	testNotificationTitle = "🎉 Test Notification"
	testNotificationSent  = "Test notification sent!"
)

type notificationService struct {
	userRepo   repository.UserRepository
	dispatcher push.Dispatcher
	timeout    time.Duration
	log        logger.Logger
}

// NewNotificationService creates a new instance of NotificationService implementation.
// timeout bounds the gateway call; 0 selects the default.
func NewNotificationService(userRepo repository.UserRepository, dispatcher push.Dispatcher, timeout time.Duration, log logger.Logger) NotificationService {
	if timeout <= 0 {
		timeout = constant.DefaultDispatchTimeout
	}
	return &notificationService{
		userRepo:   userRepo,
		dispatcher: dispatcher,
		timeout:    timeout,
		log:        log,
	}
}

// SendTestNotification pushes a test notification to the user.
func (s *notificationService) SendTestNotification(ctx context.Context, userID uint) (*dto.TestNotificationResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrUserNotFound
		}
		s.log.Error(fmt.Sprintf("Failed to find user %d", userID), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}

	token, ok := user.Token()
	if !ok {
		return nil, appErrors.ErrPushTokenMissing
	}

	dispatchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	res := s.dispatcher.Send(dispatchCtx, push.Message{
		To:    []string{token},
		Title: testNotificationTitle,
		Body:  fmt.Sprintf("Hello %s! This is a test notification.", user.Name),
		Data:  map[string]any{"type": constant.NotificationTypeTest.String()},
		Sound: defaultSound,
	})

	switch res.Status {
	case push.Delivered:
		s.log.Info(fmt.Sprintf("Test notification sent to user %d", userID))
		return &dto.TestNotificationResponse{Success: true, Message: testNotificationSent}, nil
	case push.Rejected:
		s.log.Warn(fmt.Sprintf("Test notification for user %d rejected: %v", userID, res.Err))
		return nil, fmt.Errorf("%w: %v", appErrors.ErrInvalidPushToken, res.Err)
	default:
		s.log.Error(fmt.Sprintf("Failed to send test notification to user %d", userID), res.Err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrPushGateway, res.Err)
	}
}

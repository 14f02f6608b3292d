package handler

import (
	"fmt"
	"net/http"
	"reminderd/internal/application/service"
	"reminderd/internal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// NotificationHandler serves the manual notification trigger.
type NotificationHandler struct {
	notificationService service.NotificationService
	log                 logger.Logger
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService service.NotificationService, log logger.Logger) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService, log: log}
}

// SendTest handles POST /reminders/test-notification/:userId.
func (h *NotificationHandler) SendTest(c echo.Context) error {
	userID, ok := parseID(c, "userId")
	if !ok {
		return badRequest(c, "invalid user id")
	}
	resp, err := h.notificationService.SendTestNotification(c.Request().Context(), userID)
	if err != nil {
		h.log.Warn(fmt.Sprintf("Test notification for user %d failed: %v", userID, err))
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

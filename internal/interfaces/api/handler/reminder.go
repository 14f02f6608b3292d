package handler

import (
	"fmt"
	"net/http"
	"reminderd/internal/application/dto"
	"reminderd/internal/application/service"
	"reminderd/internal/pkg/logger"
	"strconv"

	"github.com/labstack/echo/v4"
)

// ReminderHandler serves reminder CRUD.
type ReminderHandler struct {
	reminderService service.ReminderService
	log             logger.Logger
}

// NewReminderHandler creates a new ReminderHandler.
func NewReminderHandler(reminderService service.ReminderService, log logger.Logger) *ReminderHandler {
	return &ReminderHandler{reminderService: reminderService, log: log}
}

// Create handles POST /reminders.
func (h *ReminderHandler) Create(c echo.Context) error {
	var req dto.CreateReminderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	resp, err := h.reminderService.CreateReminder(c.Request().Context(), req)
	if err != nil {
		h.log.Warn(fmt.Sprintf("Create reminder failed: %v", err))
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, resp)
}

// Get handles GET /reminders/:id.
func (h *ReminderHandler) Get(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid reminder id")
	}
	resp, err := h.reminderService.GetReminder(c.Request().Context(), id)
	if err != nil {
		h.log.Warn(fmt.Sprintf("Get reminder %d failed: %v", id, err))
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// Update handles PUT /reminders/:id.
func (h *ReminderHandler) Update(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid reminder id")
	}
	var req dto.UpdateReminderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	resp, err := h.reminderService.UpdateReminder(c.Request().Context(), id, req)
	if err != nil {
		h.log.Warn(fmt.Sprintf("Update reminder %d failed: %v", id, err))
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// Complete handles PATCH /reminders/:id/complete.
func (h *ReminderHandler) Complete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid reminder id")
	}
	resp, err := h.reminderService.CompleteReminder(c.Request().Context(), id)
	if err != nil {
		h.log.Warn(fmt.Sprintf("Complete reminder %d failed: %v", id, err))
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// Delete handles DELETE /reminders/:id.
func (h *ReminderHandler) Delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid reminder id")
	}
	if err := h.reminderService.DeleteReminder(c.Request().Context(), id); err != nil {
		h.log.Warn(fmt.Sprintf("Delete reminder %d failed: %v", id, err))
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListByUser handles GET /users/:userId/reminders?completed=true|false.
func (h *ReminderHandler) ListByUser(c echo.Context) error {
	userID, ok := parseID(c, "userId")
	if !ok {
		return badRequest(c, "invalid user id")
	}
	var completed *bool
	if raw := c.QueryParam("completed"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return badRequest(c, "completed must be true or false")
		}
		completed = &v
	}
	resp, err := h.reminderService.ListReminders(c.Request().Context(), userID, completed)
	if err != nil {
		h.log.Warn(fmt.Sprintf("List reminders of user %d failed: %v", userID, err))
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// ListPending handles GET /users/:userId/reminders/pending.
func (h *ReminderHandler) ListPending(c echo.Context) error {
	userID, ok := parseID(c, "userId")
	if !ok {
		return badRequest(c, "invalid user id")
	}
	resp, err := h.reminderService.ListPendingReminders(c.Request().Context(), userID)
	if err != nil {
		h.log.Warn(fmt.Sprintf("List pending reminders of user %d failed: %v", userID, err))
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

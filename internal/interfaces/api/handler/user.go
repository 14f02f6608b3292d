package handler

import (
	"fmt"
	"net/http"
	"reminderd/internal/application/dto"
	"reminderd/internal/application/service"
	"reminderd/internal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// UserHandler serves user registration and push token updates.
type UserHandler struct {
	userService service.UserService
	log         logger.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService, log logger.Logger) *UserHandler {
	return &UserHandler{userService: userService, log: log}
}

// Create handles POST /users.
func (h *UserHandler) Create(c echo.Context) error {
	var req dto.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	resp, err := h.userService.CreateUser(c.Request().Context(), req)
	if err != nil {
		h.log.Warn(fmt.Sprintf("Create user failed: %v", err))
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, resp)
}

// Get handles GET /users/:userId.
func (h *UserHandler) Get(c echo.Context) error {
	id, ok := parseID(c, "userId")
	if !ok {
		return badRequest(c, "invalid user id")
	}
	resp, err := h.userService.GetUser(c.Request().Context(), id)
	if err != nil {
		h.log.Warn(fmt.Sprintf("Get user %d failed: %v", id, err))
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// RegisterPushToken handles PUT /users/:userId/push-token.
func (h *UserHandler) RegisterPushToken(c echo.Context) error {
	id, ok := parseID(c, "userId")
	if !ok {
		return badRequest(c, "invalid user id")
	}
	var req dto.RegisterPushTokenRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.userService.RegisterPushToken(c.Request().Context(), id, req); err != nil {
		h.log.Warn(fmt.Sprintf("Register push token for user %d failed: %v", id, err))
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

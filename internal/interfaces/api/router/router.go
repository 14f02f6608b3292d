package router

import (
	"fmt"
	"net/http"
	"reminderd/internal/interfaces/api/handler"
	"reminderd/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Config holds the dependencies for the router.
type Config struct {
	NotificationHandler *handler.NotificationHandler
	ReminderHandler     *handler.ReminderHandler
	UserHandler         *handler.UserHandler
	// MetricsHandler serves /metrics when set.
	MetricsHandler http.Handler
	Logger         logger.Logger
}

// NewRouter creates and configures a new Echo router.
func NewRouter(cfg *Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogHost:      true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			cfg.Logger.Info(fmt.Sprintf("REQUEST: method=%s, uri=%s, status=%d, latency=%s, req_id=%s",
				v.Method, v.URI, v.Status, v.Latency, v.RequestID,
			))
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		MaxAge:       300,
	}))

	// Routes
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	if cfg.MetricsHandler != nil {
		e.GET("/metrics", echo.WrapHandler(cfg.MetricsHandler))
	}

	reminders := e.Group("/reminders")
	reminders.POST("/test-notification/:userId", cfg.NotificationHandler.SendTest)
	reminders.POST("", cfg.ReminderHandler.Create)
	reminders.GET("/:id", cfg.ReminderHandler.Get)
	reminders.PUT("/:id", cfg.ReminderHandler.Update)
	reminders.PATCH("/:id/complete", cfg.ReminderHandler.Complete)
	reminders.DELETE("/:id", cfg.ReminderHandler.Delete)

	users := e.Group("/users")
	users.POST("", cfg.UserHandler.Create)
	users.GET("/:userId", cfg.UserHandler.Get)
	users.PUT("/:userId/push-token", cfg.UserHandler.RegisterPushToken)
	users.GET("/:userId/reminders", cfg.ReminderHandler.ListByUser)
	users.GET("/:userId/reminders/pending", cfg.ReminderHandler.ListPending)

	cfg.Logger.Info("Router initialized with routes.")
	return e
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	// Application Layer
	appService "reminderd/internal/application/service"

	// Infrastructure Layer
	"reminderd/internal/infrastructure/database/sqlite"
	"reminderd/internal/infrastructure/expo"
	lineClient "reminderd/internal/infrastructure/line"
	"reminderd/internal/infrastructure/metrics"
	"reminderd/internal/infrastructure/scheduler"

	// Interfaces Layer
	"reminderd/internal/interfaces/api/handler"
	"reminderd/internal/interfaces/api/router"

	// Packages
	"reminderd/internal/pkg/config"
	appLogger "reminderd/internal/pkg/logger"

	"gorm.io/gorm"
)

func gracefulShutdown(apiServer *http.Server, schedulerService appService.SchedulerService, db *gorm.DB, log appLogger.Logger, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Info("Shutting down gracefully, press Ctrl+C again to force")

	// Stop the scheduler first so that no tick writes after the database closes.
	log.Info("Stopping scheduler...")
	schedulerService.Stop()
	log.Info("Scheduler stopped.")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", err)
	}

	log.Info("Closing database connection...")
	if err := sqlite.CloseDB(db); err != nil {
		log.Error("Error closing database", err)
	} else {
		log.Info("Database connection closed.")
	}

	done <- true
}

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	appLog := appLogger.New(appLogger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	appLog.Info("Logger initialized.")

	// --- Infrastructure ---
	db, err := sqlite.NewDB(cfg.DBURL, cfg.DBLogLevel)
	if err != nil {
		appLog.Error("Failed to open database", err)
		os.Exit(1)
	}
	userRepo := sqlite.NewUserRepository(db)
	reminderRepo := sqlite.NewReminderRepository(db)
	appLog.Info("Database and repositories initialized.")

	var expoOpts []expo.Option
	if cfg.ExpoAccessToken != "" {
		expoOpts = append(expoOpts, expo.WithAccessToken(cfg.ExpoAccessToken))
	}
	dispatcher := expo.NewClient(cfg.ExpoPushURL, appLog, expoOpts...)

	recorder := metrics.New()
	cronScheduler := scheduler.NewScheduler(appLog)

	schedulerOpts := []appService.SchedulerOption{appService.WithMetrics(recorder)}
	if cfg.AlertsEnabled() {
		alerter, err := lineClient.NewClient(cfg.LineChannelSecret, cfg.LineChannelToken, cfg.LineAdminUserID, cfg.AlertRatePerMin, appLog)
		if err != nil {
			appLog.Error("Failed to create LINE alert client, operator alerts disabled", err)
		} else {
			schedulerOpts = append(schedulerOpts, appService.WithAlerter(alerter))
			appLog.Info("LINE operator alerts enabled.")
		}
	}

	// --- Application Services ---
	schedulerSvc := appService.NewSchedulerService(cronScheduler, reminderRepo, dispatcher, appService.SchedulerConfig{
		DueTickSpec:     cfg.DueTickSpec,
		CleanupSpec:     cfg.CleanupSpec,
		BatchSize:       cfg.DueBatchSize,
		DispatchTimeout: cfg.DispatchTimeout,
		MaxAttempts:     cfg.MaxDispatchAttempts,
	}, appLog, schedulerOpts...)
	userSvc := appService.NewUserService(userRepo, appLog)
	reminderSvc := appService.NewReminderService(reminderRepo, userRepo, appLog)
	notificationSvc := appService.NewNotificationService(userRepo, dispatcher, cfg.DispatchTimeout, appLog)
	appLog.Info("Application services initialized.")

	if err := schedulerSvc.Start(context.Background()); err != nil {
		appLog.Error("Failed to start scheduler", err)
		_ = sqlite.CloseDB(db)
		os.Exit(1)
	}

	// --- Router ---
	echoRouter := router.NewRouter(&router.Config{
		NotificationHandler: handler.NewNotificationHandler(notificationSvc, appLog),
		ReminderHandler:     handler.NewReminderHandler(reminderSvc, appLog),
		UserHandler:         handler.NewUserHandler(userSvc, appLog),
		MetricsHandler:      recorder.Handler(),
		Logger:              appLog,
	})

	// --- HTTP Server ---
	apiServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      echoRouter,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, schedulerSvc, db, appLog, done)

	appLog.Info(fmt.Sprintf("Server starting on port %d", cfg.Port))
	if err := apiServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		appLog.Error("HTTP server ListenAndServe error", err)
		schedulerSvc.Stop()
		_ = sqlite.CloseDB(db)
		os.Exit(1)
	}

	<-done
	appLog.Info("Graceful shutdown complete.")
}

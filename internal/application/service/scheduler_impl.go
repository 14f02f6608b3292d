package service

import (
	"context"
	"fmt"
	"reminderd/internal/domain/constant"
	"reminderd/internal/domain/entity"
	"reminderd/internal/domain/push"
	"reminderd/internal/domain/repository"
	appErrors "reminderd/internal/pkg/errors"
	"reminderd/internal/pkg/logger"
	"sync"
	"time"
)

const (
	reminderTitlePrefix = "🔔 "
	reminderFallback    = "You have a reminder!"
	defaultSound        = "default"
)

type schedulerService struct {
	runner       JobRunner
	reminderRepo repository.ReminderRepository
	dispatcher   push.Dispatcher
	alerter      Alerter
	metrics      SchedulerMetrics
	cfg          SchedulerConfig
	now          func() time.Time
	log          logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
}

// SchedulerOption customises a SchedulerService.
type SchedulerOption func(*schedulerService)

// WithClock replaces time.Now, for deterministic ticks.
func WithClock(now func() time.Time) SchedulerOption {
	return func(s *schedulerService) { s.now = now }
}

// WithAlerter enables operator alerts on unhealthy ticks and failed cleanups.
func WithAlerter(a Alerter) SchedulerOption {
	return func(s *schedulerService) { s.alerter = a }
}

// WithMetrics records tick observations.
func WithMetrics(m SchedulerMetrics) SchedulerOption {
	return func(s *schedulerService) { s.metrics = m }
}

// NewSchedulerService creates a new instance of SchedulerService implementation.
func NewSchedulerService(
	runner JobRunner,
	reminderRepo repository.ReminderRepository,
	dispatcher push.Dispatcher,
	cfg SchedulerConfig,
	log logger.Logger,
	opts ...SchedulerOption,
) SchedulerService {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = constant.DefaultDueBatchSize
	}
	if cfg.DispatchTimeout <= 0 {
		cfg.DispatchTimeout = constant.DefaultDispatchTimeout
	}
	s := &schedulerService{
		runner:       runner,
		reminderRepo: reminderRepo,
		dispatcher:   dispatcher,
		metrics:      nopMetrics{},
		cfg:          cfg,
		now:          time.Now,
		log:          log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start registers the due tick and the cleanup with the runner and starts it.
func (s *schedulerService) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	if err := s.runner.AddJob(JobDueTick, s.cfg.DueTickSpec, func() { s.RunDueTick(runCtx) }); err != nil {
		cancel()
		return fmt.Errorf("%w: %v", appErrors.ErrScheduling, err)
	}
	if err := s.runner.AddJob(JobCleanup, s.cfg.CleanupSpec, func() { s.RunCleanup(runCtx) }); err != nil {
		cancel()
		return fmt.Errorf("%w: %v", appErrors.ErrScheduling, err)
	}
	s.runner.Start()
	s.cancel = cancel
	s.log.Info(fmt.Sprintf("Scheduler started (due tick %q, batch %d, cleanup %q)", s.cfg.DueTickSpec, s.cfg.BatchSize, s.cfg.CleanupSpec))
	return nil
}

// Stop cancels in-flight dispatches and stops the runner.
func (s *schedulerService) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	s.runner.Stop()
}

// RunDueTick fetches one batch of due reminders and notifies their owners.
func (s *schedulerService) RunDueTick(ctx context.Context) TickReport {
	started := time.Now()
	now := s.now()
	report := TickReport{StartedAt: now}
	defer func() {
		s.metrics.ObserveTick(JobDueTick, time.Since(started))
		s.recordOutcomes(report)
	}()

	s.log.Debug("Checking due reminders...")
	reminders, err := s.reminderRepo.FindDue(ctx, now, s.cfg.BatchSize)
	if err != nil {
		s.log.Error("Failed to fetch due reminders", err)
		report.StoreErrors++
		s.alert(ctx, fmt.Sprintf("Due reminder tick could not read the store: %v", err))
		return report
	}
	report.Fetched = len(reminders)
	if len(reminders) == 0 {
		s.log.Debug("No due reminders found")
		return report
	}

	s.log.Info(fmt.Sprintf("Found %d due reminders", len(reminders)))
	for _, r := range reminders {
		if ctx.Err() != nil {
			s.log.Warn(fmt.Sprintf("Due tick interrupted, %d reminders left for the next tick", report.Fetched-report.processed()))
			break
		}
		report.add(s.processReminder(ctx, r))
	}

	s.log.Info(fmt.Sprintf("Due tick finished: delivered=%d suppressed=%d rejected=%d failed=%d abandoned=%d store_errors=%d interrupted=%d",
		report.Delivered, report.Suppressed, report.Rejected, report.Failed, report.Abandoned, report.StoreErrors, report.Interrupted))
	if report.Unhealthy() {
		s.alert(ctx, fmt.Sprintf("Due reminder tick: %d failed, %d abandoned, %d store errors out of %d",
			report.Failed, report.Abandoned, report.StoreErrors, report.Fetched))
	}
	return report
}

func (r TickReport) processed() int {
	return r.Delivered + r.Suppressed + r.Rejected + r.Failed + r.Abandoned + r.StoreErrors + r.Interrupted
}

// processReminder resolves a single due reminder. Store writes run on a
// context detached from cancellation so that a confirmed dispatch is always recorded.
func (s *schedulerService) processReminder(ctx context.Context, r *entity.Reminder) Outcome {
	writeCtx := context.WithoutCancel(ctx)

	token, ok := r.Owner.Token()
	if !ok {
		s.log.Warn(fmt.Sprintf("User %d has no push token, suppressing reminder %d", r.UserID, r.ID))
		return s.markNotified(writeCtx, r.ID, OutcomeSuppressed)
	}

	dispatchCtx, cancel := context.WithTimeout(ctx, s.cfg.DispatchTimeout)
	res := s.dispatcher.Send(dispatchCtx, buildReminderMessage(r, token))
	cancel()
	s.metrics.IncDispatch(res.Status.String())

	switch res.Status {
	case push.Delivered:
		out := s.markNotified(writeCtx, r.ID, OutcomeDelivered)
		if out == OutcomeDelivered {
			s.log.Info(fmt.Sprintf("Notification sent for reminder %d - %s", r.ID, r.Title))
		}
		return out
	case push.Rejected:
		s.log.Warn(fmt.Sprintf("Push token of user %d rejected, suppressing reminder %d: %v", r.UserID, r.ID, res.Err))
		return s.markNotified(writeCtx, r.ID, OutcomeRejected)
	default:
		if ctx.Err() != nil {
			s.log.Warn(fmt.Sprintf("Dispatch of reminder %d interrupted by shutdown, leaving it due: %v", r.ID, res.Err))
			return OutcomeInterrupted
		}
		s.log.Error(fmt.Sprintf("Failed to dispatch reminder %d, leaving it due for the next tick", r.ID), res.Err)
		return s.recordFailure(writeCtx, r.ID)
	}
}

func (s *schedulerService) markNotified(ctx context.Context, id uint, ok Outcome) Outcome {
	if err := s.reminderRepo.MarkNotified(ctx, id); err != nil {
		s.log.Error(fmt.Sprintf("Failed to mark reminder %d notified", id), err)
		return OutcomeStoreError
	}
	return ok
}

func (s *schedulerService) recordFailure(ctx context.Context, id uint) Outcome {
	attempts, err := s.reminderRepo.RecordFailedAttempt(ctx, id)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to record dispatch attempt for reminder %d", id), err)
		return OutcomeFailed
	}
	if s.cfg.MaxAttempts > 0 && attempts >= s.cfg.MaxAttempts {
		s.log.Warn(fmt.Sprintf("Reminder %d failed %d dispatch attempts, abandoning", id, attempts))
		return s.markNotified(ctx, id, OutcomeAbandoned)
	}
	return OutcomeFailed
}

// RunCleanup deletes completed reminders whose trigger time is older than the retention window.
func (s *schedulerService) RunCleanup(ctx context.Context) CleanupReport {
	started := time.Now()
	report := CleanupReport{Cutoff: constant.PurgeCutoff(s.now())}
	defer func() { s.metrics.ObserveTick(JobCleanup, time.Since(started)) }()

	s.log.Info(fmt.Sprintf("Cleaning up completed reminders triggered before %s", report.Cutoff.Format(time.RFC3339)))
	n, err := s.reminderRepo.DeleteCompletedBefore(ctx, report.Cutoff)
	if err != nil {
		s.log.Error("Failed to clean up old reminders", err)
		report.Err = fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
		s.alert(ctx, fmt.Sprintf("Reminder cleanup failed: %v", err))
		return report
	}
	report.Deleted = n
	s.metrics.AddPurged(n)
	s.log.Info(fmt.Sprintf("%d old reminders removed", n))
	return report
}

func (s *schedulerService) recordOutcomes(r TickReport) {
	s.metrics.AddProcessed(string(OutcomeDelivered), r.Delivered)
	s.metrics.AddProcessed(string(OutcomeSuppressed), r.Suppressed)
	s.metrics.AddProcessed(string(OutcomeRejected), r.Rejected)
	s.metrics.AddProcessed(string(OutcomeFailed), r.Failed)
	s.metrics.AddProcessed(string(OutcomeAbandoned), r.Abandoned)
	s.metrics.AddProcessed(string(OutcomeStoreError), r.StoreErrors)
	s.metrics.AddProcessed(string(OutcomeInterrupted), r.Interrupted)
}

func (s *schedulerService) alert(ctx context.Context, text string) {
	if s.alerter == nil {
		return
	}
	if err := s.alerter.Alert(context.WithoutCancel(ctx), text); err != nil {
		s.log.Warn(fmt.Sprintf("Operator alert not sent: %v", err))
	}
}

// buildReminderMessage renders a due reminder into a push message.
func buildReminderMessage(r *entity.Reminder, token string) push.Message {
	body := r.DescriptionText()
	if body == "" {
		body = reminderFallback
	}
	if r.Place != nil {
		body = fmt.Sprintf("%s - %s", r.Place.Name, r.Place.City)
		if d := r.DescriptionText(); d != "" {
			body += "\n" + d
		}
	}

	data := map[string]any{
		"reminderId": r.ID,
		"type":       constant.NotificationTypeReminder.String(),
	}
	if r.PlaceID != nil {
		data["placeId"] = *r.PlaceID
	}

	return push.Message{
		To:    []string{token},
		Title: reminderTitlePrefix + r.Title,
		Body:  body,
		Data:  data,
		Sound: defaultSound,
	}
}

type nopMetrics struct{}

func (nopMetrics) ObserveTick(string, time.Duration) {}
func (nopMetrics) AddProcessed(string, int)          {}
func (nopMetrics) AddPurged(int64)                   {}
func (nopMetrics) IncDispatch(string)                {}

package service

import (
	"context"
	"time"
)

// Job names registered with the JobRunner.
const (
	JobDueTick = "due_tick"
	JobCleanup = "cleanup"
)

// SchedulerService owns the two recurring tasks: the due-reminder tick and the
// retention cleanup.
type SchedulerService interface {
	// Start registers both tasks with the runner and starts it.
	Start(ctx context.Context) error
	// Stop cancels in-flight dispatches and stops the runner, waiting for running jobs.
	Stop()
	// RunDueTick performs one due-reminder tick. It never returns an error:
	// every failure is logged and counted in the report.
	RunDueTick(ctx context.Context) TickReport
	// RunCleanup deletes completed reminders past the retention window.
	RunCleanup(ctx context.Context) CleanupReport
}

// JobRunner is the recurring-task primitive. The cron-backed implementation
// runs everything in-process; a lock-backed one can be swapped in for
// multi-instance deployments without touching the tick logic.
type JobRunner interface {
	AddJob(name, spec string, cmd func()) error
	Start()
	Stop()
}

// Alerter delivers short operator alerts.
type Alerter interface {
	Alert(ctx context.Context, text string) error
}

// SchedulerMetrics receives tick observations.
type SchedulerMetrics interface {
	ObserveTick(job string, d time.Duration)
	AddProcessed(outcome string, n int)
	AddPurged(n int64)
	IncDispatch(status string)
}

// Outcome is what happened to one reminder during a tick.
type Outcome string

const (
	OutcomeDelivered  Outcome = "delivered"
	OutcomeSuppressed Outcome = "suppressed"
	OutcomeRejected   Outcome = "rejected"
	OutcomeFailed     Outcome = "failed"
	OutcomeAbandoned  Outcome = "abandoned"
	OutcomeStoreError Outcome = "store_error"
	// OutcomeInterrupted means the dispatch was cut short by shutdown. The
	// reminder is left as it was and is retried on the next run.
	OutcomeInterrupted Outcome = "interrupted"
)

// TickReport summarises one due tick.
type TickReport struct {
	StartedAt   time.Time
	Fetched     int
	Delivered   int
	Suppressed  int
	Rejected    int
	Failed      int
	Abandoned   int
	StoreErrors int
	Interrupted int
}

func (r *TickReport) add(o Outcome) {
	switch o {
	case OutcomeDelivered:
		r.Delivered++
	case OutcomeSuppressed:
		r.Suppressed++
	case OutcomeRejected:
		r.Rejected++
	case OutcomeFailed:
		r.Failed++
	case OutcomeAbandoned:
		r.Abandoned++
	case OutcomeStoreError:
		r.StoreErrors++
	case OutcomeInterrupted:
		r.Interrupted++
	}
}

// Unhealthy reports whether anything in the tick needs operator attention.
func (r TickReport) Unhealthy() bool {
	return r.Failed+r.Abandoned+r.StoreErrors > 0
}

// CleanupReport summarises one retention cleanup.
type CleanupReport struct {
	Cutoff  time.Time
	Deleted int64
	Err     error
}

// SchedulerConfig holds the tunables of the scheduler.
type SchedulerConfig struct {
	DueTickSpec     string
	CleanupSpec     string
	BatchSize       int
	DispatchTimeout time.Duration
	// MaxAttempts bounds transport failures per reminder. 0 retries forever.
	MaxAttempts int
}

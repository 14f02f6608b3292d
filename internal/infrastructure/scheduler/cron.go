package scheduler

import (
	"fmt"
	"reminderd/internal/pkg/logger"
	"sync"

	"github.com/robfig/cron/v3"
)

// Scheduler runs named recurring jobs on a cron clock.
// Jobs never overlap with themselves: a run that is still in progress when the
// next one is due causes that next run to be skipped.
type Scheduler struct {
	cron    *cron.Cron
	log     logger.Logger
	mu      sync.Mutex // To protect access to job management
	entries map[string]cron.EntryID
	started bool
}

// NewScheduler creates a cron scheduler with seconds precision. It does not start it.
func NewScheduler(log logger.Logger) *Scheduler {
	cl := logger.CronAdapter(log)
	c := cron.New(
		cron.WithSeconds(),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	return &Scheduler{
		cron:    c,
		log:     log,
		entries: make(map[string]cron.EntryID),
	}
}

// AddJob registers cmd under name. spec follows the cron format with seconds
// (e.g. "0 30 * * * *") or a descriptor such as "@every 1m".
// Registering an existing name replaces the previous job.
func (s *Scheduler) AddJob(name, spec string, cmd func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.cron.AddFunc(spec, cmd)
	if err != nil {
		return fmt.Errorf("failed to add cron job %s (%s): %w", name, spec, err)
	}
	if prev, ok := s.entries[name]; ok {
		s.cron.Remove(prev)
	}
	s.entries[name] = id
	s.log.Info(fmt.Sprintf("Added cron job %s with ID %d, spec: %s", name, id, spec))
	return nil
}

// RemoveJob removes the job registered under name, if any.
func (s *Scheduler) RemoveJob(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.entries[name]
	if !ok {
		return
	}
	s.cron.Remove(id)
	delete(s.entries, name)
	s.log.Info(fmt.Sprintf("Removed cron job %s with ID %d", name, id))
}

// Start starts the cron loop in its own goroutine. Calling Start twice is a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return
	}
	s.cron.Start()
	s.started = true
	s.log.Info("Cron scheduler started.")
}

// Stop stops the cron scheduler and waits for running jobs to complete.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	ctx := s.cron.Stop()
	s.mu.Unlock()

	<-ctx.Done() // Wait for running jobs to complete
	s.log.Info("Cron scheduler stopped.")
}

// GetEntries returns the list of scheduled entries. Useful for debugging.
func (s *Scheduler) GetEntries() []cron.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cron.Entries()
}

package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"reminderd/internal/domain/entity"
	"reminderd/internal/domain/push"
	"reminderd/internal/domain/repository"
	"reminderd/internal/infrastructure/database/sqlite"
	"reminderd/internal/pkg/logger"

	"gorm.io/gorm"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

type testStore struct {
	db        *gorm.DB
	reminders repository.ReminderRepository
	users     repository.UserRepository
}

func newTestStore(t *testing.T) *testStore {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := sqlite.NewDB(fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", name), "silent")
	if err != nil {
		t.Fatalf("NewDB() error: %v", err)
	}
	t.Cleanup(func() { _ = sqlite.CloseDB(db) })
	return &testStore{
		db:        db,
		reminders: sqlite.NewReminderRepository(db),
		users:     sqlite.NewUserRepository(db),
	}
}

func (s *testStore) user(t *testing.T, name string, token *string) *entity.User {
	t.Helper()
	u := &entity.User{Name: name, PushToken: token}
	if err := s.users.Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func (s *testStore) place(t *testing.T, name, city string) *entity.Place {
	t.Helper()
	p := &entity.Place{Name: name, City: city}
	if err := s.db.Create(p).Error; err != nil {
		t.Fatalf("create place: %v", err)
	}
	return p
}

func (s *testStore) reminder(t *testing.T, r *entity.Reminder) *entity.Reminder {
	t.Helper()
	if r.Title == "" {
		r.Title = "Water the plants"
	}
	if _, err := s.reminders.Create(context.Background(), r); err != nil {
		t.Fatalf("create reminder: %v", err)
	}
	return r
}

func (s *testStore) reload(t *testing.T, id uint) *entity.Reminder {
	t.Helper()
	r, err := s.reminders.FindByID(context.Background(), id)
	if err != nil {
		t.Fatalf("FindByID(%d): %v", id, err)
	}
	return r
}

// fakeDispatcher records every message and answers with sendFn (Delivered when nil).
type fakeDispatcher struct {
	mu     sync.Mutex
	sendFn func(ctx context.Context, msg push.Message) push.Result
	sent   []push.Message
}

func (f *fakeDispatcher) Send(ctx context.Context, msg push.Message) push.Result {
	f.mu.Lock()
	f.sent = append(f.sent, msg)
	fn := f.sendFn
	f.mu.Unlock()
	if fn != nil {
		return fn(ctx, msg)
	}
	return push.Result{Status: push.Delivered, Sent: 1}
}

func (f *fakeDispatcher) SendBatch(ctx context.Context, msgs []push.Message) push.Result {
	for _, m := range msgs {
		if res := f.Send(ctx, m); !res.OK() {
			return res
		}
	}
	return push.Result{Status: push.Delivered, Sent: len(msgs)}
}

func (f *fakeDispatcher) calls() []push.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]push.Message(nil), f.sent...)
}

type fakeRunner struct {
	jobs    map[string]string
	cmds    map[string]func()
	addErr  error
	started bool
	stopped bool
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{jobs: map[string]string{}, cmds: map[string]func(){}}
}

func (r *fakeRunner) AddJob(name, spec string, cmd func()) error {
	if r.addErr != nil {
		return r.addErr
	}
	r.jobs[name] = spec
	r.cmds[name] = cmd
	return nil
}

func (r *fakeRunner) Start() { r.started = true }
func (r *fakeRunner) Stop()  { r.stopped = true }

type fakeAlerter struct {
	texts []string
}

func (a *fakeAlerter) Alert(_ context.Context, text string) error {
	a.texts = append(a.texts, text)
	return nil
}

// failingReminderRepo wraps a real repository and fails selected calls.
type failingReminderRepo struct {
	repository.ReminderRepository
	findDueErr error
	markErr    error
	deleteErr  error
}

func (r *failingReminderRepo) FindDue(ctx context.Context, now time.Time, limit int) ([]*entity.Reminder, error) {
	if r.findDueErr != nil {
		return nil, r.findDueErr
	}
	return r.ReminderRepository.FindDue(ctx, now, limit)
}

func (r *failingReminderRepo) MarkNotified(ctx context.Context, id uint) error {
	if r.markErr != nil {
		return r.markErr
	}
	return r.ReminderRepository.MarkNotified(ctx, id)
}

func (r *failingReminderRepo) DeleteCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if r.deleteErr != nil {
		return 0, r.deleteErr
	}
	return r.ReminderRepository.DeleteCompletedBefore(ctx, cutoff)
}

func newTestScheduler(repo repository.ReminderRepository, d push.Dispatcher, cfg SchedulerConfig, opts ...SchedulerOption) *schedulerService {
	opts = append([]SchedulerOption{WithClock(func() time.Time { return testNow })}, opts...)
	return NewSchedulerService(newFakeRunner(), repo, d, cfg, logger.Nop(), opts...).(*schedulerService)
}

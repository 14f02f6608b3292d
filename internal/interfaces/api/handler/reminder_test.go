package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"reminderd/internal/application/dto"
	"reminderd/internal/application/service"
	appErrors "reminderd/internal/pkg/errors"

	"github.com/labstack/echo/v4"
)

type recordingLogger struct {
	warns []string
}

func (l *recordingLogger) Error(msg string, _ error) {}
func (l *recordingLogger) Warn(msg string)           { l.warns = append(l.warns, msg) }
func (l *recordingLogger) Info(string)               {}
func (l *recordingLogger) Debug(string)              {}

// stubReminderService answers GetReminder with getFn; other methods are not used.
type stubReminderService struct {
	service.ReminderService
	getFn func(ctx context.Context, id uint) (*dto.ReminderResponse, error)
}

func (s *stubReminderService) GetReminder(ctx context.Context, id uint) (*dto.ReminderResponse, error) {
	return s.getFn(ctx, id)
}

func TestReminderHandlerLogsFailures(t *testing.T) {
	log := &recordingLogger{}
	h := NewReminderHandler(&stubReminderService{getFn: func(context.Context, uint) (*dto.ReminderResponse, error) {
		return nil, appErrors.ErrReminderNotFound
	}}, log)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/reminders/12", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("12")

	if err := h.Get(c); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if len(log.warns) != 1 || !strings.Contains(log.warns[0], "reminder 12") {
		t.Fatalf("warnings = %v", log.warns)
	}
}

func TestReminderHandlerRejectsBadID(t *testing.T) {
	log := &recordingLogger{}
	h := NewReminderHandler(&stubReminderService{}, log)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/reminders/x", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("x")

	if err := h.Get(c); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if len(log.warns) != 0 {
		t.Fatalf("warnings = %v, want none", log.warns)
	}
}

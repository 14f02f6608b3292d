package service

import (
	"context"
	"errors"
	"testing"

	"reminderd/internal/domain/push"
	appErrors "reminderd/internal/pkg/errors"
	"reminderd/internal/pkg/logger"
)

func TestSendTestNotification(t *testing.T) {
	store := newTestStore(t)
	u := store.user(t, "Ana", strPtr(validToken))
	d := &fakeDispatcher{}
	svc := NewNotificationService(store.users, d, 0, logger.Nop())

	resp, err := svc.SendTestNotification(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("SendTestNotification: %v", err)
	}
	if !resp.Success || resp.Message != "Test notification sent!" {
		t.Fatalf("response = %+v", resp)
	}
	calls := d.calls()
	if len(calls) != 1 {
		t.Fatalf("dispatch calls = %d, want 1", len(calls))
	}
	msg := calls[0]
	if msg.Title != "🎉 Test Notification" {
		t.Fatalf("Title = %q", msg.Title)
	}
	if msg.Body != "Hello Ana! This is a test notification." {
		t.Fatalf("Body = %q", msg.Body)
	}
	if msg.Data["type"] != "test" || len(msg.To) != 1 || msg.To[0] != validToken {
		t.Fatalf("message = %+v", msg)
	}
}

func TestSendTestNotificationErrors(t *testing.T) {
	store := newTestStore(t)
	withToken := store.user(t, "Ana", strPtr(validToken))
	noToken := store.user(t, "Bruno", nil)

	tests := []struct {
		name      string
		userID    uint
		result    push.Result
		wantErr   error
		wantCalls int
	}{
		{name: "unknown user", userID: 9999, wantErr: appErrors.ErrUserNotFound},
		{name: "no token", userID: noToken.ID, wantErr: appErrors.ErrPushTokenMissing},
		{
			name:      "rejected token",
			userID:    withToken.ID,
			result:    push.Result{Status: push.Rejected, Err: errors.New("invalid token")},
			wantErr:   appErrors.ErrInvalidPushToken,
			wantCalls: 1,
		},
		{
			name:      "gateway failure",
			userID:    withToken.ID,
			result:    push.Result{Status: push.TransportFailed, Err: errors.New("status 500")},
			wantErr:   appErrors.ErrPushGateway,
			wantCalls: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &fakeDispatcher{sendFn: func(context.Context, push.Message) push.Result { return tt.result }}
			svc := NewNotificationService(store.users, d, 0, logger.Nop())

			resp, err := svc.SendTestNotification(context.Background(), tt.userID)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if resp != nil {
				t.Fatalf("response = %+v, want nil", resp)
			}
			if n := len(d.calls()); n != tt.wantCalls {
				t.Fatalf("dispatch calls = %d, want %d", n, tt.wantCalls)
			}
		})
	}
}

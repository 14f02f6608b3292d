package line

import (
	"context"
	"errors"
	"fmt"
	"reminderd/internal/pkg/logger"
	"time"

	"github.com/line/line-bot-sdk-go/v7/linebot"
	"golang.org/x/time/rate"
)

// ErrThrottled is returned when an alert is dropped by the rate limiter.
var ErrThrottled = errors.New("alert throttled")

// pusher is the subset of linebot.Client used for alerts.
type pusher interface {
	PushMessage(to string, messages ...linebot.SendingMessage) *linebot.PushMessageCall
}

// sendFunc delivers one text message to the admin user.
type sendFunc func(ctx context.Context, to, text string) error

// Client pushes operator alerts to a single LINE admin user.
type Client struct {
	adminUserID string
	send        sendFunc
	limiter     *rate.Limiter
	log         logger.Logger
}

// NewClient creates a LINE alert client. ratePerMin bounds how many alerts
// can be pushed per minute; extra alerts are dropped with a log line.
func NewClient(channelSecret, channelToken, adminUserID string, ratePerMin int, log logger.Logger) (*Client, error) {
	if channelSecret == "" || channelToken == "" || adminUserID == "" {
		return nil, errors.New("CHANNEL_SECRET, CHANNEL_ACCESS_TOKEN and MY_USER_ID must be set")
	}
	bot, err := linebot.New(channelSecret, channelToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create LINE Bot client: %w", err)
	}
	log.Info("Successfully created LINE Bot client for operator alerts.")
	return newClient(adminUserID, pushText(bot), ratePerMin, log), nil
}

func newClient(adminUserID string, send sendFunc, ratePerMin int, log logger.Logger) *Client {
	if ratePerMin <= 0 {
		ratePerMin = 1
	}
	return &Client{
		adminUserID: adminUserID,
		send:        send,
		limiter:     rate.NewLimiter(rate.Every(time.Minute/time.Duration(ratePerMin)), ratePerMin),
		log:         log,
	}
}

func pushText(bot pusher) sendFunc {
	return func(ctx context.Context, to, text string) error {
		_, err := bot.PushMessage(to, linebot.NewTextMessage(text)).WithContext(ctx).Do()
		return err
	}
}

// Alert pushes text to the admin user unless the rate limit is exhausted.
func (c *Client) Alert(ctx context.Context, text string) error {
	if !c.limiter.Allow() {
		c.log.Debug(fmt.Sprintf("Operator alert throttled: %s", text))
		return ErrThrottled
	}
	if err := c.send(ctx, c.adminUserID, text); err != nil {
		return fmt.Errorf("push alert to %s: %w", c.adminUserID, err)
	}
	c.log.Debug("Successfully sent operator alert.")
	return nil
}

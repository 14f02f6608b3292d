package expo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reminderd/internal/domain/push"
	"reminderd/internal/pkg/logger"
	"strings"
	"time"
)

// DefaultPushURL is the Expo push API endpoint.
const DefaultPushURL = "https://exp.host/--/api/v2/push/send"

const (
	defaultSound     = "default"
	defaultChannelID = "default"
	maxErrorBody     = 2 << 10
)

// Client sends push notifications to the Expo push gateway.
type Client struct {
	httpClient  *http.Client
	pushURL     string
	accessToken string
	log         logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for gateway calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithAccessToken sets the bearer token sent when push security is enabled.
func WithAccessToken(token string) Option {
	return func(c *Client) { c.accessToken = token }
}

// NewClient creates an Expo push client posting to pushURL.
func NewClient(pushURL string, log logger.Logger, opts ...Option) *Client {
	if pushURL == "" {
		pushURL = DefaultPushURL
	}
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		pushURL:    pushURL,
		log:        log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// wireMessage is the JSON envelope of one Expo push message.
type wireMessage struct {
	To        any            `json:"to"`
	Title     string         `json:"title"`
	Body      string         `json:"body"`
	Data      map[string]any `json:"data"`
	Sound     string         `json:"sound,omitempty"`
	Badge     *int           `json:"badge,omitempty"`
	ChannelID string         `json:"channelId,omitempty"`
}

func toWire(m push.Message) wireMessage {
	w := wireMessage{
		Title:     m.Title,
		Body:      m.Body,
		Data:      m.Data,
		Sound:     m.Sound,
		Badge:     m.Badge,
		ChannelID: m.ChannelID,
	}
	if len(m.To) == 1 {
		w.To = m.To[0]
	} else {
		w.To = m.To
	}
	if w.Data == nil {
		w.Data = map[string]any{}
	}
	if w.Sound == "" {
		w.Sound = defaultSound
	}
	if w.ChannelID == "" {
		w.ChannelID = defaultChannelID
	}
	return w
}

// Send validates the message tokens and posts it to the gateway.
func (c *Client) Send(ctx context.Context, msg push.Message) push.Result {
	if !push.ValidTokens(msg.To) {
		c.log.Warn(fmt.Sprintf("Invalid push token %v, notification not sent", msg.To))
		return push.Result{Status: push.Rejected, Err: fmt.Errorf("invalid push token %v", msg.To)}
	}

	if err := c.post(ctx, toWire(msg)); err != nil {
		c.log.Error(fmt.Sprintf("Failed to send push notification %q", msg.Title), err)
		return push.Result{Status: push.TransportFailed, Err: err}
	}
	c.log.Debug(fmt.Sprintf("Push notification %q sent to %d token(s)", msg.Title, len(msg.To)))
	return push.Result{Status: push.Delivered, Sent: 1}
}

// SendBatch drops messages with invalid tokens and posts the rest in one request.
func (c *Client) SendBatch(ctx context.Context, msgs []push.Message) push.Result {
	valid := make([]wireMessage, 0, len(msgs))
	for _, m := range msgs {
		if push.ValidTokens(m.To) {
			valid = append(valid, toWire(m))
		}
	}
	if dropped := len(msgs) - len(valid); dropped > 0 {
		c.log.Warn(fmt.Sprintf("Dropped %d batch message(s) with invalid push tokens", dropped))
	}
	if len(valid) == 0 {
		c.log.Warn("No valid push tokens found for batch send")
		return push.Result{Status: push.Rejected, Err: errors.New("no valid push tokens in batch")}
	}

	if err := c.post(ctx, valid); err != nil {
		c.log.Error(fmt.Sprintf("Failed to send batch of %d push notifications", len(valid)), err)
		return push.Result{Status: push.TransportFailed, Err: err}
	}
	c.log.Info(fmt.Sprintf("%d push notifications sent in batch", len(valid)))
	return push.Result{Status: push.Delivered, Sent: len(valid)}
}

func (c *Client) post(ctx context.Context, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode push payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.pushURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("push gateway request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("push gateway returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

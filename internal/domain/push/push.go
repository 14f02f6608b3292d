// Package push holds the provider-neutral shape of a push notification and the
// typed outcome of handing one to a gateway.
package push

import (
	"context"
	"fmt"
	"strings"
)

// Recognised push token prefixes.
const (
	ExponentTokenPrefix = "ExponentPushToken["
	ExpoTokenPrefix     = "ExpoPushToken["
)

// Message is one logical notification request.
type Message struct {
	To        []string
	Title     string
	Body      string
	Data      map[string]any
	Sound     string
	Badge     *int
	ChannelID string
}

// Status is the resolved outcome of a dispatch call.
type Status int

const (
	// Delivered means the gateway accepted the request.
	Delivered Status = iota
	// Rejected means the request failed validation and no network call was made.
	Rejected
	// TransportFailed means the gateway call errored or answered non-2xx.
	TransportFailed
)

func (s Status) String() string {
	switch s {
	case Delivered:
		return "delivered"
	case Rejected:
		return "rejected"
	case TransportFailed:
		return "transport_failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result reports what a dispatch call did. Err is set for Rejected and TransportFailed.
type Result struct {
	Status Status
	// Sent is the number of messages included in the request that reached the gateway.
	Sent int
	Err  error
}

// OK reports whether the gateway accepted the request.
func (r Result) OK() bool {
	return r.Status == Delivered
}

// Dispatcher sends push messages. Implementations never panic and never
// return errors out of band: every outcome is carried by the Result.
type Dispatcher interface {
	Send(ctx context.Context, msg Message) Result
	SendBatch(ctx context.Context, msgs []Message) Result
}

// ValidToken reports whether token has the shape of a push provider token.
func ValidToken(token string) bool {
	return strings.HasPrefix(token, ExponentTokenPrefix) || strings.HasPrefix(token, ExpoTokenPrefix)
}

// ValidTokens reports whether every token is valid. An empty list is invalid.
func ValidTokens(tokens []string) bool {
	if len(tokens) == 0 {
		return false
	}
	for _, t := range tokens {
		if !ValidToken(t) {
			return false
		}
	}
	return true
}

package push

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	webpush "github.com/SherClockHolmes/webpush-go"
	json "github.com/goccy/go-json"

	"giftdrip/internal/providers"
	"giftdrip/internal/structures"
)

// Subscription is the transport-level view of a push subscription.
type Subscription struct {
	Endpoint string
	P256dh   string
	Auth     string
}

// Payload is the fixed notification body delivered to the endpoint.
type Payload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url"`
}

// Result classifies one delivery attempt. PermanentFailure means the
// endpoint reported the subscription as gone and the row should be
// discarded; any other failure is transient and worth retrying on the
// next cycle.
type Result struct {
	OK               bool
	StatusCode       int
	PermanentFailure bool
	Reason           string
}

type Sender interface {
	Send(ctx context.Context, sub Subscription, payload Payload) Result
	Configured() bool
}

const defaultTTL = time.Hour

// WebPushSender delivers notifications through the Web Push protocol
// with VAPID authentication. Missing VAPID keys make every Send a
// polite no-op instead of an error.
type WebPushSender struct {
	conf   *structures.Config
	logger providers.Logger
	ttl    int
}

func NewWebPushSender(conf *structures.Config, logger providers.Logger) Sender {
	ttl := conf.Push.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if !pushConfigured(conf) {
		logger.Warnf(providers.TypePush, "VAPID keys not configured, push delivery disabled")
	}
	return &WebPushSender{
		conf:   conf,
		logger: logger,
		ttl:    int(ttl.Seconds()),
	}
}

func pushConfigured(conf *structures.Config) bool {
	return conf.Push.VapidSubject != "" &&
		conf.Push.VapidPublicKey != "" &&
		conf.Push.VapidPrivateKey != ""
}

func (s *WebPushSender) Configured() bool {
	return pushConfigured(s.conf)
}

func (s *WebPushSender) Send(ctx context.Context, sub Subscription, payload Payload) Result {
	if !s.Configured() {
		return Result{Reason: "push VAPID keys are not configured"}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return Result{Reason: "marshal payload: " + err.Error()}
	}

	resp, err := webpush.SendNotificationWithContext(ctx, body, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}, &webpush.Options{
		Subscriber:      s.conf.Push.VapidSubject,
		VAPIDPublicKey:  s.conf.Push.VapidPublicKey,
		VAPIDPrivateKey: s.conf.Push.VapidPrivateKey,
		TTL:             s.ttl,
	})
	if err != nil {
		// Network error, bad subscription keys, context deadline:
		// all transient from the dispatcher's point of view.
		return Result{Reason: err.Error()}
	}
	defer resp.Body.Close()

	return classifyResponse(resp)
}

func classifyResponse(resp *http.Response) Result {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return Result{OK: true, StatusCode: resp.StatusCode, Reason: "sent"}
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return Result{
			StatusCode:       resp.StatusCode,
			PermanentFailure: true,
			Reason:           "subscription gone",
		}
	default:
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Result{
			StatusCode: resp.StatusCode,
			Reason:     strings.TrimSpace(resp.Status + " " + string(detail)),
		}
	}
}

// Package push delivers Web Push notifications to guest browsers.
package push

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"waitline/config"
	"waitline/internal/domain/entity"
	"waitline/internal/domain/service"
	"waitline/internal/errors"

	webpush "github.com/SherClockHolmes/webpush-go"
)

type webpushSender struct {
	subscriber      string
	vapidPublicKey  string
	vapidPrivateKey string
	ttlSeconds      int
}

// NewWebPushSender creates a Web Push sender using VAPID authentication.
func NewWebPushSender(cfg *config.Config) (service.PushSender, error) {
	if cfg.Push == nil || cfg.Push.VAPIDPublicKey == "" || cfg.Push.VAPIDPrivateKey == "" {
		return nil, errors.New("VAPID key pair must be provided")
	}

	ttl := cfg.Push.TTLSeconds
	if ttl <= 0 {
		ttl = 300
	}

	return &webpushSender{
		subscriber:      cfg.Push.Subscriber,
		vapidPublicKey:  cfg.Push.VAPIDPublicKey,
		vapidPrivateKey: cfg.Push.VAPIDPrivateKey,
		ttlSeconds:      ttl,
	}, nil
}

// Send delivers one message to one subscription endpoint.
func (s *webpushSender) Send(ctx context.Context, sub *entity.PushSubscription, msg *service.PushMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return errors.Wrap(err, "failed to marshal push payload")
	}

	resp, err := webpush.SendNotificationWithContext(ctx, payload, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}, &webpush.Options{
		Subscriber:      s.subscriber,
		VAPIDPublicKey:  s.vapidPublicKey,
		VAPIDPrivateKey: s.vapidPrivateKey,
		TTL:             s.ttlSeconds,
	})
	if err != nil {
		return errors.Wrap(err, "failed to send web push")
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	// Push services answer 201 on acceptance. 404/410 mean the browser
	// dropped the subscription.
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("push endpoint rejected delivery: status %d", resp.StatusCode)
	}

	return nil
}

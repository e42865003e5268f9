// Package service defines interfaces for infrastructure collaborators
// consumed by the use case layer.
package service

import (
	"context"

	"waitline/internal/domain/entity"
)

// PushMessage is the payload delivered to a guest's browser.
type PushMessage struct {
	Title              string            `json:"title"`
	Body               string            `json:"body"`
	Tag                string            `json:"tag,omitempty"`
	URL                string            `json:"url,omitempty"`
	RequireInteraction bool              `json:"requireInteraction,omitempty"`
	Data               map[string]string `json:"data,omitempty"`
}

// PushSender delivers one message to one Web Push endpoint. Delivery is
// best-effort; callers isolate per-endpoint failures and never let them block
// the queue action that triggered the send.
type PushSender interface {
	Send(ctx context.Context, sub *entity.PushSubscription, msg *PushMessage) error
}

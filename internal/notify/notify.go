// Package notify carries user-facing success/error messages to a sink.
// Notifications are fire-and-forget: no response value flows back into
// the core and a failed send never fails the triggering operation.
package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	KindSuccess = "success"
	KindError   = "error"
)

type Notification struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id,omitempty"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	At        time.Time `json:"at"`
}

func New(sessionID, kind, message string) Notification {
	return Notification{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Kind:      kind,
		Message:   message,
		At:        time.Now().UTC(),
	}
}

type Notifier interface {
	Notify(ctx context.Context, n Notification) error
	Close() error
}

package notify

import "context"

type NoopNotifier struct{}

func (NoopNotifier) Notify(ctx context.Context, n Notification) error {
	return nil
}

func (NoopNotifier) Close() error {
	return nil
}

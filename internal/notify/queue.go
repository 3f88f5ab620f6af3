package notify

import (
	"context"
	"log"
)

// Queue decouples the session flow from the notification sink: Notify
// enqueues without blocking and a background goroutine drains to the
// wrapped notifier. A full queue or a failed publish drops the
// notification; delivery is best effort.
type Queue struct {
	sink Notifier
	ch   chan Notification
}

func NewQueue(sink Notifier, size int) *Queue {
	if size <= 0 {
		size = 64
	}
	return &Queue{sink: sink, ch: make(chan Notification, size)}
}

func (q *Queue) Notify(ctx context.Context, n Notification) error {
	select {
	case q.ch <- n:
	default:
		log.Printf("notification queue full, dropping id=%s kind=%s", n.ID, n.Kind)
	}
	return nil
}

// Start drains the queue until the context is canceled.
func (q *Queue) Start(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case n := <-q.ch:
			if err := q.sink.Notify(ctx, n); err != nil {
				log.Printf("notify error id=%s kind=%s: %v", n.ID, n.Kind, err)
			}
		}
	}
}

func (q *Queue) Close() error {
	return q.sink.Close()
}

var _ Notifier = (*Queue)(nil)

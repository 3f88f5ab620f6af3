package nats

import (
	"context"
	"encoding/json"

	"github.com/nats-io/nats.go"

	"refuel-rescue/internal/notify"
)

type Publisher struct {
	nc      *nats.Conn
	subject string
}

func New(url, subject string) (*Publisher, error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, err
	}
	if subject == "" {
		subject = "refuel.notifications"
	}
	return &Publisher{nc: nc, subject: subject}, nil
}

func (p *Publisher) Notify(ctx context.Context, n notify.Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return err
	}
	return p.nc.Publish(p.subject, data)
}

func (p *Publisher) Close() error {
	if p.nc != nil {
		p.nc.Close()
	}
	return nil
}

var _ notify.Notifier = (*Publisher)(nil)

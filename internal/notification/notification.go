// Package notification publishes workflow events to a Redis channel.
// Delivery is best effort: a dead broker costs a log line, never the
// request that produced the event.
package notification

import (
	"context"
	"encoding/json"

	"hrportal/backend/internal/workflow"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type Publisher struct {
	client  *redis.Client
	channel string
	log     *logrus.Logger
}

func NewPublisher(client *redis.Client, channel string, log *logrus.Logger) *Publisher {
	return &Publisher{
		client:  client,
		channel: channel,
		log:     log,
	}
}

func (p *Publisher) Publish(ctx context.Context, event workflow.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		p.log.WithError(err).WithField("event", event.Name).Warn("marshaling event")
		return
	}

	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		p.log.WithError(err).WithFields(logrus.Fields{
			"event":      event.Name,
			"request_id": event.RequestID,
		}).Warn("publishing event")
	}
}

// NopPublisher drops events. Used where no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, event workflow.Event) {}

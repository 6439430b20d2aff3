// Package queue publishes the embedding.requested event a memory
// creation triggers, consumed by an external embedding worker
// that this core does not implement.
package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/midentifier"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mlog"
)

// EmbeddingRequested is the event payload published whenever a memory is
// created and needs its embedding computed.
type EmbeddingRequested struct {
	MemoryID midentifier.ID `json:"memoryId"`
	SpaceID  midentifier.ID `json:"spaceId"`
}

// ProducerRepository provides an interface for publishing embedding
// events.
type ProducerRepository interface {
	PublishEmbeddingRequested(ctx context.Context, event EmbeddingRequested) error
}

const embeddingRequestedRoutingKey = "embedding.requested"

// RabbitMQProducer is the production ProducerRepository implementation.
type RabbitMQProducer struct {
	Channel  *amqp.Channel
	Exchange string
	Logger   mlog.Logger
}

func (p *RabbitMQProducer) PublishEmbeddingRequested(ctx context.Context, event EmbeddingRequested) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling embedding.requested event: %w", err)
	}

	err = p.Channel.PublishWithContext(ctx, p.Exchange, embeddingRequestedRoutingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		p.Logger.Errorf("failed to publish embedding.requested for memory %s: %v", event.MemoryID, err)
		return fmt.Errorf("publishing embedding.requested: %w", err)
	}

	return nil
}

package eventpub

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rejot-dev/example-microservice/internal/dal/rabbitmq"
	"github.com/rejot-dev/example-microservice/internal/service/models/event"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
)

// EventPubRabbitMQRepository publishes mutation log events to the relay
// queue for downstream consumers.
type EventPubRabbitMQRepository struct {
	client *rabbitmq.Client
	queue  amqp.Queue
}

func NewEventPubRabbitMQRepository(client *rabbitmq.Client) *EventPubRabbitMQRepository {
	queueName := viper.GetString("rabbitmq.relay.queue")
	if queueName == "" {
		queueName = "accounts.events"
	}

	queue, err := client.DeclareQueue(rabbitmq.DeclareQueueConfig{
		Name:       queueName,
		Durable:    true,
		Exclusive:  false,
		AutoDelete: false,
	})
	if err != nil {
		panic(err)
	}

	return &EventPubRabbitMQRepository{
		client: client,
		queue:  queue,
	}
}

// Publish sends one event to the relay queue. Events are published one at a
// time; the caller relies on publish order matching append order.
func (r *EventPubRabbitMQRepository) Publish(ctx context.Context, e event.Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal event %d: %w", e.ID, err)
	}

	return r.client.Channel().Publish(
		"",
		r.queue.Name,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

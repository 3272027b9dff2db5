package commander

import (
	"context"
	"errors"
	"fmt"
)

//go:generate mockery --name RabbitMQPublisher --filename rabbitmqpublisher.go

// ErrNoRoutingKey is returned when sender has no routing key to publish to.
var ErrNoRoutingKey = errors.New("routing key not set")

// RabbitMQPublisher is RabbitMQ messages publisher.
type RabbitMQPublisher interface {
	Publish(context.Context, string, []byte) error
}

// RabbitMQSender sends RMQ messages to single routing key. It serves both check commands and monitor events.
type RabbitMQSender struct {
	publisher  RabbitMQPublisher
	routingKey string
}

// NewRabbitMQSender returns new RabbitMQSender using provided publisher for sending messages to provided routing key.
func NewRabbitMQSender(publisher RabbitMQPublisher, routingKey string) RabbitMQSender {
	return RabbitMQSender{
		publisher:  publisher,
		routingKey: routingKey,
	}
}

// Send sends message to RabbitMQSender's routing key.
func (s RabbitMQSender) Send(ctx context.Context, msg []byte) error {
	if s.routingKey == "" {
		return ErrNoRoutingKey
	}

	if err := s.publisher.Publish(ctx, s.routingKey, msg); err != nil {
		return fmt.Errorf("can't send message to %q: %w", s.routingKey, err)
	}

	return nil
}

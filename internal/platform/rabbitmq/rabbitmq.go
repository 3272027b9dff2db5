package rabbitmq

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// HandlerFunc is function which handles messages.
type HandlerFunc func(ctx context.Context, message []byte) error

// RabbitMQ consumes and publishes amqp messages.
type RabbitMQ struct {
	channel   *amqp.Channel
	exchange  string
	isRunning chan struct{}
}

// NewRabbitMQ returns new RabbitMQ.
func NewRabbitMQ(connection *amqp.Connection, exchange string) (*RabbitMQ, error) {
	channel, err := connection.Channel()
	if err != nil {
		return nil, fmt.Errorf("can't open channel: %w", err)
	}
	mq := RabbitMQ{
		channel:   channel,
		exchange:  exchange,
		isRunning: make(chan struct{}),
	}

	return &mq, nil
}

// DeclareTopology declares durable direct exchange and queue bound to it with routing key.
func (mq *RabbitMQ) DeclareTopology(queue, routingKey string) error {
	if err := mq.channel.ExchangeDeclare(mq.exchange, amqp.ExchangeDirect, true, false, false, false, nil); err != nil {
		return fmt.Errorf("can't declare exchange %q: %w", mq.exchange, err)
	}

	if _, err := mq.channel.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("can't declare queue %q: %w", queue, err)
	}

	if err := mq.channel.QueueBind(queue, routingKey, mq.exchange, false, nil); err != nil {
		return fmt.Errorf("can't bind queue %q: %w", queue, err)
	}

	return nil
}

// Publish publishes persistent JSON message to routing key.
func (mq *RabbitMQ) Publish(ctx context.Context, routingKey string, message []byte) error {
	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Body:         message,
	}

	if err := mq.channel.PublishWithContext(ctx, mq.exchange, routingKey, false, false, msg); err != nil {
		return fmt.Errorf("can't publish message: %w", err)
	}

	return nil
}

// Consume consumes messages from queue and passes deliveries to provided handler function one by one.
// It returns channel with errors from handler function and consuming process.
// Function works asynchronously, it consumes messages in background as long as context is not closed.
func (mq *RabbitMQ) Consume(ctx context.Context, queue string, handler HandlerFunc) (<-chan error, error) {
	consumerID, err := uuid.NewUUID()
	if err != nil {
		return nil, fmt.Errorf("can't create consumer ID: %w", err)
	}

	deliveries, err := mq.channel.ConsumeWithContext(
		ctx,
		queue,
		consumerID.String(),
		false, // auto acknowledge
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("can't start consuming: %w", err)
	}

	consumingErrors := make(chan error)
	go func() {
		defer close(mq.isRunning)
		defer close(consumingErrors)
		mq.consumeMessages(ctx, deliveries, consumingErrors, handler)
	}()

	return consumingErrors, nil
}

func (mq *RabbitMQ) consumeMessages(
	ctx context.Context,
	deliveries <-chan amqp.Delivery,
	consumingErrors chan error,
	handler HandlerFunc,
) {
	for {
		var delivery amqp.Delivery
		var ok bool

		select {
		case <-ctx.Done():
			return
		case delivery, ok = <-deliveries:
			if !ok {
				return
			}
		}

		if err := handler(ctx, delivery.Body); err != nil {
			_ = pushError(ctx, err, consumingErrors)
			if err := mq.settle(ctx, delivery.Nack(false, false), "nack", consumingErrors); err != nil {
				return
			}
			continue
		}

		if err := mq.settle(ctx, delivery.Ack(false), "ack", consumingErrors); err != nil {
			return
		}
	}
}

// settle reports failed ack or nack. It returns error only when error couldn't be reported.
func (mq *RabbitMQ) settle(ctx context.Context, settleErr error, action string, consumingErrors chan error) error {
	if settleErr == nil {
		return nil
	}

	return pushError(ctx, fmt.Errorf("can't %s message: %w", action, settleErr), consumingErrors)
}

// Done returns channel which will be closed when consuming will be finished.
func (mq *RabbitMQ) Done() <-chan struct{} {
	return mq.isRunning
}

// Close closes underlying channel.
func (mq *RabbitMQ) Close() error {
	return mq.channel.Close()
}

func pushError(ctx context.Context, err error, errChan chan error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case errChan <- err:
	}
	return nil
}

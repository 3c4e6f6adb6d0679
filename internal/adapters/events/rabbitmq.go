package events

import (
	"context"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Channel is the subset of *amqp.Channel the publisher needs.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitMQPublisher implements EventPublisher on a durable RabbitMQ queue.
type RabbitMQPublisher struct {
	conn  *amqp.Connection
	chn   Channel
	queue string
}

func NewRabbitMQPublisher(url, queue string) (*RabbitMQPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}

	chn, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq open channel: %w", err)
	}

	if _, err := chn.QueueDeclare(
		queue, // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	); err != nil {
		_ = chn.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq declare queue %q: %w", queue, err)
	}

	return &RabbitMQPublisher{conn: conn, chn: chn, queue: queue}, nil
}

func NewRabbitMQPublisherWithChannel(chn Channel, queue string) *RabbitMQPublisher {
	return &RabbitMQPublisher{chn: chn, queue: queue}
}

func (p *RabbitMQPublisher) Publish(ctx context.Context, key string, value []byte) error {
	err := p.chn.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    key,
			Body:         value,
		},
	)
	if err != nil {
		return fmt.Errorf("rabbitmq publish key=%s: %w", key, err)
	}
	return nil
}

func (p *RabbitMQPublisher) Close() error {
	var errs []error
	if err := p.chn.Close(); err != nil {
		errs = append(errs, err)
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

package orderevents

import (
	"context"
	"fmt"
	"sync"

	"farmalink-service/internal/pkg/constvars"
	"farmalink-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// OrderEventMessage is the payload stored in RabbitMQ when an order reaches a
// new lifecycle state. The push worker consumes it to deliver the user-facing
// notification.
type OrderEventMessage struct {
	OrderID        string `json:"order_id"`
	UserID         string `json:"user_id"`
	PrescriptionID string `json:"prescription_id"`
	QuoteID        string `json:"quote_id"`
	State          string `json:"state"`
	FailedCount    int    `json:"failed_count"`
}

// Service manages the durable order-event queue and its dead-letter queue.
type Service struct {
	ch       *amqp.Channel
	log      *zap.Logger
	confirms chan amqp.Confirmation
	mu       sync.Mutex
}

// NewService declares durable queues, enables publisher confirms and sets QoS.
func NewService(conn *amqp.Connection, log *zap.Logger, prefetch int) (*Service, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		constvars.OrderEventsQueueName,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		constvars.OrderEventsDeadLetterQueueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, err
	}

	if prefetch <= 0 {
		prefetch = 1
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		return nil, err
	}

	if err := ch.Confirm(false); err != nil {
		return nil, err
	}

	return &Service{
		ch:       ch,
		log:      log,
		confirms: ch.NotifyPublish(make(chan amqp.Confirmation, 1)),
	}, nil
}

// Enqueue publishes a message to the standard queue with persistence and
// waits for the broker confirm.
func (s *Service) Enqueue(ctx context.Context, message OrderEventMessage) error {
	return s.publish(ctx, constvars.OrderEventsQueueName, message)
}

// EnqueueToDLQ parks a message that exhausted its delivery attempts.
func (s *Service) EnqueueToDLQ(ctx context.Context, message OrderEventMessage) error {
	return s.publish(ctx, constvars.OrderEventsDeadLetterQueueName, message)
}

func (s *Service) publish(ctx context.Context, queueName string, message OrderEventMessage) error {
	body, err := json.Marshal(message)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp.Persistent,
	}

	if err := s.ch.PublishWithContext(ctx, "", queueName, false, false, msg); err != nil {
		return exceptions.ErrQueuePublish(err)
	}

	select {
	case confirmed := <-s.confirms:
		if !confirmed.Ack {
			return exceptions.ErrQueuePublish(fmt.Errorf("message not confirmed by broker"))
		}
	case <-ctx.Done():
		return exceptions.ErrQueuePublish(ctx.Err())
	}
	return nil
}

// Consume starts delivering queued order events to the returned channel.
func (s *Service) Consume(consumerTag string) (<-chan amqp.Delivery, error) {
	return s.ch.Consume(
		constvars.OrderEventsQueueName,
		consumerTag,
		false, // autoAck: the worker acks after the notification is delivered
		false,
		false,
		false,
		nil,
	)
}

// Close releases the channel.
func (s *Service) Close() error {
	return s.ch.Close()
}

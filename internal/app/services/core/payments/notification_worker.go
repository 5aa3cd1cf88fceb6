package payments

import (
	"context"
	"sync"

	"farmalink-service/internal/app/contracts"
	"farmalink-service/internal/app/models"
	"farmalink-service/internal/app/services/shared/orderevents"
	"farmalink-service/internal/pkg/constvars"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// eventQueue is the slice of the order-event queue the worker needs.
type eventQueue interface {
	Consume(consumerTag string) (<-chan amqp.Delivery, error)
	Enqueue(ctx context.Context, message orderevents.OrderEventMessage) error
	EnqueueToDLQ(ctx context.Context, message orderevents.OrderEventMessage) error
}

// NotificationWorker consumes order events and pushes the terminal outcome
// to the buyer. A registry keyed by order id keeps the push at most once
// even when the broker redelivers.
type NotificationWorker struct {
	EventQueue      eventQueue
	OrderRepository contracts.OrderRepository
	Registry        contracts.NotifiedRegistry
	Sink            contracts.NotificationSink
	Log             *zap.Logger

	stopOnce sync.Once
	done     chan struct{}
}

func NewNotificationWorker(
	queue eventQueue,
	orderRepository contracts.OrderRepository,
	registry contracts.NotifiedRegistry,
	sink contracts.NotificationSink,
	logger *zap.Logger,
) *NotificationWorker {
	return &NotificationWorker{
		EventQueue:      queue,
		OrderRepository: orderRepository,
		Registry:        registry,
		Sink:            sink,
		Log:             logger,
		done:            make(chan struct{}),
	}
}

// Start launches the consume loop. The returned stop function waits for the
// loop to drain in-flight deliveries before returning.
func (w *NotificationWorker) Start(ctx context.Context) (func(), error) {
	deliveries, err := w.EventQueue.Consume("farmalink-notification-worker")
	if err != nil {
		return nil, err
	}

	workerCtx, cancel := context.WithCancel(ctx)
	go w.run(workerCtx, deliveries)

	return func() {
		w.stopOnce.Do(cancel)
		<-w.done
	}, nil
}

func (w *NotificationWorker) run(ctx context.Context, deliveries <-chan amqp.Delivery) {
	defer close(w.done)
	for {
		select {
		case <-ctx.Done():
			return
		case delivery, ok := <-deliveries:
			if !ok {
				w.Log.Warn("notificationWorker delivery channel closed")
				return
			}
			w.handle(ctx, delivery)
		}
	}
}

func (w *NotificationWorker) handle(ctx context.Context, delivery amqp.Delivery) {
	var message orderevents.OrderEventMessage
	if err := json.Unmarshal(delivery.Body, &message); err != nil {
		// Undecodable payloads can never succeed; park them immediately.
		w.Log.Error("notificationWorker cannot decode message", zap.Error(err))
		if dlqErr := w.EventQueue.EnqueueToDLQ(ctx, orderevents.OrderEventMessage{}); dlqErr != nil {
			w.Log.Error("notificationWorker DLQ publish failed", zap.Error(dlqErr))
		}
		_ = delivery.Ack(false)
		return
	}

	if err := w.process(ctx, message); err != nil {
		w.retry(ctx, message, err)
		_ = delivery.Ack(false)
		return
	}
	_ = delivery.Ack(false)
}

func (w *NotificationWorker) process(ctx context.Context, message orderevents.OrderEventMessage) error {
	state := models.OrderState(message.State)
	if !state.Terminal() {
		return nil
	}
	if w.Registry.HasNotified(message.OrderID) {
		w.Log.Info("notificationWorker already notified",
			zap.String(constvars.LoggingOrderIDKey, message.OrderID),
		)
		return nil
	}

	order, err := w.OrderRepository.FindByID(ctx, message.OrderID)
	if err != nil {
		return err
	}
	if order == nil {
		w.Log.Warn("notificationWorker order missing",
			zap.String(constvars.LoggingOrderIDKey, message.OrderID),
		)
		return nil
	}

	// Mark before delivering: a lost push is preferable to a duplicate one.
	w.Registry.MarkNotified(order.ID)
	if order.State == models.OrderPaid {
		w.Sink.NotifySuccess(order)
	} else {
		w.Sink.NotifyFailure(order)
	}

	w.Log.Info("notificationWorker notified",
		zap.String(constvars.LoggingOrderIDKey, order.ID),
		zap.String(constvars.LoggingOrderStateKey, string(order.State)),
	)
	return nil
}

func (w *NotificationWorker) retry(ctx context.Context, message orderevents.OrderEventMessage, cause error) {
	message.FailedCount++
	w.Log.Error("notificationWorker processing failed",
		zap.String(constvars.LoggingOrderIDKey, message.OrderID),
		zap.Int("failed_count", message.FailedCount),
		zap.Error(cause),
	)
	if message.FailedCount >= constvars.OrderEventsMaxDeliveryAttempts {
		if err := w.EventQueue.EnqueueToDLQ(ctx, message); err != nil {
			w.Log.Error("notificationWorker DLQ publish failed", zap.Error(err))
		}
		return
	}
	if err := w.EventQueue.Enqueue(ctx, message); err != nil {
		w.Log.Error("notificationWorker requeue failed", zap.Error(err))
	}
}

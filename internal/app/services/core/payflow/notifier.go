package payflow

import (
	"farmalink-service/internal/app/contracts"
	"farmalink-service/internal/app/models"
	"farmalink-service/internal/app/services/core/orders"
	"farmalink-service/internal/pkg/constvars"

	"go.uber.org/zap"
)

// StatusNotifier watches order snapshots for one quote and fires the
// terminal success/failure notification at most once per order id. It is
// correct under coalesced and redelivered snapshots because "already
// notified" is keyed on the order id, not on transition count.
//
// Not safe for concurrent use; the owning controller feeds it from a single
// goroutine.
type StatusNotifier struct {
	registry contracts.NotifiedRegistry
	sink     contracts.NotificationSink
	log      *zap.Logger

	quoteID          string
	previousState    models.OrderState
	firstObservation bool
}

func NewStatusNotifier(quoteID string, registry contracts.NotifiedRegistry, sink contracts.NotificationSink, logger *zap.Logger) *StatusNotifier {
	return &StatusNotifier{
		registry:         registry,
		sink:             sink,
		log:              logger,
		quoteID:          quoteID,
		firstObservation: true,
	}
}

// SetTargetQuote repoints the notifier at another quote. A fresh payment
// attempt always gets a fresh detection window.
func (n *StatusNotifier) SetTargetQuote(quoteID string) {
	if quoteID == n.quoteID {
		return
	}
	n.quoteID = quoteID
	n.previousState = ""
	n.firstObservation = true
}

// Observe processes one snapshot. Orders belonging to a different quote are
// ignored entirely so screen reuse cannot cross-talk between attempts.
func (n *StatusNotifier) Observe(snap orders.Snapshot) {
	if snap.Loading || snap.Err != nil || snap.Order == nil {
		return
	}
	order := snap.Order
	if order.QuoteID != n.quoteID {
		return
	}

	if n.firstObservation {
		// The baseline itself can already be terminal: the user left the app
		// mid-payment and came back after the gateway settled.
		n.firstObservation = false
		n.previousState = order.State
		n.fireIfTerminal(order)
		return
	}

	if order.State == n.previousState {
		return
	}
	n.previousState = order.State
	n.fireIfTerminal(order)
}

func (n *StatusNotifier) fireIfTerminal(order *models.Order) {
	if !order.State.Terminal() {
		return
	}
	if n.registry.HasNotified(order.ID) {
		return
	}
	n.registry.MarkNotified(order.ID)

	if order.State == models.OrderPaid {
		n.sink.NotifySuccess(order)
	} else {
		n.sink.NotifyFailure(order)
	}
	n.log.Info("statusNotifier fired",
		zap.String(constvars.LoggingOrderIDKey, order.ID),
		zap.String(constvars.LoggingOrderStateKey, string(order.State)),
	)
}

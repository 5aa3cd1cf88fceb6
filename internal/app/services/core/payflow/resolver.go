package payflow

import (
	"farmalink-service/internal/app/models"
)

// ButtonAction is what the payment button should offer for a quote given the
// latest order for its prescription.
type ButtonAction string

const (
	ActionPay        ButtonAction = "pagar"
	ActionRetry      ButtonAction = "reintentar"
	ActionProcessing ButtonAction = "procesando"
	ActionPaid       ButtonAction = "pagado"
	ActionBlocked    ButtonAction = "bloqueado"
)

// Payable reports whether the action accepts a new payment attempt.
func (a ButtonAction) Payable() bool {
	return a == ActionPay || a == ActionRetry
}

// ResolveButtonAction decides the payment button for quoteID from the latest
// order of its prescription. It is a pure function of its inputs.
//
// With no order the quote is simply payable. When the latest order was placed
// against this same quote, the order state is surfaced directly: paid, still
// in flight, or failed and retryable. When the latest order belongs to a
// different quote, this quote only unblocks once that order has failed;
// anything else, a paid or delivered order included, keeps it blocked so a
// prescription never collects two live orders. Unrecognized states block.
func ResolveButtonAction(quoteID string, order *models.Order) ButtonAction {
	if order == nil {
		return ActionPay
	}

	if order.QuoteID == quoteID {
		switch {
		case order.State == models.OrderPaid:
			return ActionPaid
		case order.State == models.OrderPendingPayment || order.State == models.OrderPending:
			return ActionProcessing
		case order.State.Failed():
			return ActionRetry
		default:
			return ActionBlocked
		}
	}

	if order.State.Failed() {
		return ActionPay
	}
	return ActionBlocked
}

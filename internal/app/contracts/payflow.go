package contracts

import (
	"context"

	"farmalink-service/internal/app/models"
)

// PaymentIntent identifies one payment attempt against a quote.
type PaymentIntent struct {
	UserID         string
	PharmacyID     string
	PrescriptionID string
	QuoteID        string
}

// IntentBuilder submits a payment intent to the gateway endpoint and returns
// the redirect URL. Failures are classified before they leave the builder:
// transport errors and malformed responses become gateway failures, the
// duplicate-active-order sentinel becomes its own kind. No retry happens
// here; retrying is a user action.
type IntentBuilder interface {
	CreateIntent(ctx context.Context, intent PaymentIntent) (redirectURL string, err error)
}

// NotifiedRegistry remembers which orders already produced their terminal
// notification. Entries are never removed; order ids are never reused. The
// set is process-local on purpose: an order revisited after a cold start may
// notify again, which is accepted behavior.
type NotifiedRegistry interface {
	HasNotified(orderID string) bool
	MarkNotified(orderID string)
}

// NotificationSink receives the at-most-once terminal notifications.
type NotificationSink interface {
	NotifySuccess(order *models.Order)
	NotifyFailure(order *models.Order)
}

// Confirmer asks the user a yes/no question. Implementations differ per host
// platform (terminal prompt, web dialog) and are chosen at composition time.
type Confirmer interface {
	Confirm(ctx context.Context, message string) (bool, error)
}

// LinkOpener hands a checkout URL to the host platform. Fire and forget: the
// flow has no further visibility into the hosted checkout until a new order
// snapshot arrives.
type LinkOpener interface {
	Open(ctx context.Context, url string) error
}

// AuthProvider supplies the current user identity, or none.
type AuthProvider interface {
	CurrentUserID(ctx context.Context) (string, bool)
}

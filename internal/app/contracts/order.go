package contracts

import (
	"context"

	"farmalink-service/internal/app/models"
)

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) (string, error)
	FindByID(ctx context.Context, orderID string) (*models.Order, error)
	FindByExternalPaymentID(ctx context.Context, externalPaymentID string) (*models.Order, error)
	// FindLatestByPrescriptionID returns the most recent order for the
	// prescription, or nil when none exists.
	FindLatestByPrescriptionID(ctx context.Context, prescriptionID string) (*models.Order, error)
	Update(ctx context.Context, order *models.Order) error
	// Watch opens a push subscription over orders belonging to the
	// prescription. The caller owns the returned watch and must close it.
	Watch(ctx context.Context, prescriptionID string) (OrderWatch, error)
}

// OrderWatch is a live feed of order documents. Delivery is at-least-once:
// the same state may be redelivered after a reconnect and intermediate
// transitions may be coalesced.
type OrderWatch interface {
	// Events yields order documents as the backend emits them. The channel
	// is closed when the subscription ends.
	Events() <-chan *models.Order
	// Err reports why Events closed, or nil on a clean close.
	Err() error
	Close(ctx context.Context) error
}

package contracts

import (
	"context"

	"farmalink-service/internal/app/models"
	"farmalink-service/internal/pkg/dto/requests"
	"farmalink-service/internal/pkg/dto/responses"
)

type PaymentUsecase interface {
	// CreatePreference enforces the one-active-order-per-(user, prescription)
	// rule, creates the pendiente_pago order and returns the hosted checkout
	// URL. On a duplicate it fails with the sentinel error.
	CreatePreference(ctx context.Context, userID string, request *requests.CreatePreference) (*responses.CreatePreference, error)
	// ProcessCallback reconciles a checkout provider webhook into the order's
	// lifecycle state and publishes an order event for push delivery.
	ProcessCallback(ctx context.Context, request *requests.CheckoutCallback) error
}

// CheckoutProvider is the external hosted-checkout service. Given a new
// order it returns the URL the buyer must be redirected to.
type CheckoutProvider interface {
	CreateCheckout(ctx context.Context, order *models.Order) (checkoutURL string, err error)
}

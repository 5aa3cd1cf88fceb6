package payflow

import (
	"testing"

	"farmalink-service/internal/app/models"

	"github.com/stretchr/testify/assert"
)

func TestResolveButtonAction(t *testing.T) {
	const quoteID = "cot-1"
	const otherQuoteID = "cot-2"

	order := func(quote string, state models.OrderState) *models.Order {
		return &models.Order{ID: "ped-1", QuoteID: quote, State: state}
	}

	t.Run("no order means payable", func(t *testing.T) {
		assert.Equal(t, ActionPay, ResolveButtonAction(quoteID, nil))
	})

	t.Run("same quote", func(t *testing.T) {
		cases := []struct {
			state models.OrderState
			want  ButtonAction
		}{
			{models.OrderPaid, ActionPaid},
			{models.OrderPendingPayment, ActionProcessing},
			{models.OrderPending, ActionProcessing},
			{models.OrderRejected, ActionRetry},
			{models.OrderAbandoned, ActionRetry},
			{models.OrderDelivered, ActionBlocked},
			{models.OrderUnknown, ActionBlocked},
		}
		for _, tc := range cases {
			got := ResolveButtonAction(quoteID, order(quoteID, tc.state))
			assert.Equalf(t, tc.want, got, "state %s", tc.state)
		}
	})

	t.Run("different quote only unblocks after failure", func(t *testing.T) {
		cases := []struct {
			state models.OrderState
			want  ButtonAction
		}{
			{models.OrderRejected, ActionPay},
			{models.OrderAbandoned, ActionPay},
			{models.OrderPaid, ActionBlocked},
			{models.OrderPendingPayment, ActionBlocked},
			{models.OrderPending, ActionBlocked},
			{models.OrderDelivered, ActionBlocked},
			{models.OrderUnknown, ActionBlocked},
		}
		for _, tc := range cases {
			got := ResolveButtonAction(quoteID, order(otherQuoteID, tc.state))
			assert.Equalf(t, tc.want, got, "state %s", tc.state)
		}
	})

	t.Run("unrecognized state blocks conservatively", func(t *testing.T) {
		assert.Equal(t, ActionBlocked, ResolveButtonAction(quoteID, order(quoteID, models.OrderState("algo_nuevo"))))
		assert.Equal(t, ActionBlocked, ResolveButtonAction(quoteID, order(otherQuoteID, models.OrderState("algo_nuevo"))))
	})

	t.Run("payable helper", func(t *testing.T) {
		assert.True(t, ActionPay.Payable())
		assert.True(t, ActionRetry.Payable())
		assert.False(t, ActionProcessing.Payable())
		assert.False(t, ActionPaid.Payable())
		assert.False(t, ActionBlocked.Payable())
	})
}

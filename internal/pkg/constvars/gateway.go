package constvars

// GatewayDuplicateOrderSentinel is the exact error string the preference endpoint
// returns when another order is still active for the prescription. The mobile
// core pattern-matches it to tell an idempotence rejection apart from a generic
// gateway failure.
const GatewayDuplicateOrderSentinel = "Ya existe un pedido en proceso"

const GatewayCreatePreferencePath = "/api/pagos/crear-preferencia"

// GatewayMaxResponseBytes caps how much of a gateway response body is read.
const GatewayMaxResponseBytes = 1 << 20

// CheckoutPaymentStatus is the payment status reported by the hosted checkout
// provider in webhook callbacks.
type CheckoutPaymentStatus string

const (
	CheckoutStatusApproved  CheckoutPaymentStatus = "approved"
	CheckoutStatusPending   CheckoutPaymentStatus = "pending"
	CheckoutStatusInProcess CheckoutPaymentStatus = "in_process"
	CheckoutStatusRejected  CheckoutPaymentStatus = "rejected"
	CheckoutStatusCancelled CheckoutPaymentStatus = "cancelled"
	CheckoutStatusExpired   CheckoutPaymentStatus = "expired"
)

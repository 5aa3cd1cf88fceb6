package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY ContextKey = "request_id"
	CONTEXT_USER_ID_KEY    ContextKey = "user_id"
)

const (
	ResourcePrescriptions = "recetas"
	ResourceQuotes        = "cotizaciones"
	ResourceOrders        = "pedidos"
	ResourcePayments      = "pagos"
)

const (
	MongoCollectionUsers         = "usuarios"
	MongoCollectionPrescriptions = "recetas"
	MongoCollectionQuotes        = "cotizaciones"
	MongoCollectionOrders        = "pedidos"
)

const (
	// PaymentLockKeyFormat serializes intent creation per (user, prescription).
	PaymentLockKeyFormat              = "farmalink:payment-lock:%s:%s"
	PaymentLockExpirationInSeconds    = 30
	QuoteCacheKeyFormat               = "farmalink:quote:%s:%s"
	QuoteCacheExpirationInSeconds     = 60
	GatewayLimiterGroupName           = "checkout-provider"
	GatewayLimiterWindowInSeconds     = 1
	GatewayLimiterMaxRequestsInWindow = 20
)

const (
	OrderEventsQueueName           = "farmalink_order_events_queue"
	OrderEventsDeadLetterQueueName = "farmalink_order_events_dlq"
	OrderEventsMaxDeliveryAttempts = 5
)

package constvars

const (
	LoggingRequestIDKey      = "request_id"
	LoggingDataKey           = "data"
	LoggingRequestKey        = "request"
	LoggingResponseKey       = "response"
	LoggingMethodKey         = "method"
	LoggingEndpointKey       = "endpoint"
	LoggingRemoteAddrKey     = "remote_addr"
	LoggingUserAgentKey      = "user_agent"
	LoggingQueryKey          = "query"
	LoggingStatusCodeKey     = "status_code"
	LoggingDurationKey       = "duration"
	LoggingSuccessKey        = "success"
	LoggingErrorTypeKey      = "error_type"
	LoggingUserIDKey         = "user_id"
	LoggingPrescriptionIDKey = "prescription_id"
	LoggingQuoteIDKey        = "quote_id"
	LoggingOrderIDKey        = "order_id"
	LoggingPharmacyIDKey     = "pharmacy_id"
	LoggingOrderStateKey     = "order_state"
	LoggingQuoteStateKey     = "quote_state"
	LoggingPaymentStatusKey  = "payment_status"
	LoggingRedisKey          = "redis_key"
	LoggingLockValueKey      = "lock_value"
	LoggingLockExpirationKey = "lock_expiration"
)

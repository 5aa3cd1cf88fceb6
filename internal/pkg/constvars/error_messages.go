package constvars

// Client messages are shown to the mobile app user and are therefore in Spanish.
const (
	ErrClientSomethingWrongWithApplication = "Ocurrió un error inesperado, intentá nuevamente"
	ErrClientCannotProcessRequest          = "No pudimos procesar tu solicitud"
	ErrClientNotAuthorized                 = "Necesitás iniciar sesión para continuar"
	ErrClientMissingParameters             = "Faltan datos para completar la operación"
	ErrClientAddressIncomplete             = "Completá tu dirección de entrega antes de pagar"
	ErrClientQuoteUnavailable              = "La cotización ya no está disponible"
	ErrClientQuoteNotFound                 = "No encontramos la cotización"
	ErrClientPrescriptionNotFound          = "No encontramos la receta"
	ErrClientOrderNotFound                 = "No encontramos el pedido"
	ErrClientDuplicateActiveOrder          = "Ya existe un pedido en proceso"
	ErrClientGatewayFailure                = "No pudimos iniciar el pago, intentá nuevamente"
	ErrClientStreamError                   = "Perdimos la conexión, volvé a intentar"
	ErrClientTooManyRequests               = "Demasiados intentos, esperá un momento"
)

const (
	ErrDevUnauthenticated           = "no authenticated user in request context"
	ErrDevMissingParameters         = "required identifiers are missing"
	ErrDevAddressIncomplete         = "delivery address validation failed"
	ErrDevQuoteUnavailable          = "quote is no longer in an offerable state"
	ErrDevQuoteNotFound             = "quote document does not exist"
	ErrDevPrescriptionNotFound      = "prescription document does not exist"
	ErrDevOrderNotFound             = "order document does not exist"
	ErrDevDuplicateActiveOrder      = "an active order already exists for this prescription"
	ErrDevGatewayFailure            = "checkout provider request failed"
	ErrDevGatewayMalformedResponse  = "checkout provider returned no usable payment URL"
	ErrDevStreamError               = "order snapshot subscription failed"
	ErrDevPaymentInFlight           = "a payment attempt is already in flight"
	ErrDevValidationFailed          = "request validation failed"
	ErrDevCannotParseJSON           = "cannot parse JSON into struct"
	ErrDevCannotMarshalJSON         = "cannot marshal struct into JSON"
	ErrDevCannotBuildRequest        = "cannot build outgoing HTTP request"
	ErrDevMissingRequestID          = "request ID missing from context"
	ErrDevAuthTokenMissing          = "authorization token is missing"
	ErrDevAuthTokenInvalid          = "authorization token is invalid or expired"
	ErrDevAuthSigningMethod         = "unexpected JWT signing method"
	ErrDevDBFailedToFindDocument    = "failed to find document in MongoDB"
	ErrDevDBFailedToInsertDocument  = "failed to insert document into MongoDB"
	ErrDevDBFailedToUpdateDocument  = "failed to update document in MongoDB"
	ErrDevDBFailedToWatchCollection = "failed to open change stream on MongoDB collection"
	ErrDevRedisFailedToGet          = "failed to get value from Redis"
	ErrDevRedisFailedToSet          = "failed to set value in Redis"
	ErrDevRedisFailedToDelete       = "failed to delete value from Redis"
	ErrDevQueuePublishFailed        = "failed to publish message to RabbitMQ"
	ErrDevStorageFailed             = "failed to resolve object from MinIO"
)

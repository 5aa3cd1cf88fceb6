package exceptions

import (
	"farmalink-service/internal/pkg/constvars"
)

// Payment flow taxonomy. Each constructor maps to exactly one client-facing
// message; validation errors never reach the checkout provider.
var (
	ErrUnauthenticated = func(err error) *CustomError {
		return buildNewCustomError(err, KindUnauthenticated, constvars.StatusUnauthorized, constvars.ErrClientNotAuthorized, constvars.ErrDevUnauthenticated)
	}
	ErrMissingParameters = func(err error) *CustomError {
		return buildNewCustomError(err, KindMissingParameters, constvars.StatusBadRequest, constvars.ErrClientMissingParameters, constvars.ErrDevMissingParameters)
	}
	ErrAddressIncomplete = func(err error) *CustomError {
		return buildNewCustomError(err, KindAddressIncomplete, constvars.StatusBadRequest, constvars.ErrClientAddressIncomplete, constvars.ErrDevAddressIncomplete)
	}
	ErrQuoteUnavailable = func(err error) *CustomError {
		return buildNewCustomError(err, KindQuoteUnavailable, constvars.StatusConflict, constvars.ErrClientQuoteUnavailable, constvars.ErrDevQuoteUnavailable)
	}
	ErrQuoteNotFound = func(err error) *CustomError {
		return buildNewCustomError(err, KindQuoteNotFound, constvars.StatusNotFound, constvars.ErrClientQuoteNotFound, constvars.ErrDevQuoteNotFound)
	}
	ErrPrescriptionNotFound = func(err error) *CustomError {
		return buildNewCustomError(err, KindInternal, constvars.StatusNotFound, constvars.ErrClientPrescriptionNotFound, constvars.ErrDevPrescriptionNotFound)
	}
	ErrOrderNotFound = func(err error) *CustomError {
		return buildNewCustomError(err, KindOrderNotFound, constvars.StatusNotFound, constvars.ErrClientOrderNotFound, constvars.ErrDevOrderNotFound)
	}
	ErrDuplicateActiveOrder = func(err error) *CustomError {
		return buildNewCustomError(err, KindDuplicateActiveOrder, constvars.StatusConflict, constvars.ErrClientDuplicateActiveOrder, constvars.ErrDevDuplicateActiveOrder)
	}
	ErrGatewayFailure = func(err error) *CustomError {
		return buildNewCustomError(err, KindGatewayFailure, constvars.StatusBadGateway, constvars.ErrClientGatewayFailure, constvars.ErrDevGatewayFailure)
	}
	ErrGatewayMalformedResponse = func(err error) *CustomError {
		return buildNewCustomError(err, KindGatewayFailure, constvars.StatusBadGateway, constvars.ErrClientGatewayFailure, constvars.ErrDevGatewayMalformedResponse)
	}
	ErrStreamError = func(err error) *CustomError {
		return buildNewCustomError(err, KindStreamError, constvars.StatusServiceUnavailable, constvars.ErrClientStreamError, constvars.ErrDevStreamError)
	}
	ErrPaymentInFlight = func(err error) *CustomError {
		return buildNewCustomError(err, KindPaymentInFlight, constvars.StatusConflict, constvars.ErrClientCannotProcessRequest, constvars.ErrDevPaymentInFlight)
	}
)

// Request parsing and validation.
var (
	ErrInputValidation = func(err error) *CustomError {
		return buildNewCustomError(err, KindInternal, constvars.StatusBadRequest, FormatFirstValidationError(err), constvars.ErrDevValidationFailed)
	}
	ErrCannotParseJSON = func(err error) *CustomError {
		return buildNewCustomError(err, KindInternal, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseJSON)
	}
	ErrCannotMarshalJSON = func(err error) *CustomError {
		return buildNewCustomError(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotMarshalJSON)
	}
	ErrBuildRequest = func(err error) *CustomError {
		return buildNewCustomError(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotBuildRequest)
	}
	ErrMissingRequestID = func(err error) *CustomError {
		return buildNewCustomError(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevMissingRequestID)
	}
)

// Auth.
var (
	ErrTokenMissing = func(err error) *CustomError {
		return buildNewCustomError(err, KindUnauthenticated, constvars.StatusUnauthorized, constvars.ErrClientNotAuthorized, constvars.ErrDevAuthTokenMissing)
	}
	ErrTokenInvalidOrExpired = func(err error) *CustomError {
		return buildNewCustomError(err, KindUnauthenticated, constvars.StatusUnauthorized, constvars.ErrClientNotAuthorized, constvars.ErrDevAuthTokenInvalid)
	}
)

// MongoDB.
var (
	ErrMongoDBFindDocument = func(err error) *CustomError {
		return buildNewCustomError(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToFindDocument)
	}
	ErrMongoDBInsertDocument = func(err error) *CustomError {
		return buildNewCustomError(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToInsertDocument)
	}
	ErrMongoDBUpdateDocument = func(err error) *CustomError {
		return buildNewCustomError(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToUpdateDocument)
	}
	ErrMongoDBWatchCollection = func(err error) *CustomError {
		return buildNewCustomError(err, KindStreamError, constvars.StatusServiceUnavailable, constvars.ErrClientStreamError, constvars.ErrDevDBFailedToWatchCollection)
	}
)

// Redis.
var (
	ErrRedisGet = func(err error) *CustomError {
		return buildNewCustomError(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisFailedToGet)
	}
	ErrRedisSet = func(err error) *CustomError {
		return buildNewCustomError(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisFailedToSet)
	}
	ErrRedisDelete = func(err error) *CustomError {
		return buildNewCustomError(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisFailedToDelete)
	}
)

// Messaging and storage.
var (
	ErrQueuePublish = func(err error) *CustomError {
		return buildNewCustomError(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevQueuePublishFailed)
	}
	ErrStorageResolve = func(err error) *CustomError {
		return buildNewCustomError(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevStorageFailed)
	}
)

package exceptions

import (
	"errors"
	"fmt"
	"runtime"
)

// Kind classifies an error for callers that need to branch on the failure
// class instead of matching message strings.
type Kind string

const (
	KindUnauthenticated      Kind = "unauthenticated"
	KindMissingParameters    Kind = "missing_parameters"
	KindAddressIncomplete    Kind = "address_incomplete"
	KindQuoteUnavailable     Kind = "quote_unavailable"
	KindQuoteNotFound        Kind = "quote_not_found"
	KindOrderNotFound        Kind = "order_not_found"
	KindDuplicateActiveOrder Kind = "duplicate_active_order"
	KindGatewayFailure       Kind = "gateway_failure"
	KindPaymentInFlight      Kind = "payment_in_flight"
	KindStreamError          Kind = "stream_error"
	KindInternal             Kind = "internal"
)

type CustomError struct {
	StatusCode    int      `json:"status_code"`
	Success       bool     `json:"success"`
	ClientMessage string   `json:"message"`
	Kind          Kind     `json:"-"`
	DevMessage    string   `json:"-"`
	Location      Location `json:"-"`
}

type Location struct {
	File         string
	Line         int
	FunctionName string
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%s (%s:%d %s)", e.DevMessage, e.Location.File, e.Location.Line, e.Location.FunctionName)
}

// KindOf returns the Kind of err, or KindInternal for anything that is not a
// CustomError.
func KindOf(err error) Kind {
	var customErr *CustomError
	if errors.As(err, &customErr) {
		return customErr.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

func WrapWithoutError(statusCode int, clientMessage, devMessage string) *CustomError {
	return &CustomError{
		StatusCode:    statusCode,
		ClientMessage: clientMessage,
		Kind:          KindInternal,
		DevMessage:    devMessage,
		Location:      getLocation(2),
	}
}

func WrapWithError(err error, statusCode int, clientMessage, devMessage string) *CustomError {
	return &CustomError{
		StatusCode:    statusCode,
		ClientMessage: clientMessage,
		Kind:          KindInternal,
		DevMessage:    fmt.Sprintf("%s: %s", devMessage, err.Error()),
		Location:      getLocation(2),
	}
}

func buildNewCustomError(err error, kind Kind, statusCode int, clientMessage, devMessage string) *CustomError {
	devMsg := devMessage
	if err != nil {
		devMsg = fmt.Sprintf("%s: %s", devMessage, err.Error())
	}
	return &CustomError{
		StatusCode:    statusCode,
		ClientMessage: clientMessage,
		Kind:          kind,
		DevMessage:    devMsg,
		Location:      getLocation(3),
	}
}

func getLocation(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return Location{
			File:         "unknown",
			Line:         0,
			FunctionName: "unknown",
		}
	}
	function := runtime.FuncForPC(pc).Name()
	return Location{
		File:         file,
		Line:         line,
		FunctionName: function,
	}
}

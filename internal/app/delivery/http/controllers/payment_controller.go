package controllers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"farmalink-service/internal/app/contracts"
	"farmalink-service/internal/pkg/constvars"
	"farmalink-service/internal/pkg/dto/requests"
	"farmalink-service/internal/pkg/exceptions"
	"farmalink-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type PaymentController struct {
	Log            *zap.Logger
	PaymentUsecase contracts.PaymentUsecase
}

var (
	paymentControllerInstance *PaymentController
	oncePaymentController     sync.Once
)

func NewPaymentController(logger *zap.Logger, paymentUsecase contracts.PaymentUsecase) *PaymentController {
	oncePaymentController.Do(func() {
		instance := &PaymentController{
			Log:            logger,
			PaymentUsecase: paymentUsecase,
		}
		paymentControllerInstance = instance
	})
	return paymentControllerInstance
}

// CreatePreference is the gateway-intent endpoint. Its wire contract is flat
// on purpose: success is {"paymentUrl": ...} and failure is {"error": ...},
// because mobile clients pattern-match the error string against the
// duplicate-order sentinel.
func (ctrl *PaymentController) CreatePreference(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		utils.BuildGatewayErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	userID, _ := r.Context().Value(constvars.CONTEXT_USER_ID_KEY).(string)

	ctrl.Log.Debug("Create preference processing started",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEndpointKey, r.URL.Path),
		zap.String(constvars.LoggingMethodKey, r.Method),
	)

	request := new(requests.CreatePreference)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		ctrl.Log.Error("Failed to parse create preference request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildGatewayErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildGatewayErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	response, err := ctrl.PaymentUsecase.CreatePreference(ctx, userID, request)
	if err != nil {
		utils.BuildGatewayErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("Create preference completed",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPrescriptionIDKey, request.PrescriptionID),
		zap.String(constvars.LoggingQuoteIDKey, request.QuoteID),
	)
	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	w.WriteHeader(constvars.StatusCreated)
	json.NewEncoder(w).Encode(response)
}

// CheckoutCallback receives the hosted-checkout provider's webhook. The
// provider retries on non-2xx, so only unexpected failures return an error
// status; an unknown order acknowledges with 200 to stop pointless retries.
func (ctrl *PaymentController) CheckoutCallback(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	ctrl.Log.Debug("Checkout callback processing started",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
	)

	request := new(requests.CheckoutCallback)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		ctrl.Log.Error("Failed to parse checkout callback",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := ctrl.PaymentUsecase.ProcessCallback(ctx, request); err != nil {
		if exceptions.IsKind(err, exceptions.KindOrderNotFound) {
			ctrl.Log.Warn("Checkout callback for unknown order",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingOrderIDKey, request.ExternalReference),
			)
			utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SuccessProcessedCallback, nil)
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SuccessProcessedCallback, nil)
}

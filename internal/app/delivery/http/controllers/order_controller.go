package controllers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"farmalink-service/internal/app/contracts"
	"farmalink-service/internal/app/services/core/payflow"
	"farmalink-service/internal/pkg/constvars"
	"farmalink-service/internal/pkg/dto/responses"
	"farmalink-service/internal/pkg/exceptions"
	"farmalink-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type OrderController struct {
	Log             *zap.Logger
	OrderRepository contracts.OrderRepository
}

var (
	orderControllerInstance *OrderController
	onceOrderController     sync.Once
)

func NewOrderController(logger *zap.Logger, orderRepository contracts.OrderRepository) *OrderController {
	onceOrderController.Do(func() {
		instance := &OrderController{
			Log:             logger,
			OrderRepository: orderRepository,
		}
		orderControllerInstance = instance
	})
	return orderControllerInstance
}

// FindLatestByPrescriptionID returns the most recent order for a
// prescription, or a null payload when none exists yet.
func (ctrl *OrderController) FindLatestByPrescriptionID(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	prescriptionID := chi.URLParam(r, constvars.URLParamPrescriptionID)
	if prescriptionID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingParameters(nil))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, err := ctrl.OrderRepository.FindLatestByPrescriptionID(ctx, prescriptionID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	var payload *responses.Order
	if order != nil {
		payload = responses.NewOrder(order)
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SuccessGetLatestOrder, payload)
}

// GetActionState derives the payment button action for a quote from the
// latest order of its prescription. Stateless variant of the flow
// controller's ActionState, for clients that poll instead of subscribing.
func (ctrl *OrderController) GetActionState(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	prescriptionID := chi.URLParam(r, constvars.URLParamPrescriptionID)
	quoteID := r.URL.Query().Get(constvars.URLQueryParamQuoteID)
	if prescriptionID == "" || quoteID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingParameters(nil))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, err := ctrl.OrderRepository.FindLatestByPrescriptionID(ctx, prescriptionID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	action := payflow.ResolveButtonAction(quoteID, order)
	ctrl.Log.Debug("Action state resolved",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPrescriptionIDKey, prescriptionID),
		zap.String(constvars.LoggingQuoteIDKey, quoteID),
		zap.String("action", string(action)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SuccessGetActionState, responses.ActionState{Action: string(action)})
}

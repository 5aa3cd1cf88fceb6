package controllers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"farmalink-service/internal/app/contracts"
	"farmalink-service/internal/pkg/constvars"
	"farmalink-service/internal/pkg/dto/responses"
	"farmalink-service/internal/pkg/exceptions"
	"farmalink-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type QuoteController struct {
	Log          *zap.Logger
	QuoteUsecase contracts.QuoteUsecase
}

var (
	quoteControllerInstance *QuoteController
	onceQuoteController     sync.Once
)

func NewQuoteController(logger *zap.Logger, quoteUsecase contracts.QuoteUsecase) *QuoteController {
	onceQuoteController.Do(func() {
		instance := &QuoteController{
			Log:          logger,
			QuoteUsecase: quoteUsecase,
		}
		quoteControllerInstance = instance
	})
	return quoteControllerInstance
}

func (ctrl *QuoteController) FindByID(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	prescriptionID := chi.URLParam(r, constvars.URLParamPrescriptionID)
	quoteID := chi.URLParam(r, constvars.URLParamQuoteID)
	if prescriptionID == "" || quoteID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingParameters(nil))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	quote, err := ctrl.QuoteUsecase.GetByID(ctx, prescriptionID, quoteID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SuccessGetQuote, responses.NewQuote(quote, ""))
}

// CheckAvailability does the fresh, cache-bypassing re-read the payment flow
// performs right before submitting an intent.
func (ctrl *QuoteController) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	prescriptionID := chi.URLParam(r, constvars.URLParamPrescriptionID)
	quoteID := chi.URLParam(r, constvars.URLParamQuoteID)
	if prescriptionID == "" || quoteID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingParameters(nil))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	quote, err := ctrl.QuoteUsecase.CheckAvailability(ctx, prescriptionID, quoteID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Debug("Quote availability confirmed",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQuoteIDKey, quoteID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SuccessGetQuote, responses.NewQuote(quote, ""))
}

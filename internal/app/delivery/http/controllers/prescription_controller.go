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

type PrescriptionController struct {
	Log                 *zap.Logger
	PrescriptionUsecase contracts.PrescriptionUsecase
}

var (
	prescriptionControllerInstance *PrescriptionController
	oncePrescriptionController     sync.Once
)

func NewPrescriptionController(logger *zap.Logger, prescriptionUsecase contracts.PrescriptionUsecase) *PrescriptionController {
	oncePrescriptionController.Do(func() {
		instance := &PrescriptionController{
			Log:                 logger,
			PrescriptionUsecase: prescriptionUsecase,
		}
		prescriptionControllerInstance = instance
	})
	return prescriptionControllerInstance
}

func (ctrl *PrescriptionController) FindByID(w http.ResponseWriter, r *http.Request) {
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

	prescription, err := ctrl.PrescriptionUsecase.GetByID(ctx, prescriptionID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	imageURL, err := ctrl.PrescriptionUsecase.GetImageURL(ctx, prescriptionID)
	if err != nil {
		ctrl.Log.Warn("Prescription image URL unavailable",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPrescriptionIDKey, prescriptionID),
			zap.Error(err),
		)
		imageURL = ""
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SuccessGetPrescription, responses.NewPrescription(prescription, imageURL))
}

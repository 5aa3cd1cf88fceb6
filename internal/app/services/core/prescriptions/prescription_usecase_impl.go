package prescriptions

import (
	"context"
	"sync"
	"time"

	"farmalink-service/internal/app/contracts"
	"farmalink-service/internal/app/models"
	"farmalink-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

const imageURLExpiry = 15 * time.Minute

type prescriptionUsecase struct {
	PrescriptionRepository contracts.PrescriptionRepository
	StorageService         contracts.StorageService
	Log                    *zap.Logger
}

var (
	prescriptionUsecaseInstance contracts.PrescriptionUsecase
	oncePrescriptionUsecase     sync.Once
)

func NewPrescriptionUsecase(
	prescriptionRepository contracts.PrescriptionRepository,
	storageService contracts.StorageService,
	logger *zap.Logger,
) contracts.PrescriptionUsecase {
	oncePrescriptionUsecase.Do(func() {
		instance := &prescriptionUsecase{
			PrescriptionRepository: prescriptionRepository,
			StorageService:         storageService,
			Log:                    logger,
		}
		prescriptionUsecaseInstance = instance
	})
	return prescriptionUsecaseInstance
}

func (uc *prescriptionUsecase) GetByID(ctx context.Context, prescriptionID string) (*models.Prescription, error) {
	prescription, err := uc.PrescriptionRepository.FindByID(ctx, prescriptionID)
	if err != nil {
		return nil, err
	}
	if prescription == nil {
		return nil, exceptions.ErrPrescriptionNotFound(nil)
	}
	return prescription, nil
}

func (uc *prescriptionUsecase) GetImageURL(ctx context.Context, prescriptionID string) (string, error) {
	prescription, err := uc.GetByID(ctx, prescriptionID)
	if err != nil {
		return "", err
	}
	if prescription.ImageRef == "" {
		return "", nil
	}
	return uc.StorageService.PresignedGetURL(ctx, prescription.ImageRef, imageURLExpiry)
}

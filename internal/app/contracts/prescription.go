package contracts

import (
	"context"

	"farmalink-service/internal/app/models"
)

type PrescriptionRepository interface {
	FindByID(ctx context.Context, prescriptionID string) (*models.Prescription, error)
}

type PrescriptionUsecase interface {
	GetByID(ctx context.Context, prescriptionID string) (*models.Prescription, error)
	// GetImageURL resolves the prescription's image reference into a
	// short-lived presigned URL.
	GetImageURL(ctx context.Context, prescriptionID string) (string, error)
}

package contracts

import (
	"context"

	"farmalink-service/internal/app/models"
)

type QuoteRepository interface {
	// FindByID may serve from the read-through cache.
	FindByID(ctx context.Context, prescriptionID, quoteID string) (*models.Quote, error)
	// FindByIDFresh always hits the document store, bypassing the cache.
	// The availability re-check at pay time depends on this.
	FindByIDFresh(ctx context.Context, prescriptionID, quoteID string) (*models.Quote, error)
}

type QuoteUsecase interface {
	GetByID(ctx context.Context, prescriptionID, quoteID string) (*models.Quote, error)
	// CheckAvailability re-reads the quote and returns it only when it is
	// still offerable. Missing quotes and withdrawn quotes come back as
	// distinct error kinds; read errors are treated as unavailable.
	CheckAvailability(ctx context.Context, prescriptionID, quoteID string) (*models.Quote, error)
}

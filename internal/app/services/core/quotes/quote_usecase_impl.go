package quotes

import (
	"context"
	"sync"

	"farmalink-service/internal/app/contracts"
	"farmalink-service/internal/app/models"
	"farmalink-service/internal/pkg/constvars"
	"farmalink-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

type quoteUsecase struct {
	QuoteRepository contracts.QuoteRepository
	Log             *zap.Logger
}

var (
	quoteUsecaseInstance contracts.QuoteUsecase
	onceQuoteUsecase     sync.Once
)

func NewQuoteUsecase(quoteRepository contracts.QuoteRepository, logger *zap.Logger) contracts.QuoteUsecase {
	onceQuoteUsecase.Do(func() {
		instance := &quoteUsecase{
			QuoteRepository: quoteRepository,
			Log:             logger,
		}
		quoteUsecaseInstance = instance
	})
	return quoteUsecaseInstance
}

func (uc *quoteUsecase) GetByID(ctx context.Context, prescriptionID, quoteID string) (*models.Quote, error) {
	quote, err := uc.QuoteRepository.FindByID(ctx, prescriptionID, quoteID)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, exceptions.ErrQuoteNotFound(nil)
	}
	return quote, nil
}

// CheckAvailability re-validates, at payment time, that the quote is still
// offerable. The render snapshot may be arbitrarily stale: the quote can be
// withdrawn or claimed between render and tap, so this always bypasses the
// cache. A read error is conservatively treated as unavailable.
func (uc *quoteUsecase) CheckAvailability(ctx context.Context, prescriptionID, quoteID string) (*models.Quote, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	quote, err := uc.QuoteRepository.FindByIDFresh(ctx, prescriptionID, quoteID)
	if err != nil {
		uc.Log.Error("quoteUsecase.CheckAvailability read failed, treating as unavailable",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingQuoteIDKey, quoteID),
			zap.Error(err),
		)
		return nil, exceptions.ErrQuoteUnavailable(err)
	}
	if quote == nil {
		uc.Log.Info("quoteUsecase.CheckAvailability quote not found",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingQuoteIDKey, quoteID),
		)
		return nil, exceptions.ErrQuoteNotFound(nil)
	}
	if !quote.Offerable() {
		uc.Log.Info("quoteUsecase.CheckAvailability quote no longer offerable",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingQuoteIDKey, quoteID),
			zap.String(constvars.LoggingQuoteStateKey, string(quote.State)),
		)
		return nil, exceptions.ErrQuoteUnavailable(nil)
	}
	return quote, nil
}

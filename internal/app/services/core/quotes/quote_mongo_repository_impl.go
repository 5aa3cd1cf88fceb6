package quotes

import (
	"context"
	"fmt"
	"time"

	"farmalink-service/internal/app/contracts"
	"farmalink-service/internal/app/models"
	"farmalink-service/internal/pkg/constvars"
	"farmalink-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type QuoteMongoRepository struct {
	Collection *mongo.Collection
	RedisRepo  contracts.RedisRepository
	Log        *zap.Logger
}

func NewQuoteMongoRepository(db *mongo.Client, dbName string, redisRepo contracts.RedisRepository, logger *zap.Logger) contracts.QuoteRepository {
	return &QuoteMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionQuotes),
		RedisRepo:  redisRepo,
		Log:        logger,
	}
}

// FindByID serves renders: it consults the Redis read-through cache first,
// so the value may be up to the cache TTL stale. Payment-time checks must
// use FindByIDFresh instead.
func (r *QuoteMongoRepository) FindByID(ctx context.Context, prescriptionID, quoteID string) (*models.Quote, error) {
	cacheKey := fmt.Sprintf(constvars.QuoteCacheKeyFormat, prescriptionID, quoteID)

	cached, err := r.RedisRepo.Get(ctx, cacheKey)
	if err == nil && cached != "" {
		var quote models.Quote
		if err := json.Unmarshal([]byte(cached), &quote); err == nil {
			return &quote, nil
		}
		// Corrupt cache entries fall through to the store.
	}

	quote, err := r.FindByIDFresh(ctx, prescriptionID, quoteID)
	if err != nil || quote == nil {
		return quote, err
	}

	if payload, err := json.Marshal(quote); err == nil {
		if err := r.RedisRepo.Set(ctx, cacheKey, payload, constvars.QuoteCacheExpirationInSeconds*time.Second); err != nil {
			r.Log.Warn("QuoteMongoRepository.FindByID cache write failed",
				zap.String(constvars.LoggingQuoteIDKey, quoteID),
				zap.Error(err),
			)
		}
	}
	return quote, nil
}

// FindByIDFresh always reads the document store.
func (r *QuoteMongoRepository) FindByIDFresh(ctx context.Context, prescriptionID, quoteID string) (*models.Quote, error) {
	var quote models.Quote
	err := r.Collection.FindOne(ctx, bson.M{"_id": quoteID, "recetaId": prescriptionID}).Decode(&quote)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &quote, nil
}

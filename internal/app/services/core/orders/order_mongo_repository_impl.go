package orders

import (
	"context"
	"sync"

	"farmalink-service/internal/app/contracts"
	"farmalink-service/internal/app/models"
	"farmalink-service/internal/pkg/constvars"
	"farmalink-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OrderMongoRepository struct {
	Collection *mongo.Collection
}

func NewOrderMongoRepository(db *mongo.Client, dbName string) contracts.OrderRepository {
	return &OrderMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionOrders),
	}
}

func (r *OrderMongoRepository) Create(ctx context.Context, order *models.Order) (string, error) {
	_, err := r.Collection.InsertOne(ctx, order)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return order.ID, nil
}

func (r *OrderMongoRepository) FindByID(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	err := r.Collection.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &order, nil
}

func (r *OrderMongoRepository) FindByExternalPaymentID(ctx context.Context, externalPaymentID string) (*models.Order, error) {
	var order models.Order
	err := r.Collection.FindOne(ctx, bson.M{"pagoExternoId": externalPaymentID}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &order, nil
}

// FindLatestByPrescriptionID is the "latest order for prescription P" point
// read: descending by creation time, limit 1. If more than one order exists
// (a violation of the soft one-active-order invariant) only the most recent
// is surfaced.
func (r *OrderMongoRepository) FindLatestByPrescriptionID(ctx context.Context, prescriptionID string) (*models.Order, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	var order models.Order
	err := r.Collection.FindOne(ctx, bson.M{"recetaId": prescriptionID}, opts).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &order, nil
}

func (r *OrderMongoRepository) Update(ctx context.Context, order *models.Order) error {
	result, err := r.Collection.ReplaceOne(ctx, bson.M{"_id": order.ID}, order)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	if result.MatchedCount == 0 {
		return exceptions.ErrOrderNotFound(nil)
	}
	return nil
}

// Watch opens a change stream over orders for the prescription and adapts it
// into an OrderWatch. Each insert/update/replace is delivered as the full
// order document.
func (r *OrderMongoRepository) Watch(ctx context.Context, prescriptionID string) (contracts.OrderWatch, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"fullDocument.recetaId": prescriptionID,
			"operationType":         bson.M{"$in": bson.A{"insert", "update", "replace"}},
		}}},
	}
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)
	stream, err := r.Collection.Watch(ctx, pipeline, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBWatchCollection(err)
	}

	watch := newChangeStreamWatch(stream)
	go watch.run(ctx)
	return watch, nil
}

type changeStreamEvent struct {
	FullDocument *models.Order `bson:"fullDocument"`
}

type changeStreamWatch struct {
	stream *mongo.ChangeStream
	events chan *models.Order

	mu  sync.Mutex
	err error
}

func newChangeStreamWatch(stream *mongo.ChangeStream) *changeStreamWatch {
	return &changeStreamWatch{
		stream: stream,
		events: make(chan *models.Order),
	}
}

func (w *changeStreamWatch) run(ctx context.Context) {
	defer close(w.events)

	for w.stream.Next(ctx) {
		var event changeStreamEvent
		if err := w.stream.Decode(&event); err != nil {
			w.setErr(exceptions.ErrStreamError(err))
			return
		}
		if event.FullDocument == nil {
			continue
		}
		select {
		case w.events <- event.FullDocument:
		case <-ctx.Done():
			w.setErr(exceptions.ErrStreamError(ctx.Err()))
			return
		}
	}
	if err := w.stream.Err(); err != nil && err != context.Canceled {
		w.setErr(exceptions.ErrStreamError(err))
	}
}

func (w *changeStreamWatch) setErr(err error) {
	w.mu.Lock()
	w.err = err
	w.mu.Unlock()
}

func (w *changeStreamWatch) Events() <-chan *models.Order {
	return w.events
}

func (w *changeStreamWatch) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

func (w *changeStreamWatch) Close(ctx context.Context) error {
	return w.stream.Close(ctx)
}

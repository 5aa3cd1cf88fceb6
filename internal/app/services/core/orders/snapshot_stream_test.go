package orders

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"farmalink-service/internal/app/contracts"
	"farmalink-service/internal/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubWatch struct {
	events chan *models.Order
	err    error
	mu     sync.Mutex
	closed bool
}

func newStubWatch() *stubWatch {
	return &stubWatch{events: make(chan *models.Order, 8)}
}

func (w *stubWatch) Events() <-chan *models.Order { return w.events }

func (w *stubWatch) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

func (w *stubWatch) fail(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.err = err
	if !w.closed {
		w.closed = true
		close(w.events)
	}
}

func (w *stubWatch) Close(context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.closed {
		w.closed = true
		close(w.events)
	}
	return nil
}

type stubOrderRepository struct {
	seed    *models.Order
	seedErr error
	watch   *stubWatch
}

func (r *stubOrderRepository) Create(ctx context.Context, order *models.Order) (string, error) {
	return order.ID, nil
}

func (r *stubOrderRepository) FindByID(context.Context, string) (*models.Order, error) {
	return nil, nil
}

func (r *stubOrderRepository) FindByExternalPaymentID(context.Context, string) (*models.Order, error) {
	return nil, nil
}

func (r *stubOrderRepository) FindLatestByPrescriptionID(context.Context, string) (*models.Order, error) {
	return r.seed, r.seedErr
}

func (r *stubOrderRepository) Update(context.Context, *models.Order) error { return nil }

func (r *stubOrderRepository) Watch(context.Context, string) (contracts.OrderWatch, error) {
	return r.watch, nil
}

func TestSnapshotStreamSeedsThenFollows(t *testing.T) {
	repo := &stubOrderRepository{
		seed:  &models.Order{ID: "ped-1", State: models.OrderPendingPayment},
		watch: newStubWatch(),
	}
	stream, err := NewSnapshotStream(context.Background(), repo, "rec-1", zap.NewNop())
	require.NoError(t, err)
	defer stream.Close(context.Background())

	snap := <-stream.Updates()
	require.NotNil(t, snap.Order)
	assert.Equal(t, "ped-1", snap.Order.ID)
	assert.False(t, snap.Loading)

	repo.watch.events <- &models.Order{ID: "ped-1", State: models.OrderPaid}
	snap = <-stream.Updates()
	require.NotNil(t, snap.Order)
	assert.Equal(t, models.OrderPaid, snap.Order.State)
	assert.Equal(t, models.OrderPaid, stream.Current().Order.State)
}

func TestSnapshotStreamSeedsNilWhenNoOrder(t *testing.T) {
	repo := &stubOrderRepository{watch: newStubWatch()}
	stream, err := NewSnapshotStream(context.Background(), repo, "rec-1", zap.NewNop())
	require.NoError(t, err)
	defer stream.Close(context.Background())

	snap := <-stream.Updates()
	assert.Nil(t, snap.Order)
	assert.NoError(t, snap.Err)
}

func TestSnapshotStreamStartsLoading(t *testing.T) {
	repo := &stubOrderRepository{watch: newStubWatch()}
	stream, err := NewSnapshotStream(context.Background(), repo, "rec-1", zap.NewNop())
	require.NoError(t, err)
	defer stream.Close(context.Background())

	// Before the seed lands the snapshot may still be the loading marker;
	// afterwards Loading stays false forever.
	snap := stream.Current()
	if snap.Loading {
		snap = <-stream.Updates()
	}
	assert.False(t, snap.Loading)
}

func TestSnapshotStreamCoalescesWhenConsumerLags(t *testing.T) {
	repo := &stubOrderRepository{watch: newStubWatch()}
	stream, err := NewSnapshotStream(context.Background(), repo, "rec-1", zap.NewNop())
	require.NoError(t, err)
	defer stream.Close(context.Background())

	repo.watch.events <- &models.Order{ID: "ped-1", State: models.OrderPendingPayment}
	repo.watch.events <- &models.Order{ID: "ped-1", State: models.OrderPending}
	repo.watch.events <- &models.Order{ID: "ped-1", State: models.OrderPaid}

	// The consumer only ever observes the newest value once it catches up.
	require.Eventually(t, func() bool {
		current := stream.Current()
		return current.Order != nil && current.Order.State == models.OrderPaid
	}, time.Second, 5*time.Millisecond)

	var last Snapshot
	for snap := range stream.Updates() {
		last = snap
		if snap.Order != nil && snap.Order.State == models.OrderPaid {
			break
		}
	}
	require.NotNil(t, last.Order)
	assert.Equal(t, models.OrderPaid, last.Order.State)
}

func TestSnapshotStreamErrorLatches(t *testing.T) {
	repo := &stubOrderRepository{watch: newStubWatch()}
	stream, err := NewSnapshotStream(context.Background(), repo, "rec-1", zap.NewNop())
	require.NoError(t, err)
	defer stream.Close(context.Background())

	<-stream.Updates()

	subscriptionErr := errors.New("connection reset")
	repo.watch.fail(subscriptionErr)

	require.Eventually(t, func() bool {
		return stream.Current().Err != nil
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, subscriptionErr, stream.Current().Err)
}

func TestSnapshotStreamSeedErrorLatches(t *testing.T) {
	repo := &stubOrderRepository{
		seedErr: errors.New("read failed"),
		watch:   newStubWatch(),
	}
	stream, err := NewSnapshotStream(context.Background(), repo, "rec-1", zap.NewNop())
	require.NoError(t, err)
	defer stream.Close(context.Background())

	snap := <-stream.Updates()
	assert.Error(t, snap.Err)
}

func TestSnapshotStreamCloseEndsUpdates(t *testing.T) {
	repo := &stubOrderRepository{watch: newStubWatch()}
	stream, err := NewSnapshotStream(context.Background(), repo, "rec-1", zap.NewNop())
	require.NoError(t, err)

	<-stream.Updates()
	require.NoError(t, stream.Close(context.Background()))
	require.NoError(t, stream.Close(context.Background()), "close must be idempotent")

	_, open := <-stream.Updates()
	assert.False(t, open, "updates channel must close after teardown")
}

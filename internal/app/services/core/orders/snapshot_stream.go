package orders

import (
	"context"
	"sync"

	"farmalink-service/internal/app/contracts"
	"farmalink-service/internal/app/models"
	"farmalink-service/internal/pkg/constvars"

	"go.uber.org/zap"
)

// Snapshot is the most recently observed order for a prescription, or nil.
// It is replaced atomically on every push; there is never a partially
// updated snapshot.
type Snapshot struct {
	Order   *models.Order
	Loading bool
	Err     error
}

// SnapshotStream surfaces the latest order for one prescription as a live
// value. It opens a single subscription, seeds it with a point read and then
// follows pushes. On subscription failure the error latches and the stream
// stops; the owner may create a new stream to retry.
type SnapshotStream struct {
	prescriptionID string
	log            *zap.Logger

	mu      sync.Mutex
	current Snapshot

	updates   chan Snapshot
	watch     contracts.OrderWatch
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewSnapshotStream subscribes to the latest order for prescriptionID. The
// watch is opened before the seeding read so a write landing between the two
// is still delivered.
func NewSnapshotStream(ctx context.Context, repo contracts.OrderRepository, prescriptionID string, log *zap.Logger) (*SnapshotStream, error) {
	streamCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))

	watch, err := repo.Watch(streamCtx, prescriptionID)
	if err != nil {
		cancel()
		return nil, err
	}

	s := &SnapshotStream{
		prescriptionID: prescriptionID,
		log:            log,
		current:        Snapshot{Loading: true},
		updates:        make(chan Snapshot, 1),
		watch:          watch,
		cancel:         cancel,
	}

	go s.run(streamCtx, repo)
	return s, nil
}

func (s *SnapshotStream) run(ctx context.Context, repo contracts.OrderRepository) {
	// run is the only writer; closing here lets consumers range over Updates.
	defer close(s.updates)

	seed, err := repo.FindLatestByPrescriptionID(ctx, s.prescriptionID)
	if err != nil {
		s.log.Error("SnapshotStream seed read failed",
			zap.String(constvars.LoggingPrescriptionIDKey, s.prescriptionID),
			zap.Error(err),
		)
		s.emit(Snapshot{Err: err})
		return
	}
	s.emit(Snapshot{Order: seed})

	for order := range s.watch.Events() {
		s.emit(Snapshot{Order: order})
	}

	if err := s.watch.Err(); err != nil {
		s.log.Error("SnapshotStream subscription failed",
			zap.String(constvars.LoggingPrescriptionIDKey, s.prescriptionID),
			zap.Error(err),
		)
		s.emit(Snapshot{Err: err})
	}
}

// emit replaces the current snapshot and pushes it to Updates, coalescing
// when the consumer lags. Consumers therefore see at-least-once delivery of
// a possibly stale value, never exactly-once delivery of each transition.
func (s *SnapshotStream) emit(snap Snapshot) {
	s.mu.Lock()
	s.current = snap
	s.mu.Unlock()

	for {
		select {
		case s.updates <- snap:
			return
		default:
			select {
			case <-s.updates:
			default:
			}
		}
	}
}

// Current returns the latest snapshot.
func (s *SnapshotStream) Current() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Updates yields snapshot replacements. Stale intermediates may be dropped.
func (s *SnapshotStream) Updates() <-chan Snapshot {
	return s.updates
}

// Close tears the subscription down. Safe to call more than once.
func (s *SnapshotStream) Close(ctx context.Context) error {
	var err error
	s.closeOnce.Do(func() {
		s.cancel()
		err = s.watch.Close(ctx)
	})
	return err
}

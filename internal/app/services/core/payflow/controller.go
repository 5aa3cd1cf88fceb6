package payflow

import (
	"context"
	"sync"
	"sync/atomic"

	"farmalink-service/internal/app/contracts"
	"farmalink-service/internal/app/services/core/orders"
	"farmalink-service/internal/pkg/constvars"
	"farmalink-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

// Controller drives the payment flow for one (prescription, quote) pairing.
// It owns the order snapshot subscription, derives the button action from the
// latest snapshot and exposes the single imperative Pay operation. One
// controller per purchase attempt; the in-flight latch is instance-local and
// must not be shared across prescriptions.
type Controller struct {
	prescriptionID string
	quoteID        string

	orderRepository contracts.OrderRepository
	quoteUsecase    contracts.QuoteUsecase
	userRepository  contracts.UserRepository
	intentBuilder   contracts.IntentBuilder
	linkOpener      contracts.LinkOpener
	confirmer       contracts.Confirmer
	auth            contracts.AuthProvider
	log             *zap.Logger

	stream   *orders.SnapshotStream
	notifier *StatusNotifier

	inFlight  atomic.Bool
	closeOnce sync.Once
	done      chan struct{}
}

type ControllerDeps struct {
	OrderRepository contracts.OrderRepository
	QuoteUsecase    contracts.QuoteUsecase
	UserRepository  contracts.UserRepository
	IntentBuilder   contracts.IntentBuilder
	LinkOpener      contracts.LinkOpener
	Confirmer       contracts.Confirmer
	Auth            contracts.AuthProvider
	Registry        contracts.NotifiedRegistry
	Sink            contracts.NotificationSink
	Log             *zap.Logger
}

// NewController subscribes to the latest order for prescriptionID and starts
// feeding snapshots to the status notifier. Callers must Close the controller
// when the screen goes away or the subscription leaks.
func NewController(ctx context.Context, prescriptionID, quoteID string, deps ControllerDeps) (*Controller, error) {
	stream, err := orders.NewSnapshotStream(ctx, deps.OrderRepository, prescriptionID, deps.Log)
	if err != nil {
		return nil, err
	}

	c := &Controller{
		prescriptionID:  prescriptionID,
		quoteID:         quoteID,
		orderRepository: deps.OrderRepository,
		quoteUsecase:    deps.QuoteUsecase,
		userRepository:  deps.UserRepository,
		intentBuilder:   deps.IntentBuilder,
		linkOpener:      deps.LinkOpener,
		confirmer:       deps.Confirmer,
		auth:            deps.Auth,
		log:             deps.Log,
		stream:          stream,
		notifier:        NewStatusNotifier(quoteID, deps.Registry, deps.Sink, deps.Log),
		done:            make(chan struct{}),
	}
	go c.observe()
	return c, nil
}

func (c *Controller) observe() {
	defer close(c.done)
	for snap := range c.stream.Updates() {
		c.notifier.Observe(snap)
	}
}

// ActionState derives the payment button action from the latest snapshot.
// While a Pay call is in flight, or the stream has not seeded yet, the
// button shows processing so the user cannot double-submit.
func (c *Controller) ActionState() ButtonAction {
	if c.inFlight.Load() {
		return ActionProcessing
	}
	snap := c.stream.Current()
	if snap.Loading {
		return ActionProcessing
	}
	if snap.Err != nil {
		return ActionBlocked
	}
	return ResolveButtonAction(c.quoteID, snap.Order)
}

// StreamErr reports whether the order subscription has died. The action state
// alone cannot tell a dead subscription apart from a genuinely blocked quote,
// so hosts check this to render a connection-error screen instead of the
// button. Non-nil once the stream latches an error; nil while healthy.
func (c *Controller) StreamErr() error {
	return c.stream.Current().Err
}

// Pay runs one payment attempt end to end: delivery address check, fresh
// availability re-read, intent creation, then the handoff to the hosted
// checkout. Re-entrant calls are rejected while an attempt is outstanding;
// the latch is released on every exit path.
func (c *Controller) Pay(ctx context.Context) error {
	if !c.inFlight.CompareAndSwap(false, true) {
		return exceptions.ErrPaymentInFlight(nil)
	}
	defer c.inFlight.Store(false)

	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	userID, ok := c.auth.CurrentUserID(ctx)
	if !ok {
		return exceptions.ErrUnauthenticated(nil)
	}

	user, err := c.userRepository.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return exceptions.ErrUnauthenticated(nil)
	}
	if !user.Address.Complete() {
		return exceptions.ErrAddressIncomplete(nil)
	}

	// The rendered price may be arbitrarily stale; the quote could have been
	// withdrawn or claimed between render and tap. Abort before touching the
	// gateway when it is no longer offerable.
	quote, err := c.quoteUsecase.CheckAvailability(ctx, c.prescriptionID, c.quoteID)
	if err != nil {
		return err
	}

	redirectURL, err := c.intentBuilder.CreateIntent(ctx, contracts.PaymentIntent{
		UserID:         userID,
		PharmacyID:     quote.PharmacyID,
		PrescriptionID: c.prescriptionID,
		QuoteID:        c.quoteID,
	})
	if err != nil {
		c.log.Info("controller.Pay intent rejected",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingQuoteIDKey, c.quoteID),
			zap.String(constvars.LoggingErrorTypeKey, string(exceptions.KindOf(err))),
		)
		return err
	}

	if err := c.linkOpener.Open(ctx, redirectURL); err != nil {
		return exceptions.ErrGatewayFailure(err)
	}

	// Advisory only. The answer does not change order state; the snapshot
	// stream is the source of truth for what actually happened.
	if confirmed, confirmErr := c.confirmer.Confirm(ctx, constvars.PromptPaymentCompleted); confirmErr == nil {
		c.log.Info("controller.Pay user advisory answered",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Bool("confirmed", confirmed),
		)
	}
	return nil
}

// Close tears down the snapshot subscription and waits for the observe loop
// to stop. Safe to call more than once.
func (c *Controller) Close(ctx context.Context) error {
	var err error
	c.closeOnce.Do(func() {
		err = c.stream.Close(ctx)
		<-c.done
	})
	return err
}

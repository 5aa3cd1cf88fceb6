package payflow

import (
	"context"
	"sync"
	"testing"
	"time"

	"farmalink-service/internal/app/contracts"
	"farmalink-service/internal/app/models"
	"farmalink-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeWatch struct {
	events chan *models.Order
	err    error
	once   sync.Once
}

func newFakeWatch() *fakeWatch {
	return &fakeWatch{events: make(chan *models.Order, 8)}
}

func (w *fakeWatch) Events() <-chan *models.Order { return w.events }
func (w *fakeWatch) Err() error                   { return w.err }
func (w *fakeWatch) Close(context.Context) error {
	w.once.Do(func() { close(w.events) })
	return nil
}

// fail terminates the subscription with err, like a dropped change stream.
func (w *fakeWatch) fail(err error) {
	w.once.Do(func() {
		w.err = err
		close(w.events)
	})
}

type fakeOrderRepository struct {
	mu     sync.Mutex
	latest *models.Order
	watch  *fakeWatch
}

func (r *fakeOrderRepository) Create(ctx context.Context, order *models.Order) (string, error) {
	return order.ID, nil
}

func (r *fakeOrderRepository) FindByID(context.Context, string) (*models.Order, error) {
	return nil, nil
}

func (r *fakeOrderRepository) FindByExternalPaymentID(context.Context, string) (*models.Order, error) {
	return nil, nil
}

func (r *fakeOrderRepository) FindLatestByPrescriptionID(context.Context, string) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.latest, nil
}

func (r *fakeOrderRepository) Update(context.Context, *models.Order) error { return nil }

func (r *fakeOrderRepository) Watch(context.Context, string) (contracts.OrderWatch, error) {
	return r.watch, nil
}

type fakeQuoteUsecase struct {
	quote *models.Quote
	err   error
}

func (u *fakeQuoteUsecase) GetByID(context.Context, string, string) (*models.Quote, error) {
	return u.quote, u.err
}

func (u *fakeQuoteUsecase) CheckAvailability(context.Context, string, string) (*models.Quote, error) {
	return u.quote, u.err
}

type fakeUserRepository struct {
	user *models.User
}

func (r *fakeUserRepository) FindByID(context.Context, string) (*models.User, error) {
	return r.user, nil
}

type fakeIntentBuilder struct {
	mu    sync.Mutex
	calls int
	url   string
	err   error
	block chan struct{}
}

func (b *fakeIntentBuilder) CreateIntent(ctx context.Context, intent contracts.PaymentIntent) (string, error) {
	b.mu.Lock()
	b.calls++
	b.mu.Unlock()
	if b.block != nil {
		<-b.block
	}
	return b.url, b.err
}

func (b *fakeIntentBuilder) callCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}

type fakeLinkOpener struct {
	mu   sync.Mutex
	urls []string
}

func (o *fakeLinkOpener) Open(ctx context.Context, url string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.urls = append(o.urls, url)
	return nil
}

type fixedAuth struct{ userID string }

func (a fixedAuth) CurrentUserID(context.Context) (string, bool) {
	return a.userID, a.userID != ""
}

func completeUser() *models.User {
	return &models.User{
		ID:    "usr-1",
		Name:  "Ana",
		Phone: "+54911",
		Address: &models.DeliveryAddress{
			Street:   "Av. Corrientes",
			Number:   "1234",
			City:     "CABA",
			Province: "Buenos Aires",
		},
	}
}

func offerableQuote() *models.Quote {
	price := 1500.0
	return &models.Quote{
		ID:             "cot-1",
		PrescriptionID: "rec-1",
		PharmacyID:     "farm-1",
		State:          models.QuoteQuoted,
		Price:          &price,
	}
}

type controllerFixture struct {
	repo    *fakeOrderRepository
	quotes  *fakeQuoteUsecase
	users   *fakeUserRepository
	builder *fakeIntentBuilder
	opener  *fakeLinkOpener
	sink    *recordingSink
}

func newControllerFixture() *controllerFixture {
	return &controllerFixture{
		repo:    &fakeOrderRepository{watch: newFakeWatch()},
		quotes:  &fakeQuoteUsecase{quote: offerableQuote()},
		users:   &fakeUserRepository{user: completeUser()},
		builder: &fakeIntentBuilder{url: "https://checkout.example/p/abc"},
		opener:  &fakeLinkOpener{},
		sink:    &recordingSink{},
	}
}

func (f *controllerFixture) newController(t *testing.T) *Controller {
	t.Helper()
	controller, err := NewController(context.Background(), "rec-1", "cot-1", ControllerDeps{
		OrderRepository: f.repo,
		QuoteUsecase:    f.quotes,
		UserRepository:  f.users,
		IntentBuilder:   f.builder,
		LinkOpener:      f.opener,
		Confirmer:       NewAutoConfirmer(true),
		Auth:            fixedAuth{userID: "usr-1"},
		Registry:        NewNotifiedRegistry(),
		Sink:            f.sink,
		Log:             zap.NewNop(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { controller.Close(context.Background()) })
	return controller
}

func TestControllerPaySuccess(t *testing.T) {
	fixture := newControllerFixture()
	controller := fixture.newController(t)

	require.NoError(t, controller.Pay(context.Background()))
	assert.Equal(t, 1, fixture.builder.callCount())
	assert.Equal(t, []string{"https://checkout.example/p/abc"}, fixture.opener.urls)
}

func TestControllerPayAddressIncomplete(t *testing.T) {
	fixture := newControllerFixture()
	fixture.users.user.Address = &models.DeliveryAddress{Street: "Av. Corrientes"}
	controller := fixture.newController(t)

	err := controller.Pay(context.Background())
	require.Error(t, err)
	assert.True(t, exceptions.IsKind(err, exceptions.KindAddressIncomplete))
	assert.Zero(t, fixture.builder.callCount(), "gateway must not be called")
}

func TestControllerPayQuoteUnavailable(t *testing.T) {
	fixture := newControllerFixture()
	fixture.quotes.quote = nil
	fixture.quotes.err = exceptions.ErrQuoteUnavailable(nil)
	controller := fixture.newController(t)

	err := controller.Pay(context.Background())
	require.Error(t, err)
	assert.True(t, exceptions.IsKind(err, exceptions.KindQuoteUnavailable))
	assert.Zero(t, fixture.builder.callCount(), "gateway must not be called")
}

func TestControllerPayDuplicateActiveOrder(t *testing.T) {
	fixture := newControllerFixture()
	fixture.builder.url = ""
	fixture.builder.err = exceptions.ErrDuplicateActiveOrder(nil)
	controller := fixture.newController(t)

	err := controller.Pay(context.Background())
	require.Error(t, err)
	assert.True(t, exceptions.IsKind(err, exceptions.KindDuplicateActiveOrder))
	assert.Empty(t, fixture.opener.urls)
}

func TestControllerPayLatchRejectsReentry(t *testing.T) {
	fixture := newControllerFixture()
	fixture.builder.block = make(chan struct{})
	controller := fixture.newController(t)

	firstDone := make(chan error, 1)
	go func() { firstDone <- controller.Pay(context.Background()) }()

	require.Eventually(t, func() bool {
		return fixture.builder.callCount() == 1
	}, time.Second, 5*time.Millisecond)

	err := controller.Pay(context.Background())
	require.Error(t, err)
	assert.True(t, exceptions.IsKind(err, exceptions.KindPaymentInFlight))
	assert.Equal(t, ActionProcessing, controller.ActionState())

	close(fixture.builder.block)
	require.NoError(t, <-firstDone)

	// Latch released: a new attempt reaches the gateway again.
	require.NoError(t, controller.Pay(context.Background()))
	assert.Equal(t, 2, fixture.builder.callCount())
}

func TestControllerPayLatchReleasedOnFailure(t *testing.T) {
	fixture := newControllerFixture()
	fixture.builder.url = ""
	fixture.builder.err = exceptions.ErrGatewayFailure(nil)
	controller := fixture.newController(t)

	require.Error(t, controller.Pay(context.Background()))
	require.Error(t, controller.Pay(context.Background()))
	assert.Equal(t, 2, fixture.builder.callCount(), "latch must release after a failed attempt")
}

func TestControllerActionStateFollowsSnapshots(t *testing.T) {
	fixture := newControllerFixture()
	controller := fixture.newController(t)

	// Seed read found no order.
	require.Eventually(t, func() bool {
		return controller.ActionState() == ActionPay
	}, time.Second, 5*time.Millisecond)

	fixture.repo.watch.events <- &models.Order{ID: "ped-1", QuoteID: "cot-1", State: models.OrderPendingPayment}
	require.Eventually(t, func() bool {
		return controller.ActionState() == ActionProcessing
	}, time.Second, 5*time.Millisecond)

	fixture.repo.watch.events <- &models.Order{ID: "ped-1", QuoteID: "cot-1", State: models.OrderPaid}
	require.Eventually(t, func() bool {
		return controller.ActionState() == ActionPaid
	}, time.Second, 5*time.Millisecond)

	// The terminal push also produced the one-time notification.
	require.Eventually(t, func() bool {
		return len(fixture.sink.successIDs()) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestControllerStreamErrSurfacesConnectionFailure(t *testing.T) {
	fixture := newControllerFixture()
	controller := fixture.newController(t)

	require.Eventually(t, func() bool {
		return controller.ActionState() == ActionPay
	}, time.Second, 5*time.Millisecond)
	require.NoError(t, controller.StreamErr())

	fixture.repo.watch.fail(exceptions.ErrStreamError(assert.AnError))

	// A dead subscription blocks the button and is reported distinctly, so
	// the host can render a connection-error screen instead of "blocked by
	// another order".
	require.Eventually(t, func() bool {
		return controller.StreamErr() != nil
	}, time.Second, 5*time.Millisecond)
	assert.True(t, exceptions.IsKind(controller.StreamErr(), exceptions.KindStreamError))
	assert.Equal(t, ActionBlocked, controller.ActionState())
}

package payments

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"farmalink-service/internal/app/contracts"
	"farmalink-service/internal/app/models"
	"farmalink-service/internal/app/services/shared/orderevents"
	"farmalink-service/internal/pkg/dto/requests"
	"farmalink-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryOrderRepository struct {
	mu      sync.Mutex
	latest  *models.Order
	byID    map[string]*models.Order
	created []*models.Order
	updated []*models.Order
}

func newMemoryOrderRepository() *memoryOrderRepository {
	return &memoryOrderRepository{byID: make(map[string]*models.Order)}
}

func (r *memoryOrderRepository) Create(ctx context.Context, order *models.Order) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, order)
	r.byID[order.ID] = order
	return order.ID, nil
}

func (r *memoryOrderRepository) FindByID(ctx context.Context, orderID string) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byID[orderID], nil
}

func (r *memoryOrderRepository) FindByExternalPaymentID(context.Context, string) (*models.Order, error) {
	return nil, nil
}

func (r *memoryOrderRepository) FindLatestByPrescriptionID(context.Context, string) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.latest, nil
}

func (r *memoryOrderRepository) Update(ctx context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updated = append(r.updated, order)
	r.byID[order.ID] = order
	return nil
}

func (r *memoryOrderRepository) Watch(context.Context, string) (contracts.OrderWatch, error) {
	return nil, errors.New("not implemented")
}

type stubQuoteUsecase struct {
	quote *models.Quote
	err   error
}

func (u *stubQuoteUsecase) GetByID(context.Context, string, string) (*models.Quote, error) {
	return u.quote, u.err
}

func (u *stubQuoteUsecase) CheckAvailability(context.Context, string, string) (*models.Quote, error) {
	return u.quote, u.err
}

type stubUserRepository struct{ user *models.User }

func (r *stubUserRepository) FindByID(context.Context, string) (*models.User, error) {
	return r.user, nil
}

type stubCheckoutProvider struct {
	url   string
	err   error
	calls int
}

func (p *stubCheckoutProvider) CreateCheckout(ctx context.Context, order *models.Order) (string, error) {
	p.calls++
	return p.url, p.err
}

type stubLocker struct {
	acquired bool
	unlocked []string
}

func (l *stubLocker) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	return l.acquired, "lock-value", nil
}

func (l *stubLocker) Unlock(ctx context.Context, key, lockValue string) error {
	l.unlocked = append(l.unlocked, key)
	return nil
}

type stubPublisher struct {
	messages []orderevents.OrderEventMessage
	err      error
}

func (p *stubPublisher) Enqueue(ctx context.Context, message orderevents.OrderEventMessage) error {
	p.messages = append(p.messages, message)
	return p.err
}

type usecaseFixture struct {
	orders   *memoryOrderRepository
	quotes   *stubQuoteUsecase
	users    *stubUserRepository
	checkout *stubCheckoutProvider
	locker   *stubLocker
	events   *stubPublisher
	usecase  *paymentUsecase
}

func newUsecaseFixture() *usecaseFixture {
	price := 1500.0
	f := &usecaseFixture{
		orders: newMemoryOrderRepository(),
		quotes: &stubQuoteUsecase{quote: &models.Quote{
			ID:              "cot-1",
			PrescriptionID:  "rec-1",
			PharmacyID:      "farm-1",
			PharmacyName:    "Farmacia Central",
			PharmacyAddress: "Av. Rivadavia 5000",
			State:           models.QuoteQuoted,
			Price:           &price,
		}},
		users: &stubUserRepository{user: &models.User{
			ID:    "usr-1",
			Name:  "Ana",
			Phone: "+54911",
			Address: &models.DeliveryAddress{
				Street: "Av. Corrientes", Number: "1234", City: "CABA", Province: "Buenos Aires",
			},
		}},
		checkout: &stubCheckoutProvider{url: "https://checkout.example/p/abc"},
		locker:   &stubLocker{acquired: true},
		events:   &stubPublisher{},
	}
	f.usecase = &paymentUsecase{
		OrderRepository:  f.orders,
		QuoteUsecase:     f.quotes,
		UserRepository:   f.users,
		CheckoutProvider: f.checkout,
		LockerService:    f.locker,
		EventQueue:       f.events,
		Log:              zap.NewNop(),
	}
	return f
}

func createRequest() *requests.CreatePreference {
	return &requests.CreatePreference{
		UserID:         "usr-1",
		PharmacyID:     "farm-1",
		PrescriptionID: "rec-1",
		QuoteID:        "cot-1",
	}
}

func TestCreatePreferenceSuccess(t *testing.T) {
	fixture := newUsecaseFixture()

	response, err := fixture.usecase.CreatePreference(context.Background(), "usr-1", createRequest())
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.example/p/abc", response.PaymentURL)

	require.Len(t, fixture.orders.created, 1)
	order := fixture.orders.created[0]
	assert.Equal(t, models.OrderPendingPayment, order.State)
	assert.Equal(t, "rec-1", order.PrescriptionID)
	assert.Equal(t, "cot-1", order.QuoteID)
	assert.Equal(t, 1500.0, order.Price)
	assert.Equal(t, "Ana", order.UserSnapshot.Name)
	assert.Equal(t, "Farmacia Central", order.PharmacySnapshot.Name)
	assert.Len(t, fixture.locker.unlocked, 1, "lock must be released")
}

func TestCreatePreferenceDuplicateActiveOrder(t *testing.T) {
	for _, state := range []models.OrderState{
		models.OrderPendingPayment, models.OrderPending, models.OrderPaid,
		models.OrderDelivered, models.OrderUnknown,
	} {
		fixture := newUsecaseFixture()
		fixture.orders.latest = &models.Order{ID: "ped-0", State: state}

		_, err := fixture.usecase.CreatePreference(context.Background(), "usr-1", createRequest())
		require.Errorf(t, err, "state %s", state)
		assert.Truef(t, exceptions.IsKind(err, exceptions.KindDuplicateActiveOrder), "state %s", state)
		assert.Zerof(t, fixture.checkout.calls, "state %s: checkout must not be reached", state)
		assert.Lenf(t, fixture.locker.unlocked, 1, "state %s: lock must be released", state)
	}
}

func TestCreatePreferenceFailedOrderDoesNotBlock(t *testing.T) {
	for _, state := range []models.OrderState{models.OrderRejected, models.OrderAbandoned} {
		fixture := newUsecaseFixture()
		fixture.orders.latest = &models.Order{ID: "ped-0", State: state}

		_, err := fixture.usecase.CreatePreference(context.Background(), "usr-1", createRequest())
		require.NoErrorf(t, err, "state %s", state)
		assert.Lenf(t, fixture.orders.created, 1, "state %s", state)
	}
}

func TestCreatePreferenceLockContention(t *testing.T) {
	fixture := newUsecaseFixture()
	fixture.locker.acquired = false

	_, err := fixture.usecase.CreatePreference(context.Background(), "usr-1", createRequest())
	require.Error(t, err)
	assert.True(t, exceptions.IsKind(err, exceptions.KindDuplicateActiveOrder))
	assert.Empty(t, fixture.locker.unlocked, "a lock we never held must not be released")
}

func TestCreatePreferenceUserMismatch(t *testing.T) {
	fixture := newUsecaseFixture()

	_, err := fixture.usecase.CreatePreference(context.Background(), "usr-2", createRequest())
	require.Error(t, err)
	assert.True(t, exceptions.IsKind(err, exceptions.KindUnauthenticated))
}

func TestCreatePreferenceAddressIncomplete(t *testing.T) {
	fixture := newUsecaseFixture()
	fixture.users.user.Address = nil

	_, err := fixture.usecase.CreatePreference(context.Background(), "usr-1", createRequest())
	require.Error(t, err)
	assert.True(t, exceptions.IsKind(err, exceptions.KindAddressIncomplete))
	assert.Empty(t, fixture.orders.created)
}

func TestCreatePreferenceCheckoutFailureLeavesNoOrder(t *testing.T) {
	fixture := newUsecaseFixture()
	fixture.checkout.url = ""
	fixture.checkout.err = exceptions.ErrGatewayFailure(nil)

	_, err := fixture.usecase.CreatePreference(context.Background(), "usr-1", createRequest())
	require.Error(t, err)
	assert.Empty(t, fixture.orders.created, "a provider failure must not leave a blocking order")
	assert.Len(t, fixture.locker.unlocked, 1)
}

func TestProcessCallbackApproved(t *testing.T) {
	fixture := newUsecaseFixture()
	fixture.orders.byID["ped-1"] = &models.Order{
		ID: "ped-1", UserID: "usr-1", PrescriptionID: "rec-1", QuoteID: "cot-1",
		State: models.OrderPendingPayment,
	}

	err := fixture.usecase.ProcessCallback(context.Background(), &requests.CheckoutCallback{
		PaymentID:         "mp-123",
		ExternalReference: "ped-1",
		Status:            "approved",
	})
	require.NoError(t, err)

	require.Len(t, fixture.orders.updated, 1)
	order := fixture.orders.updated[0]
	assert.Equal(t, models.OrderPaid, order.State)
	assert.Equal(t, "mp-123", order.ExternalPaymentID)
	require.NotNil(t, order.PaidAt)
	assert.Nil(t, order.ClosedAt)

	require.Len(t, fixture.events.messages, 1)
	assert.Equal(t, "ped-1", fixture.events.messages[0].OrderID)
	assert.Equal(t, string(models.OrderPaid), fixture.events.messages[0].State)
}

func TestProcessCallbackRejectionClosesOrder(t *testing.T) {
	cases := map[string]models.OrderState{
		"rejected":  models.OrderRejected,
		"cancelled": models.OrderAbandoned,
		"expired":   models.OrderAbandoned,
	}
	for status, want := range cases {
		fixture := newUsecaseFixture()
		fixture.orders.byID["ped-1"] = &models.Order{ID: "ped-1", State: models.OrderPendingPayment}

		err := fixture.usecase.ProcessCallback(context.Background(), &requests.CheckoutCallback{
			PaymentID:         "mp-123",
			ExternalReference: "ped-1",
			Status:            status,
		})
		require.NoErrorf(t, err, "status %s", status)

		order := fixture.orders.updated[0]
		assert.Equalf(t, want, order.State, "status %s", status)
		require.NotNilf(t, order.ClosedAt, "status %s", status)
	}
}

func TestProcessCallbackRedeliveryPublishesOnce(t *testing.T) {
	fixture := newUsecaseFixture()
	fixture.orders.byID["ped-1"] = &models.Order{ID: "ped-1", State: models.OrderPendingPayment}

	callback := &requests.CheckoutCallback{PaymentID: "mp-123", ExternalReference: "ped-1", Status: "approved"}
	require.NoError(t, fixture.usecase.ProcessCallback(context.Background(), callback))
	require.NoError(t, fixture.usecase.ProcessCallback(context.Background(), callback))

	assert.Len(t, fixture.events.messages, 1, "a redelivered callback must not publish a second event")
}

func TestProcessCallbackUnknownOrder(t *testing.T) {
	fixture := newUsecaseFixture()

	err := fixture.usecase.ProcessCallback(context.Background(), &requests.CheckoutCallback{
		PaymentID:         "mp-123",
		ExternalReference: "ped-missing",
		Status:            "approved",
	})
	require.Error(t, err)
	assert.True(t, exceptions.IsKind(err, exceptions.KindOrderNotFound))
}

func TestProcessCallbackUnknownStatus(t *testing.T) {
	fixture := newUsecaseFixture()
	fixture.orders.byID["ped-1"] = &models.Order{ID: "ped-1", State: models.OrderPendingPayment}

	err := fixture.usecase.ProcessCallback(context.Background(), &requests.CheckoutCallback{
		PaymentID:         "mp-123",
		ExternalReference: "ped-1",
		Status:            "charged_back",
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderUnknown, fixture.orders.updated[0].State)
}

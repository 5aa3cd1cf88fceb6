package payments

import (
	"context"
	"fmt"
	"sync"
	"time"

	"farmalink-service/internal/app/contracts"
	"farmalink-service/internal/app/models"
	"farmalink-service/internal/app/services/shared/orderevents"
	"farmalink-service/internal/pkg/constvars"
	"farmalink-service/internal/pkg/dto/requests"
	"farmalink-service/internal/pkg/dto/responses"
	"farmalink-service/internal/pkg/exceptions"
	"farmalink-service/internal/pkg/utils"

	"go.uber.org/zap"
)

// eventPublisher is the slice of the order-event queue the usecase needs.
type eventPublisher interface {
	Enqueue(ctx context.Context, message orderevents.OrderEventMessage) error
}

type paymentUsecase struct {
	OrderRepository  contracts.OrderRepository
	QuoteUsecase     contracts.QuoteUsecase
	UserRepository   contracts.UserRepository
	CheckoutProvider contracts.CheckoutProvider
	LockerService    contracts.LockerService
	EventQueue       eventPublisher
	Log              *zap.Logger
}

var (
	paymentUsecaseInstance contracts.PaymentUsecase
	oncePaymentUsecase     sync.Once
)

func NewPaymentUsecase(
	orderRepository contracts.OrderRepository,
	quoteUsecase contracts.QuoteUsecase,
	userRepository contracts.UserRepository,
	checkoutProvider contracts.CheckoutProvider,
	lockerService contracts.LockerService,
	eventQueue eventPublisher,
	logger *zap.Logger,
) contracts.PaymentUsecase {
	oncePaymentUsecase.Do(func() {
		instance := &paymentUsecase{
			OrderRepository:  orderRepository,
			QuoteUsecase:     quoteUsecase,
			UserRepository:   userRepository,
			CheckoutProvider: checkoutProvider,
			LockerService:    lockerService,
			EventQueue:       eventQueue,
			Log:              logger,
		}
		paymentUsecaseInstance = instance
	})
	return paymentUsecaseInstance
}

// CreatePreference is the backend half of the payment intent. The
// one-active-order rule is enforced here: a Redis lock serializes racing
// attempts for the same (user, prescription) and the latest-order check
// rejects while any non-failed order exists.
func (uc *paymentUsecase) CreatePreference(ctx context.Context, userID string, request *requests.CreatePreference) (*responses.CreatePreference, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.CreatePreference called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
		zap.String(constvars.LoggingPrescriptionIDKey, request.PrescriptionID),
		zap.String(constvars.LoggingQuoteIDKey, request.QuoteID),
	)

	if userID == "" {
		return nil, exceptions.ErrUnauthenticated(nil)
	}
	if userID != request.UserID {
		return nil, exceptions.ErrUnauthenticated(fmt.Errorf("request user does not match authenticated user"))
	}

	lockKey := fmt.Sprintf(constvars.PaymentLockKeyFormat, userID, request.PrescriptionID)
	acquired, lockValue, err := uc.LockerService.TryLock(ctx, lockKey, constvars.PaymentLockExpirationInSeconds*time.Second)
	if err != nil {
		return nil, err
	}
	if !acquired {
		uc.Log.Info("paymentUsecase.CreatePreference concurrent attempt rejected",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPrescriptionIDKey, request.PrescriptionID),
		)
		return nil, exceptions.ErrDuplicateActiveOrder(nil)
	}
	defer func() {
		if unlockErr := uc.LockerService.Unlock(ctx, lockKey, lockValue); unlockErr != nil {
			uc.Log.Warn("paymentUsecase.CreatePreference unlock failed",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(unlockErr),
			)
		}
	}()

	existing, err := uc.OrderRepository.FindLatestByPrescriptionID(ctx, request.PrescriptionID)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.State.Active() {
		uc.Log.Info("paymentUsecase.CreatePreference duplicate active order",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOrderIDKey, existing.ID),
			zap.String(constvars.LoggingOrderStateKey, string(existing.State)),
		)
		return nil, exceptions.ErrDuplicateActiveOrder(nil)
	}

	quote, err := uc.QuoteUsecase.CheckAvailability(ctx, request.PrescriptionID, request.QuoteID)
	if err != nil {
		return nil, err
	}
	if quote.PharmacyID != request.PharmacyID {
		return nil, exceptions.ErrMissingParameters(fmt.Errorf("quote does not belong to pharmacy %s", request.PharmacyID))
	}

	user, err := uc.UserRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, exceptions.ErrUnauthenticated(nil)
	}
	if !user.Address.Complete() {
		return nil, exceptions.ErrAddressIncomplete(nil)
	}

	order := uc.buildOrder(user, quote)

	// The checkout URL is requested before the insert so a provider failure
	// never leaves behind a blocking pendiente_pago order.
	checkoutURL, err := uc.CheckoutProvider.CreateCheckout(ctx, order)
	if err != nil {
		return nil, err
	}

	if _, err := uc.OrderRepository.Create(ctx, order); err != nil {
		return nil, err
	}

	uc.Log.Info("paymentUsecase.CreatePreference created order",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, order.ID),
		zap.String(constvars.LoggingPharmacyIDKey, order.PharmacyID),
	)
	return &responses.CreatePreference{PaymentURL: checkoutURL}, nil
}

func (uc *paymentUsecase) buildOrder(user *models.User, quote *models.Quote) *models.Order {
	var price float64
	if quote.Price != nil {
		price = *quote.Price
	}
	return &models.Order{
		ID:             utils.GenerateOrderID(),
		UserID:         user.ID,
		PrescriptionID: quote.PrescriptionID,
		QuoteID:        quote.ID,
		PharmacyID:     quote.PharmacyID,
		Price:          price,
		State:          models.OrderPendingPayment,
		UserSnapshot: models.ContactSnapshot{
			Name:    user.Name,
			Phone:   user.Phone,
			Address: fmt.Sprintf("%s %s, %s, %s", user.Address.Street, user.Address.Number, user.Address.City, user.Address.Province),
		},
		PharmacySnapshot: models.ContactSnapshot{
			Name:    quote.PharmacyName,
			Address: quote.PharmacyAddress,
		},
		CreatedAt: time.Now().UTC(),
	}
}

// ProcessCallback maps a provider payment status onto the order lifecycle
// and persists the transition. Redelivered callbacks are harmless: mapping
// the same status twice produces the same document, and the event publish
// is skipped when no state changed.
func (uc *paymentUsecase) ProcessCallback(ctx context.Context, request *requests.CheckoutCallback) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.ProcessCallback called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, request.ExternalReference),
		zap.String(constvars.LoggingPaymentStatusKey, request.Status),
	)

	order, err := uc.OrderRepository.FindByID(ctx, request.ExternalReference)
	if err != nil {
		return err
	}
	if order == nil {
		return exceptions.ErrOrderNotFound(nil)
	}

	newState := mapCheckoutStatus(constvars.CheckoutPaymentStatus(request.Status))
	if newState == models.OrderUnknown {
		uc.Log.Warn("paymentUsecase.ProcessCallback unhandled payment status",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPaymentStatusKey, request.Status),
		)
	}

	previousState := order.State
	now := time.Now().UTC()

	order.ExternalPaymentID = request.PaymentID
	order.ExternalPaymentStatus = request.Status
	order.State = newState
	if newState == models.OrderPaid && order.PaidAt == nil {
		order.PaidAt = &now
	}
	if newState.Failed() && order.ClosedAt == nil {
		order.ClosedAt = &now
	}

	if err := uc.OrderRepository.Update(ctx, order); err != nil {
		return err
	}

	if previousState == newState {
		return nil
	}

	if err := uc.EventQueue.Enqueue(ctx, orderevents.OrderEventMessage{
		OrderID:        order.ID,
		UserID:         order.UserID,
		PrescriptionID: order.PrescriptionID,
		QuoteID:        order.QuoteID,
		State:          string(order.State),
	}); err != nil {
		// The order document is already updated; snapshot streams will still
		// observe the transition even if the push event is lost.
		uc.Log.Error("paymentUsecase.ProcessCallback event publish failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOrderIDKey, order.ID),
			zap.Error(err),
		)
	}

	uc.Log.Info("paymentUsecase.ProcessCallback updated order",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, order.ID),
		zap.String(constvars.LoggingOrderStateKey, string(order.State)),
	)
	return nil
}

func mapCheckoutStatus(status constvars.CheckoutPaymentStatus) models.OrderState {
	switch status {
	case constvars.CheckoutStatusApproved:
		return models.OrderPaid
	case constvars.CheckoutStatusPending, constvars.CheckoutStatusInProcess:
		return models.OrderPending
	case constvars.CheckoutStatusRejected:
		return models.OrderRejected
	case constvars.CheckoutStatusCancelled, constvars.CheckoutStatusExpired:
		return models.OrderAbandoned
	default:
		return models.OrderUnknown
	}
}

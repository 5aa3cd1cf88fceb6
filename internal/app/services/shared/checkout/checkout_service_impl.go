package checkout

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"farmalink-service/internal/app/config"
	"farmalink-service/internal/app/contracts"
	"farmalink-service/internal/app/models"
	"farmalink-service/internal/app/services/shared/ratelimiter"
	"farmalink-service/internal/pkg/constvars"
	"farmalink-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

var (
	checkoutServiceInstance contracts.CheckoutProvider
	onceCheckoutService     sync.Once
)

type checkoutService struct {
	baseUrl     string
	accessToken string
	successURL  string
	failureURL  string
	client      *http.Client
	limiter     *ratelimiter.ResourceLimiter
	Log         *zap.Logger
}

// preferenceRequest is the provider's checkout-preference payload.
type preferenceRequest struct {
	ExternalReference string  `json:"external_reference"`
	Title             string  `json:"title"`
	Amount            float64 `json:"unit_price"`
	SuccessURL        string  `json:"back_urls.success"`
	FailureURL        string  `json:"back_urls.failure"`
}

type preferenceResponse struct {
	InitPoint string `json:"init_point"`
}

func NewCheckoutService(internalConfig *config.InternalConfig, limiter *ratelimiter.ResourceLimiter, logger *zap.Logger) contracts.CheckoutProvider {
	onceCheckoutService.Do(func() {
		timeout := time.Duration(internalConfig.Checkout.TimeoutInSeconds) * time.Second
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		instance := &checkoutService{
			baseUrl:     internalConfig.Checkout.BaseUrl,
			accessToken: internalConfig.Checkout.AccessToken,
			successURL:  internalConfig.Checkout.SuccessURL,
			failureURL:  internalConfig.Checkout.FailureURL,
			client:      &http.Client{Timeout: timeout},
			limiter:     limiter,
			Log:         logger,
		}
		checkoutServiceInstance = instance
	})
	return checkoutServiceInstance
}

func (s *checkoutService) CreateCheckout(ctx context.Context, order *models.Order) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("checkoutService.CreateCheckout called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, order.ID),
	)

	allowed, err := s.limiter.ApplyResourceLimiter(ctx, &ratelimiter.ApplyResourceLimiterInput{
		ResourceName:      s.baseUrl,
		LimiterGroupName:  constvars.GatewayLimiterGroupName,
		WindowDurationSec: constvars.GatewayLimiterWindowInSeconds,
		MaxQuota:          constvars.GatewayLimiterMaxRequestsInWindow,
	})
	if err != nil {
		return "", err
	}
	if !allowed.Allowed {
		return "", exceptions.ErrGatewayFailure(fmt.Errorf("checkout provider throttled, retry in %ds", allowed.RetryAfterSecs))
	}

	body, err := json.Marshal(preferenceRequest{
		ExternalReference: order.ID,
		Title:             fmt.Sprintf("Receta %s", order.PrescriptionID),
		Amount:            order.Price,
		SuccessURL:        s.successURL,
		FailureURL:        s.failureURL,
	})
	if err != nil {
		return "", exceptions.ErrCannotMarshalJSON(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseUrl+"/checkout/preferences", bytes.NewReader(body))
	if err != nil {
		return "", exceptions.ErrBuildRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	req.Header.Set(constvars.HeaderAuthorization, "Bearer "+s.accessToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", exceptions.ErrGatewayFailure(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", exceptions.ErrGatewayFailure(fmt.Errorf("checkout provider returned %d: %s", resp.StatusCode, string(raw)))
	}

	var preference preferenceResponse
	if err := json.NewDecoder(resp.Body).Decode(&preference); err != nil {
		return "", exceptions.ErrGatewayMalformedResponse(err)
	}
	if preference.InitPoint == "" {
		return "", exceptions.ErrGatewayMalformedResponse(nil)
	}

	s.Log.Info("checkoutService.CreateCheckout succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, order.ID),
	)
	return preference.InitPoint, nil
}

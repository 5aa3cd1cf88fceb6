package payflow

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"farmalink-service/internal/app/config"
	"farmalink-service/internal/app/contracts"
	"farmalink-service/internal/pkg/constvars"
	"farmalink-service/internal/pkg/dto/requests"
	"farmalink-service/internal/pkg/dto/responses"
	"farmalink-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type intentBuilder struct {
	BaseURL     string
	AccessToken string
	Client      *http.Client
	Log         *zap.Logger
}

var (
	intentBuilderInstance contracts.IntentBuilder
	onceIntentBuilder     sync.Once
)

// NewIntentBuilder returns the client side of preference creation. It does
// one POST per intent and classifies the outcome; retries are left to the
// user because a duplicate rejection means retrying cannot help.
func NewIntentBuilder(gatewayConfig config.Gateway, accessToken string, logger *zap.Logger) contracts.IntentBuilder {
	onceIntentBuilder.Do(func() {
		intentBuilderInstance = &intentBuilder{
			BaseURL:     strings.TrimRight(gatewayConfig.BaseUrl, "/"),
			AccessToken: accessToken,
			Client: &http.Client{
				Timeout: time.Duration(gatewayConfig.TimeoutInSeconds) * time.Second,
			},
			Log: logger,
		}
	})
	return intentBuilderInstance
}

func (b *intentBuilder) CreateIntent(ctx context.Context, intent contracts.PaymentIntent) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	body, err := json.Marshal(requests.CreatePreference{
		UserID:         intent.UserID,
		PharmacyID:     intent.PharmacyID,
		PrescriptionID: intent.PrescriptionID,
		QuoteID:        intent.QuoteID,
	})
	if err != nil {
		return "", exceptions.ErrCannotMarshalJSON(err)
	}

	url := b.BaseURL + constvars.GatewayCreatePreferencePath
	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", exceptions.ErrBuildRequest(err)
	}
	httpRequest.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	if b.AccessToken != "" {
		httpRequest.Header.Set(constvars.HeaderAuthorization, "Bearer "+b.AccessToken)
	}

	response, err := b.Client.Do(httpRequest)
	if err != nil {
		b.Log.Error("intentBuilder.CreateIntent request failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return "", exceptions.ErrGatewayFailure(err)
	}
	defer response.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(response.Body, constvars.GatewayMaxResponseBytes))
	if err != nil {
		return "", exceptions.ErrGatewayFailure(err)
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return "", b.classifyFailure(requestID, response.StatusCode, rawBody)
	}

	var preference responses.CreatePreference
	if err := json.Unmarshal(rawBody, &preference); err != nil {
		return "", exceptions.ErrGatewayMalformedResponse(err)
	}
	if preference.PaymentURL == "" {
		return "", exceptions.ErrGatewayMalformedResponse(fmt.Errorf("response has no paymentUrl"))
	}

	b.Log.Info("intentBuilder.CreateIntent succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPrescriptionIDKey, intent.PrescriptionID),
		zap.String(constvars.LoggingQuoteIDKey, intent.QuoteID),
	)
	return preference.PaymentURL, nil
}

// classifyFailure tells the duplicate-active-order rejection apart from a
// generic gateway failure. The sentinel match is on the message substring,
// not the status code, because older gateway versions returned it as 500.
func (b *intentBuilder) classifyFailure(requestID string, statusCode int, rawBody []byte) error {
	var gatewayError responses.GatewayError
	if err := json.Unmarshal(rawBody, &gatewayError); err == nil &&
		strings.Contains(gatewayError.Error, constvars.GatewayDuplicateOrderSentinel) {
		b.Log.Info("intentBuilder.CreateIntent duplicate active order",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return exceptions.ErrDuplicateActiveOrder(nil)
	}

	b.Log.Error("intentBuilder.CreateIntent gateway rejected intent",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingStatusCodeKey, statusCode),
	)
	return exceptions.ErrGatewayFailure(fmt.Errorf("gateway returned status %d", statusCode))
}

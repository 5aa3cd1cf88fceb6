package payflow

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"farmalink-service/internal/app/contracts"
	"farmalink-service/internal/pkg/constvars"
	"farmalink-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestBuilder(baseURL string) *intentBuilder {
	return &intentBuilder{
		BaseURL:     baseURL,
		AccessToken: "test-token",
		Client:      &http.Client{Timeout: 5 * time.Second},
		Log:         zap.NewNop(),
	}
}

func testIntent() contracts.PaymentIntent {
	return contracts.PaymentIntent{
		UserID:         "usr-1",
		PharmacyID:     "farm-1",
		PrescriptionID: "rec-1",
		QuoteID:        "cot-1",
	}
}

func TestIntentBuilderSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, constvars.GatewayCreatePreferencePath, r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get(constvars.HeaderAuthorization))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "usr-1", body["userId"])
		assert.Equal(t, "farm-1", body["farmaciaId"])
		assert.Equal(t, "rec-1", body["recetaId"])
		assert.Equal(t, "cot-1", body["cotizacionId"])

		w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"paymentUrl": "https://checkout.example/p/abc"})
	}))
	defer server.Close()

	url, err := newTestBuilder(server.URL).CreateIntent(context.Background(), testIntent())
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.example/p/abc", url)
}

func TestIntentBuilderDuplicateSentinel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": constvars.GatewayDuplicateOrderSentinel})
	}))
	defer server.Close()

	_, err := newTestBuilder(server.URL).CreateIntent(context.Background(), testIntent())
	require.Error(t, err)
	assert.True(t, exceptions.IsKind(err, exceptions.KindDuplicateActiveOrder))
}

func TestIntentBuilderDuplicateSentinelOnLegacyStatus(t *testing.T) {
	// Older gateways returned the sentinel with a 500; classification is on
	// the message, not the status code.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "Rechazado: " + constvars.GatewayDuplicateOrderSentinel})
	}))
	defer server.Close()

	_, err := newTestBuilder(server.URL).CreateIntent(context.Background(), testIntent())
	require.Error(t, err)
	assert.True(t, exceptions.IsKind(err, exceptions.KindDuplicateActiveOrder))
}

func TestIntentBuilderGenericFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "algo salió mal"})
	}))
	defer server.Close()

	_, err := newTestBuilder(server.URL).CreateIntent(context.Background(), testIntent())
	require.Error(t, err)
	assert.True(t, exceptions.IsKind(err, exceptions.KindGatewayFailure))
}

func TestIntentBuilderMalformedSuccessBody(t *testing.T) {
	cases := map[string]func(w http.ResponseWriter){
		"missing paymentUrl": func(w http.ResponseWriter) {
			json.NewEncoder(w).Encode(map[string]string{"otra": "cosa"})
		},
		"empty paymentUrl": func(w http.ResponseWriter) {
			json.NewEncoder(w).Encode(map[string]string{"paymentUrl": ""})
		},
		"not JSON": func(w http.ResponseWriter) {
			w.Write([]byte("<html>mantenimiento</html>"))
		},
	}
	for name, writeBody := range cases {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				writeBody(w)
			}))
			defer server.Close()

			_, err := newTestBuilder(server.URL).CreateIntent(context.Background(), testIntent())
			require.Error(t, err)
			assert.True(t, exceptions.IsKind(err, exceptions.KindGatewayFailure))
		})
	}
}

func TestIntentBuilderTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := newTestBuilder(server.URL).CreateIntent(context.Background(), testIntent())
	require.Error(t, err)
	assert.True(t, exceptions.IsKind(err, exceptions.KindGatewayFailure))
}

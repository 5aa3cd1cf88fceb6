package middlewares

import (
	"net/http"
	"strconv"

	"farmalink-service/internal/app/services/shared/ratelimiter"
	"farmalink-service/internal/pkg/constvars"
	"farmalink-service/internal/pkg/dto/responses"

	"github.com/goccy/go-json"
)

// RateLimitPayments throttles payment intent creation per user. The
// fixed window lives in Redis so the limit holds across instances; when
// Redis is unreachable the request is allowed through rather than failing
// the payment path.
func (m *Middlewares) RateLimitPayments(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, _ := r.Context().Value(constvars.CONTEXT_USER_ID_KEY).(string)
		if userID == "" {
			next.ServeHTTP(w, r)
			return
		}

		out, err := m.ResourceLimiter.ApplyResourceLimiter(r.Context(), &ratelimiter.ApplyResourceLimiterInput{
			ResourceName:      userID,
			LimiterGroupName:  constvars.ResourcePayments,
			WindowDurationSec: m.InternalConfig.App.PaymentRateWindowInSeconds,
			MaxQuota:          m.InternalConfig.App.PaymentRateMaxRequests,
		})
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		if !out.Allowed {
			w.Header().Set(constvars.HeaderRetryAfter, strconv.Itoa(out.RetryAfterSecs))
			w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
			w.WriteHeader(constvars.StatusTooManyRequests)
			json.NewEncoder(w).Encode(responses.ResponseDTO{
				Success: false,
				Message: constvars.ErrClientTooManyRequests,
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

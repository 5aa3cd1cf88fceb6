package routers

import (
	"farmalink-service/internal/app/delivery/http/controllers"
	"farmalink-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachPaymentRoutes(router chi.Router, middlewares *middlewares.Middlewares, paymentController *controllers.PaymentController) {
	router.With(middlewares.Authenticate, middlewares.RateLimitPayments).Post("/crear-preferencia", paymentController.CreatePreference)
	// The provider webhook authenticates by shared knowledge of the order id,
	// not by user token.
	router.Post("/callback", paymentController.CheckoutCallback)
}

package routers

import (
	"fmt"
	"time"

	"farmalink-service/internal/app/config"
	"farmalink-service/internal/app/delivery/http/controllers"
	"farmalink-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	paymentController *controllers.PaymentController,
	orderController *controllers.OrderController,
	quoteController *controllers.QuoteController,
	prescriptionController *controllers.PrescriptionController,
) {

	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	rateLimiter := httprate.LimitByIP(internalConfig.App.MaxRequests, time.Second)
	router.Use(rateLimiter)

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging)
	router.Use(middlewares.ErrorHandler)

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	// The preference endpoint and the provider webhook keep their legacy
	// paths; mobile clients and the checkout provider both hardcode them.
	router.Route("/api/pagos", func(r chi.Router) {
		attachPaymentRoutes(r, middlewares, paymentController)
	})

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/recetas", func(r chi.Router) {
				attachPrescriptionRoutes(r, middlewares, prescriptionController)
				attachQuoteRoutes(r, middlewares, quoteController)
				attachOrderRoutes(r, middlewares, orderController)
			})
		})
	})
}

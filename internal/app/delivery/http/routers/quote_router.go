package routers

import (
	"farmalink-service/internal/app/delivery/http/controllers"
	"farmalink-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachQuoteRoutes(router chi.Router, middlewares *middlewares.Middlewares, quoteController *controllers.QuoteController) {
	router.With(middlewares.Authenticate).Get("/{receta_id}/cotizaciones/{cotizacion_id}", quoteController.FindByID)
	router.With(middlewares.Authenticate).Get("/{receta_id}/cotizaciones/{cotizacion_id}/disponibilidad", quoteController.CheckAvailability)
}

package routers

import (
	"farmalink-service/internal/app/delivery/http/controllers"
	"farmalink-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachOrderRoutes(router chi.Router, middlewares *middlewares.Middlewares, orderController *controllers.OrderController) {
	router.With(middlewares.Authenticate).Get("/{receta_id}/pedidos/ultimo", orderController.FindLatestByPrescriptionID)
	router.With(middlewares.Authenticate).Get("/{receta_id}/estado-accion", orderController.GetActionState)
}

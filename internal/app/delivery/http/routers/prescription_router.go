package routers

import (
	"farmalink-service/internal/app/delivery/http/controllers"
	"farmalink-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachPrescriptionRoutes(router chi.Router, middlewares *middlewares.Middlewares, prescriptionController *controllers.PrescriptionController) {
	router.With(middlewares.Authenticate).Get("/{receta_id}", prescriptionController.FindByID)
}

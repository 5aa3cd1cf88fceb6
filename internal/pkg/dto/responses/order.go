package responses

import (
	"time"

	"farmalink-service/internal/app/models"
)

type Order struct {
	ID                    string                 `json:"id"`
	PrescriptionID        string                 `json:"recetaId"`
	QuoteID               string                 `json:"cotizacionId"`
	PharmacyID            string                 `json:"farmaciaId"`
	Price                 float64                `json:"precio"`
	State                 string                 `json:"estado"`
	PharmacySnapshot      models.ContactSnapshot `json:"farmacia"`
	ExternalPaymentStatus string                 `json:"estadoPagoExterno,omitempty"`
	CreatedAt             time.Time              `json:"creadoEl"`
	PaidAt                *time.Time             `json:"pagadoEl,omitempty"`
}

func NewOrder(order *models.Order) *Order {
	return &Order{
		ID:                    order.ID,
		PrescriptionID:        order.PrescriptionID,
		QuoteID:               order.QuoteID,
		PharmacyID:            order.PharmacyID,
		Price:                 order.Price,
		State:                 string(order.State),
		PharmacySnapshot:      order.PharmacySnapshot,
		ExternalPaymentStatus: order.ExternalPaymentStatus,
		CreatedAt:             order.CreatedAt,
		PaidAt:                order.PaidAt,
	}
}

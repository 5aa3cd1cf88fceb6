package responses

import (
	"time"

	"farmalink-service/internal/app/models"
)

type Prescription struct {
	ID         string    `json:"id"`
	State      string    `json:"estado"`
	QuoteCount int       `json:"cantidadCotizaciones"`
	ImageURL   string    `json:"imagenUrl,omitempty"`
	CreatedAt  time.Time `json:"creadoEl"`
}

func NewPrescription(prescription *models.Prescription, imageURL string) *Prescription {
	return &Prescription{
		ID:         prescription.ID,
		State:      string(prescription.State),
		QuoteCount: prescription.QuoteCount,
		ImageURL:   imageURL,
		CreatedAt:  prescription.CreatedAt,
	}
}

package responses

import (
	"time"

	"farmalink-service/internal/app/models"
)

type Quote struct {
	ID              string    `json:"id"`
	PrescriptionID  string    `json:"recetaId"`
	PharmacyID      string    `json:"farmaciaId"`
	PharmacyName    string    `json:"farmaciaNombre"`
	PharmacyAddress string    `json:"farmaciaDireccion"`
	Price           *float64  `json:"precio,omitempty"`
	State           string    `json:"estado"`
	ImageURL        string    `json:"imagenUrl,omitempty"`
	Description     string    `json:"descripcion,omitempty"`
	CreatedAt       time.Time `json:"creadoEl"`
}

func NewQuote(quote *models.Quote, imageURL string) *Quote {
	return &Quote{
		ID:              quote.ID,
		PrescriptionID:  quote.PrescriptionID,
		PharmacyID:      quote.PharmacyID,
		PharmacyName:    quote.PharmacyName,
		PharmacyAddress: quote.PharmacyAddress,
		Price:           quote.Price,
		State:           string(quote.State),
		ImageURL:        imageURL,
		Description:     quote.Description,
		CreatedAt:       quote.CreatedAt,
	}
}

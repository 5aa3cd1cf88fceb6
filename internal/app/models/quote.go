package models

import (
	"time"
)

type QuoteState string

const (
	QuotePending    QuoteState = "pendiente"
	QuoteQuoted     QuoteState = "cotizada"
	QuoteOutOfStock QuoteState = "sin_stock"
	QuoteIllegible  QuoteState = "ilegible"
	QuoteRejected   QuoteState = "rechazada"
)

// Quote is a pharmacy's priced (or declined) response to a prescription.
// Price stays nil until the pharmacy actually quotes.
type Quote struct {
	ID              string     `json:"id" bson:"_id"`
	PrescriptionID  string     `json:"prescription_id" bson:"recetaId"`
	PharmacyID      string     `json:"pharmacy_id" bson:"farmaciaId"`
	PharmacyName    string     `json:"pharmacy_name" bson:"farmaciaNombre"`
	PharmacyAddress string     `json:"pharmacy_address" bson:"farmaciaDireccion"`
	Price           *float64   `json:"price,omitempty" bson:"precio,omitempty"`
	State           QuoteState `json:"state" bson:"state"`
	ImageRef        string     `json:"image_ref,omitempty" bson:"imageRef,omitempty"`
	Description     string     `json:"description,omitempty" bson:"descripcion,omitempty"`
	CreatedAt       time.Time  `json:"created_at" bson:"createdAt"`
}

// Offerable reports whether the quote can still be purchased. Quotes can be
// withdrawn or claimed between render and tap, so callers must re-read the
// document right before payment instead of trusting a stale snapshot.
func (q *Quote) Offerable() bool {
	return q.State == QuoteQuoted
}

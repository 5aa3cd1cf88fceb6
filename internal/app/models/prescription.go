package models

import (
	"time"
)

type PrescriptionState string

const (
	PrescriptionAwaitingResponses    PrescriptionState = "esperando_respuestas"
	PrescriptionPharmaciesResponding PrescriptionState = "farmacias_respondiendo"
	PrescriptionFinalized            PrescriptionState = "finalizada"
)

// Prescription is created by the patient flow and mutated by pharmacy
// responses; the payment core only ever reads it.
type Prescription struct {
	ID         string            `json:"id" bson:"_id"`
	UserID     string            `json:"user_id" bson:"userId"`
	ImageRef   string            `json:"image_ref" bson:"imageRef"`
	State      PrescriptionState `json:"state" bson:"state"`
	QuoteCount int               `json:"quote_count" bson:"quoteCount"`
	CreatedAt  time.Time         `json:"created_at" bson:"createdAt"`
}

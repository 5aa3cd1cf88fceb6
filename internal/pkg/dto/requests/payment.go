package requests

// CreatePreference is the body of POST /api/pagos/crear-preferencia. Field
// names are the wire contract consumed by the mobile app and must not change.
type CreatePreference struct {
	UserID         string `json:"userId" validate:"required"`
	PharmacyID     string `json:"farmaciaId" validate:"required"`
	PrescriptionID string `json:"recetaId" validate:"required"`
	QuoteID        string `json:"cotizacionId" validate:"required"`
}

// CheckoutCallback is the webhook the hosted checkout provider sends after a
// payment settles, expires or fails. ExternalReference carries our order id.
type CheckoutCallback struct {
	PaymentID         string `json:"payment_id" validate:"required"`
	ExternalReference string `json:"external_reference" validate:"required"`
	Status            string `json:"status" validate:"required"`
}

package responses

// CreatePreference is the success body of POST /api/pagos/crear-preferencia.
type CreatePreference struct {
	PaymentURL string `json:"paymentUrl"`
}

// GatewayError is the error body of the preference endpoint. The mobile core
// pattern-matches Error against the duplicate-order sentinel.
type GatewayError struct {
	Error string `json:"error"`
}

// ActionState is the derived UI action for a (prescription, quote) pairing.
type ActionState struct {
	Action string `json:"action"`
}

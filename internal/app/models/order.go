package models

import (
	"time"
)

type OrderState string

const (
	OrderPendingPayment OrderState = "pendiente_pago"
	OrderPending        OrderState = "pendiente"
	OrderPaid           OrderState = "pagado"
	OrderRejected       OrderState = "rechazada"
	OrderAbandoned      OrderState = "abandonada"
	OrderDelivered      OrderState = "entregada"
	OrderUnknown        OrderState = "desconocido"
)

// Failed reports whether the purchase attempt died without being paid.
func (s OrderState) Failed() bool {
	return s == OrderRejected || s == OrderAbandoned
}

// Terminal reports whether no further payment transitions are expected.
func (s OrderState) Terminal() bool {
	return s == OrderPaid || s.Failed()
}

// Active reports whether the order still blocks a new purchase attempt for
// the same prescription. Anything not failed counts as active; unrecognized
// states block conservatively.
func (s OrderState) Active() bool {
	return !s.Failed()
}

// ContactSnapshot is a denormalized copy of user or pharmacy contact data
// taken at order creation. Downstream displays read this copy, never a live
// join, so later profile edits cannot rewrite past orders.
type ContactSnapshot struct {
	Name    string `json:"name" bson:"nombre"`
	Phone   string `json:"phone" bson:"telefono"`
	Address string `json:"address" bson:"direccion"`
}

// Order is a purchase attempt against one quote. Orders are created by the
// preference endpoint, mutated by asynchronous payment callbacks, and never
// deleted. At most one order per (user, prescription) may be active at a
// time: a soft invariant enforced by the duplicate check in the preference
// endpoint, not by a database constraint.
type Order struct {
	ID                    string          `json:"id" bson:"_id"`
	UserID                string          `json:"user_id" bson:"userId"`
	PrescriptionID        string          `json:"prescription_id" bson:"recetaId"`
	QuoteID               string          `json:"quote_id" bson:"cotizacionId"`
	PharmacyID            string          `json:"pharmacy_id" bson:"farmaciaId"`
	Price                 float64         `json:"price" bson:"precio"`
	State                 OrderState      `json:"state" bson:"state"`
	UserSnapshot          ContactSnapshot `json:"user_snapshot" bson:"usuarioSnapshot"`
	PharmacySnapshot      ContactSnapshot `json:"pharmacy_snapshot" bson:"farmaciaSnapshot"`
	ExternalPaymentID     string          `json:"external_payment_id,omitempty" bson:"pagoExternoId,omitempty"`
	ExternalPaymentStatus string          `json:"external_payment_status,omitempty" bson:"pagoExternoEstado,omitempty"`
	CreatedAt             time.Time       `json:"created_at" bson:"createdAt"`
	PaidAt                *time.Time      `json:"paid_at,omitempty" bson:"pagadoAt,omitempty"`
	ClosedAt              *time.Time      `json:"closed_at,omitempty" bson:"cerradoAt,omitempty"`
}

package models

import (
	"time"
)

// DeliveryAddress is the user's saved delivery address. Every field except
// Notes must be present before a payment attempt may proceed.
type DeliveryAddress struct {
	Street   string `json:"street" bson:"calle"`
	Number   string `json:"number" bson:"numero"`
	City     string `json:"city" bson:"ciudad"`
	Province string `json:"province" bson:"provincia"`
	Notes    string `json:"notes,omitempty" bson:"notas,omitempty"`
}

// Complete reports whether the address can be sent to a pharmacy.
func (a *DeliveryAddress) Complete() bool {
	if a == nil {
		return false
	}
	return a.Street != "" && a.Number != "" && a.City != "" && a.Province != ""
}

type User struct {
	ID        string           `json:"id" bson:"_id"`
	Name      string           `json:"name" bson:"nombre"`
	Phone     string           `json:"phone" bson:"telefono"`
	Email     string           `json:"email" bson:"email"`
	Address   *DeliveryAddress `json:"address,omitempty" bson:"direccion,omitempty"`
	CreatedAt time.Time        `json:"created_at" bson:"createdAt"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderLine struct {
	Product  primitive.ObjectID `bson:"product" json:"product"`
	Quantity int                `bson:"quantity" json:"quantity"`
}

// Order is one completed checkout, embedded in the user document.
// PaymentID carries the provider session id and is what makes webhook
// redelivery idempotent.
type Order struct {
	Products  []OrderLine `bson:"products" json:"products"`
	PaymentID string      `bson:"paymentId,omitempty" json:"paymentId,omitempty"`
	CreatedAt time.Time   `bson:"createdAt" json:"createdAt"`
}

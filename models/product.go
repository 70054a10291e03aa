package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductOrder records who bought how many units of a product.
type ProductOrder struct {
	User     primitive.ObjectID `bson:"user" json:"user"`
	Quantity int                `bson:"quantity" json:"quantity"`
}

type Product struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductTitle string             `bson:"ProductTitle" json:"ProductTitle"`
	ProductCode  string             `bson:"ProductCode" json:"ProductCode"`
	Brand        string             `bson:"brand" json:"brand"`
	ImgURL       []string           `bson:"imgurl" json:"imgurl"`
	Description  string             `bson:"description" json:"description"`
	Price        float64            `bson:"price" json:"price"`
	Stock        int                `bson:"stock" json:"stock"`
	Category     string             `bson:"category" json:"category"`
	Offer        bool               `bson:"offer" json:"offer"`
	Availability bool               `bson:"Availability" json:"Availability"`
	Orders       []ProductOrder     `bson:"orders" json:"orders"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type CartItem struct {
	Product  primitive.ObjectID `bson:"product" json:"product"`
	Quantity int                `bson:"quantity" json:"quantity"`
	Price    float64            `bson:"price" json:"price"`
	Name     string             `bson:"name,omitempty" json:"name,omitempty"`
}

type User struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name        string               `bson:"name" json:"name"`
	Email       string               `bson:"email" json:"email"`
	Password    string               `bson:"password,omitempty" json:"-"` // "-" means don't include in JSON
	PhoneNumber string               `bson:"phonenumber" json:"phonenumber"`
	Address     string               `bson:"address" json:"address"`
	Role        string               `bson:"role" json:"role"`
	Cart        []CartItem           `bson:"cart" json:"cart"`
	Orders      []Order              `bson:"orders" json:"orders"`
	OTP         string               `bson:"otp,omitempty" json:"-"`
	Status      bool                 `bson:"status" json:"status"`
	Wishlist    []primitive.ObjectID `bson:"wishlist" json:"wishlist"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
}

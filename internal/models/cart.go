package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is one line of a user's cart. Name, image and price are
// denormalized from the product at the time the item is added; price always
// comes from the chosen tenure option, never from the client.
type CartItem struct {
	ItemID       string             `bson:"item_id" json:"id"`
	ProductID    primitive.ObjectID `bson:"product_id" json:"productId"`
	Name         string             `bson:"name" json:"name"`
	Image        string             `bson:"image" json:"image"`
	TenureMonths int                `bson:"tenure_months" json:"tenure"`
	Price        float64            `bson:"price" json:"price"`
	Quantity     int                `bson:"quantity" json:"quantity"`
}

// LineTotal is price × quantity for this line.
func (i CartItem) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}

// Cart holds a user's line items, one document per user.
type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID    string             `bson:"user_id" json:"user_id"`
	Items     []CartItem         `bson:"items" json:"items"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

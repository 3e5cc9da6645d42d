package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const OrderStatusPending = "Pending"

// OrderItem is a line item frozen into an order at checkout time.
type OrderItem struct {
	ProductID         primitive.ObjectID `bson:"product_id" json:"productId"`
	Name              string             `bson:"name" json:"name"`
	Image             string             `bson:"image,omitempty" json:"image,omitempty"`
	TenureMonths      int                `bson:"tenure_months" json:"tenure"`
	Price             float64            `bson:"price" json:"price"`
	RefundableDeposit float64            `bson:"refundable_deposit" json:"refundableDeposit"`
	Quantity          int                `bson:"quantity" json:"quantity"`
}

// Customer is the contact block printed on the quotation.
type Customer struct {
	Name    string `bson:"name" json:"name"`
	Email   string `bson:"email" json:"email"`
	Phone   string `bson:"phone" json:"phone"`
	Address string `bson:"address,omitempty" json:"address,omitempty"`
}

// Order is the persisted result of a completed quotation. Immutable after
// insert; fulfillment is handled outside this system.
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	QuotationNumber string             `bson:"quotation_number" json:"quotationNumber"`
	UserID          string             `bson:"user_id" json:"userId"`
	Customer        Customer           `bson:"customer" json:"customer"`
	Items           []OrderItem        `bson:"items" json:"items"`
	Subtotal        float64            `bson:"subtotal" json:"subtotal"`
	Discount        float64            `bson:"discount" json:"discount"`
	Deposit         float64            `bson:"deposit" json:"deposit"`
	TransportFee    float64            `bson:"transport_fee" json:"transportFee"`
	Total           float64            `bson:"total" json:"total"`
	Status          string             `bson:"status" json:"status"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
}

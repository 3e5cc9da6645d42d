package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TenureOption is one rental duration a product can be taken for, with the
// monthly price charged for that duration.
type TenureOption struct {
	Months int     `bson:"months" json:"months"`
	Price  float64 `bson:"price" json:"price"`
}

type Product struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name              string             `bson:"name" json:"name"`
	BasePrice         float64            `bson:"basePrice" json:"basePrice"`
	Category          string             `bson:"category" json:"category"`
	Description       string             `bson:"description,omitempty" json:"description,omitempty"`
	RefundableDeposit float64            `bson:"refundableDeposit" json:"refundableDeposit"`
	Brand             string             `bson:"brand,omitempty" json:"brand,omitempty"`
	Dimensions        string             `bson:"dimensions,omitempty" json:"dimensions,omitempty"`
	Color             string             `bson:"color,omitempty" json:"color,omitempty"`
	TenureOptions     []TenureOption     `bson:"tenureOptions" json:"tenureOptions"`
	Images            []string           `bson:"images" json:"images"`
	Locations         []string           `bson:"location" json:"location"`
	IsActive          bool               `bson:"isActive" json:"isActive"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// TenureFor returns the tenure option matching the given number of months.
// A cart line item may only carry a (tenure, price) pair defined here.
func (p Product) TenureFor(months int) (TenureOption, bool) {
	for _, opt := range p.TenureOptions {
		if opt.Months == months {
			return opt, true
		}
	}
	return TenureOption{}, false
}

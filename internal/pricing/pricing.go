// Package pricing computes cart and checkout totals. All arithmetic runs on
// decimals and is rounded to two places at the boundary, so the figures on
// the cart page, the checkout page and the quotation can never drift apart.
package pricing

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// LineItem is the pricing view of a cart line.
type LineItem struct {
	Name              string
	Price             float64
	RefundableDeposit float64
	Quantity          int
}

// The only coupon the shop honors: a flat 20% off the subtotal. Validated
// here, server-side, at quote time — a client-side discount is a request,
// not a price.
const (
	couponCode = "DISCOUNT20"
	couponRate = 0.20
)

var ErrInvalidCoupon = errors.New("invalid coupon code")

// Summary is the cart-page total: subtotal plus the flat delivery charge.
type Summary struct {
	Subtotal       float64 `json:"subtotal"`
	DeliveryCharge float64 `json:"deliveryCharge"`
	Total          float64 `json:"total"`
}

// Quote is the checkout total: subtotal less any discount, plus the
// refundable deposit and the transportation fee.
type Quote struct {
	Subtotal     float64 `json:"subtotal"`
	Discount     float64 `json:"discount"`
	Deposit      float64 `json:"deposit"`
	TransportFee float64 `json:"transportFee"`
	Total        float64 `json:"total"`
}

// Subtotal is Σ(price × quantity) over the line items.
func Subtotal(items []LineItem) float64 {
	return round2(subtotal(items))
}

// Deposit is Σ(refundableDeposit × quantity): the per-product deposit field
// is authoritative, summed over the cart.
func Deposit(items []LineItem) float64 {
	total := decimal.Zero
	for _, item := range items {
		d := decimal.NewFromFloat(item.RefundableDeposit)
		total = total.Add(d.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return round2(total)
}

// Discount validates a coupon code against the subtotal. An empty code is a
// zero discount; an unknown code is an error, not a silent zero, so the
// caller can reject the purchase.
func Discount(code string, sub float64) (float64, error) {
	if code == "" {
		return 0, nil
	}
	if !strings.EqualFold(code, couponCode) {
		return 0, ErrInvalidCoupon
	}
	d := decimal.NewFromFloat(sub).Mul(decimal.NewFromFloat(couponRate))
	return round2(d), nil
}

// CartSummary prices the cart page: subtotal + flat delivery charge.
func CartSummary(items []LineItem, deliveryCharge float64) Summary {
	sub := subtotal(items)
	charge := decimal.NewFromFloat(deliveryCharge)
	if len(items) == 0 {
		charge = decimal.Zero
	}
	return Summary{
		Subtotal:       round2(sub),
		DeliveryCharge: round2(charge),
		Total:          round2(sub.Add(charge)),
	}
}

// NewQuote prices a checkout: subtotal − discount + deposit + transport fee.
// An empty item list yields a zero quote; rejecting it is the caller's job.
func NewQuote(items []LineItem, couponCode string, transportFee float64) (Quote, error) {
	if len(items) == 0 {
		return Quote{}, nil
	}

	sub := subtotal(items)
	discount, err := Discount(couponCode, round2(sub))
	if err != nil {
		return Quote{}, err
	}

	dep := decimal.Zero
	for _, item := range items {
		d := decimal.NewFromFloat(item.RefundableDeposit)
		dep = dep.Add(d.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	fee := decimal.NewFromFloat(transportFee)
	total := sub.Sub(decimal.NewFromFloat(discount)).Add(dep).Add(fee)

	return Quote{
		Subtotal:     round2(sub),
		Discount:     discount,
		Deposit:      round2(dep),
		TransportFee: round2(fee),
		Total:        round2(total),
	}, nil
}

func subtotal(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		price := decimal.NewFromFloat(item.Price)
		total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

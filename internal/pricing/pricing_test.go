package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleItems() []LineItem {
	return []LineItem{
		{Name: "Fabric Sofa", Price: 500, RefundableDeposit: 1000, Quantity: 2},
		{Name: "Queen Bed", Price: 1200, RefundableDeposit: 2500, Quantity: 1},
	}
}

func TestSubtotal(t *testing.T) {
	assert.Equal(t, 2200.0, Subtotal(sampleItems()))
	assert.Equal(t, 0.0, Subtotal(nil))
}

func TestCartSummary(t *testing.T) {
	s := CartSummary(sampleItems(), 650)
	assert.Equal(t, 2200.0, s.Subtotal)
	assert.Equal(t, 650.0, s.DeliveryCharge)
	assert.Equal(t, 2850.0, s.Total)
}

func TestCartSummaryEmptyCartSkipsDelivery(t *testing.T) {
	s := CartSummary(nil, 650)
	assert.Equal(t, 0.0, s.Subtotal)
	assert.Equal(t, 0.0, s.DeliveryCharge)
	assert.Equal(t, 0.0, s.Total)
}

func TestCartSummaryRemovingItemDropsExactlyItsLineTotal(t *testing.T) {
	items := sampleItems()
	before := CartSummary(items, 650)
	after := CartSummary(items[:1], 650)
	assert.InDelta(t, 1200.0, before.Total-after.Total, 0.001)
}

func TestDeposit(t *testing.T) {
	// 1000×2 + 2500×1
	assert.Equal(t, 4500.0, Deposit(sampleItems()))
}

func TestDiscount(t *testing.T) {
	d, err := Discount("", 2200)
	require.NoError(t, err)
	assert.Equal(t, 0.0, d)

	d, err = Discount("DISCOUNT20", 2200)
	require.NoError(t, err)
	assert.Equal(t, 440.0, d)

	// case-insensitive
	d, err = Discount("discount20", 100)
	require.NoError(t, err)
	assert.Equal(t, 20.0, d)

	_, err = Discount("SAVE50", 2200)
	assert.ErrorIs(t, err, ErrInvalidCoupon)
}

func TestNewQuote(t *testing.T) {
	q, err := NewQuote(sampleItems(), "", 650)
	require.NoError(t, err)
	assert.Equal(t, 2200.0, q.Subtotal)
	assert.Equal(t, 0.0, q.Discount)
	assert.Equal(t, 4500.0, q.Deposit)
	assert.Equal(t, 650.0, q.TransportFee)
	assert.Equal(t, 7350.0, q.Total)
}

func TestNewQuoteWithCoupon(t *testing.T) {
	q, err := NewQuote(sampleItems(), "DISCOUNT20", 650)
	require.NoError(t, err)
	assert.Equal(t, 440.0, q.Discount)
	assert.Equal(t, 6910.0, q.Total)
}

func TestNewQuoteRejectsUnknownCoupon(t *testing.T) {
	_, err := NewQuote(sampleItems(), "SAVE50", 650)
	assert.ErrorIs(t, err, ErrInvalidCoupon)
}

func TestNewQuoteEmptyCart(t *testing.T) {
	q, err := NewQuote(nil, "DISCOUNT20", 650)
	require.NoError(t, err)
	assert.Equal(t, Quote{}, q)
}

func TestRoundingStaysAtTwoPlaces(t *testing.T) {
	items := []LineItem{{Name: "Lamp", Price: 33.335, Quantity: 3}}
	// 33.335 × 3 = 100.005 → 100.01 with decimal arithmetic
	assert.Equal(t, 100.01, Subtotal(items))
}

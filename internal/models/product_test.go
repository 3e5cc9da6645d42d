package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTenureFor(t *testing.T) {
	p := Product{
		Name: "Fabric Sofa",
		TenureOptions: []TenureOption{
			{Months: 3, Price: 700},
			{Months: 6, Price: 550},
			{Months: 12, Price: 450},
		},
	}

	opt, ok := p.TenureFor(6)
	assert.True(t, ok)
	assert.Equal(t, 550.0, opt.Price)

	_, ok = p.TenureFor(9)
	assert.False(t, ok)

	_, ok = Product{}.TenureFor(3)
	assert.False(t, ok)
}

func TestCartItemLineTotal(t *testing.T) {
	item := CartItem{Price: 450, Quantity: 3}
	assert.Equal(t, 1350.0, item.LineTotal())
}

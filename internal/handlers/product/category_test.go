package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryFromSlug(t *testing.T) {
	cases := map[string]string{
		"living-room":  "Living Room Furniture",
		"bed-room":     "Bed Room Furniture",
		"dining-room":  "Dining Room Furniture",
		"outdoor":      "Outdoor Furniture",
		"storage":      "Storage and Organizations",
		"home-office":  "Home Office",
		"kids":         "Kids",
		"study-tables": "Study Tables",
	}
	for slug, want := range cases {
		assert.Equal(t, want, CategoryFromSlug(slug), "slug %q", slug)
	}
}

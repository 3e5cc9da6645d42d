package cache

import (
	"context"
	"encoding/json"
	"time"

	"furnirent_backend/internal/database"
	"furnirent_backend/internal/models"
)

const (
	productListKey = "products:all"
	ProductListTTL = 10 * time.Minute
)

// GetProductList returns the cached full catalog, or ok=false on a miss.
func GetProductList(ctx context.Context) ([]models.Product, bool) {
	data, err := database.Redis.Get(ctx, productListKey).Result()
	if err != nil || data == "" {
		return nil, false
	}

	var products []models.Product
	if err := json.Unmarshal([]byte(data), &products); err != nil {
		return nil, false
	}
	return products, true
}

func SetProductList(ctx context.Context, products []models.Product) {
	data, err := json.Marshal(products)
	if err != nil {
		return
	}
	database.Redis.Set(ctx, productListKey, data, ProductListTTL)
}

// InvalidateProducts drops the catalog cache after any admin mutation.
func InvalidateProducts(ctx context.Context) {
	database.Redis.Del(ctx, productListKey)
}

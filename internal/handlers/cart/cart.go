package cart

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"furnirent_backend/internal/config"
	"furnirent_backend/internal/database"
	"furnirent_backend/internal/models"
	"furnirent_backend/internal/pricing"
)

// mustOwn rejects requests against another user's cart. Returns the uid on
// success, or "" after writing the response.
func mustOwn(c *gin.Context) string {
	uid := c.GetString("user_id")
	if c.Param("userId") != uid {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your cart"})
		return ""
	}
	return uid
}

func loadCart(ctx context.Context, userID string) (models.Cart, error) {
	var cart models.Cart
	err := database.Carts().FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart)
	if err == mongo.ErrNoDocuments {
		return models.Cart{UserID: userID, Items: []models.CartItem{}}, nil
	}
	return cart, err
}

func saveCart(ctx context.Context, cart models.Cart) error {
	cart.UpdatedAt = time.Now()
	_, err := database.Carts().UpdateOne(ctx,
		bson.M{"user_id": cart.UserID},
		bson.M{"$set": bson.M{"items": cart.Items, "updated_at": cart.UpdatedAt}},
		options.Update().SetUpsert(true),
	)
	return err
}

// GetCart returns the user's line items; a user without a cart document
// simply has an empty cart.
func GetCart(c *gin.Context) {
	uid := mustOwn(c)
	if uid == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cart, err := loadCart(ctx, uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error reading cart"})
		return
	}

	c.JSON(http.StatusOK, cart.Items)
}

// AddToCart adds a product with a chosen tenure. The price is resolved from
// the product's tenure options server-side; an already-present
// product+tenure pair merges by incrementing quantity.
func AddToCart(c *gin.Context) {
	uid := mustOwn(c)
	if uid == "" {
		return
	}

	var input struct {
		ProductID    string `json:"productId"`
		TenureMonths int    `json:"tenureMonths"`
		Quantity     int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if input.Quantity < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be at least 1"})
		return
	}

	productID, err := primitive.ObjectIDFromHex(input.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var product models.Product
	if err := database.Products().FindOne(ctx, bson.M{"_id": productID, "isActive": true}).Decode(&product); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	tenure, ok := product.TenureFor(input.TenureMonths)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tenure is not offered for this product"})
		return
	}

	cart, err := loadCart(ctx, uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error reading cart"})
		return
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID && cart.Items[i].TenureMonths == tenure.Months {
			cart.Items[i].Quantity += input.Quantity
			merged = true
			break
		}
	}
	if !merged {
		image := ""
		if len(product.Images) > 0 {
			image = product.Images[0]
		}
		cart.Items = append(cart.Items, models.CartItem{
			ItemID:       uuid.NewString(),
			ProductID:    productID,
			Name:         product.Name,
			Image:        image,
			TenureMonths: tenure.Months,
			Price:        tenure.Price,
			Quantity:     input.Quantity,
		})
	}

	if err := saveCart(ctx, cart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving cart"})
		return
	}

	c.JSON(http.StatusOK, cart.Items)
}

// UpdateCartItem changes a line item's quantity and/or tenure. A tenure
// change re-resolves the price from the product's current options.
func UpdateCartItem(c *gin.Context) {
	uid := mustOwn(c)
	if uid == "" {
		return
	}
	itemID := c.Param("itemId")

	var input struct {
		Quantity     *int `json:"quantity"`
		TenureMonths *int `json:"tenureMonths"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if input.Quantity == nil && input.TenureMonths == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}
	if input.Quantity != nil && *input.Quantity < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be at least 1"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cart, err := loadCart(ctx, uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error reading cart"})
		return
	}

	idx := -1
	for i := range cart.Items {
		if cart.Items[i].ItemID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
		return
	}

	if input.Quantity != nil {
		cart.Items[idx].Quantity = *input.Quantity
	}

	if input.TenureMonths != nil {
		var product models.Product
		if err := database.Products().FindOne(ctx, bson.M{"_id": cart.Items[idx].ProductID}).Decode(&product); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product no longer available"})
			return
		}
		tenure, ok := product.TenureFor(*input.TenureMonths)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Tenure is not offered for this product"})
			return
		}
		cart.Items[idx].TenureMonths = tenure.Months
		cart.Items[idx].Price = tenure.Price
	}

	if err := saveCart(ctx, cart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving cart"})
		return
	}

	c.JSON(http.StatusOK, cart.Items)
}

func RemoveFromCart(c *gin.Context) {
	uid := mustOwn(c)
	if uid == "" {
		return
	}
	itemID := c.Param("itemId")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cart, err := loadCart(ctx, uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error reading cart"})
		return
	}

	remaining := []models.CartItem{}
	for _, item := range cart.Items {
		if item.ItemID != itemID {
			remaining = append(remaining, item)
		}
	}
	cart.Items = remaining

	if err := saveCart(ctx, cart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving cart"})
		return
	}

	c.JSON(http.StatusOK, cart.Items)
}

func ClearCart(c *gin.Context) {
	uid := mustOwn(c)
	if uid == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := database.Carts().DeleteOne(ctx, bson.M{"user_id": uid}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error clearing cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}

// GetCartSummary prices the cart the way the cart page shows it: subtotal
// plus the flat delivery charge.
func GetCartSummary(c *gin.Context) {
	uid := mustOwn(c)
	if uid == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cart, err := loadCart(ctx, uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error reading cart"})
		return
	}

	items := make([]pricing.LineItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, pricing.LineItem{
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		})
	}

	c.JSON(http.StatusOK, pricing.CartSummary(items, config.Business().DeliveryCharge))
}

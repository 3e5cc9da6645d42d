package product

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"furnirent_backend/internal/database"
	"furnirent_backend/internal/models"
)

// SearchProducts runs a text search over active products. No matches is an
// empty list, never an error.
func SearchProducts(c *gin.Context) {
	query := c.Param("query")
	if query == "" {
		c.JSON(http.StatusOK, []models.Product{})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := database.Products().Find(ctx, bson.M{
		"$text":    bson.M{"$search": query},
		"isActive": true,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error decoding search results"})
		return
	}

	c.JSON(http.StatusOK, products)
}

package product

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"furnirent_backend/internal/database"
	"furnirent_backend/internal/models"
)

// categorySlugs maps URL slugs to the category names stored on products.
// Slugs outside the map fall back to title-casing each hyphenated word.
var categorySlugs = map[string]string{
	"living-room": "Living Room Furniture",
	"bed-room":    "Bed Room Furniture",
	"dining-room": "Dining Room Furniture",
	"outdoor":     "Outdoor Furniture",
	"storage":     "Storage and Organizations",
}

// CategoryFromSlug resolves a URL slug to its category display name.
func CategoryFromSlug(slug string) string {
	if name, ok := categorySlugs[slug]; ok {
		return name
	}

	words := strings.Split(slug, "-")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

type categoryCount struct {
	Category string `bson:"category" json:"category"`
	Count    int    `bson:"count" json:"count"`
}

// GetCategories aggregates the distinct categories and how many products
// each holds.
func GetCategories(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$category"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "category", Value: "$_id"},
			{Key: "count", Value: 1},
			{Key: "_id", Value: 0},
		}}},
	}

	cursor, err := database.Products().Aggregate(ctx, pipeline)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching categories"})
		return
	}
	defer cursor.Close(ctx)

	categories := []categoryCount{}
	if err := cursor.All(ctx, &categories); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error decoding categories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// GetCategoryProducts lists the active products in the category a slug
// resolves to.
func GetCategoryProducts(c *gin.Context) {
	categoryName := CategoryFromSlug(c.Param("slug"))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := database.Products().Find(ctx, bson.M{"category": categoryName, "isActive": true})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching products for category"})
		return
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error decoding products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

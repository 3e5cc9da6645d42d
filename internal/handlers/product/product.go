package product

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"furnirent_backend/internal/cache"
	"furnirent_backend/internal/database"
	"furnirent_backend/internal/models"
	"furnirent_backend/internal/services"
)

const maxImagesPerProduct = 5

// GetAllProducts serves the catalog listing, optionally truncated with
// ?limit=n. The full list is cached in Redis and sliced after the fact.
func GetAllProducts(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	products, ok := cache.GetProductList(ctx)
	if !ok {
		cursor, err := database.Products().Find(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error reading products"})
			return
		}
		defer cursor.Close(ctx)

		if err := cursor.All(ctx, &products); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error decoding products"})
			return
		}
		cache.SetProductList(ctx, products)
	}

	if products == nil {
		products = []models.Product{}
	}

	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 && limit < len(products) {
		products = products[:limit]
	}

	c.JSON(http.StatusOK, products)
}

func GetProduct(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var product models.Product
	if err := database.Products().FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error reading product"})
		return
	}

	c.JSON(http.StatusOK, product)
}

// CreateProduct handles the admin multipart form: product fields plus up to
// five images, which are streamed to the media host before the document is
// inserted.
func CreateProduct(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form data"})
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one image is required"})
		return
	}
	if len(files) > maxImagesPerProduct {
		files = files[:maxImagesPerProduct]
	}

	name := c.PostForm("name")
	category := c.PostForm("category")
	if name == "" || category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fields 'name' and 'category' are required"})
		return
	}

	var tenureOptions []models.TenureOption
	if raw := c.PostForm("tenureOptions"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &tenureOptions); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse tenureOptions JSON"})
			return
		}
	}
	if len(tenureOptions) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one tenure option is required"})
		return
	}

	basePrice, _ := strconv.ParseFloat(c.PostForm("basePrice"), 64)
	deposit, _ := strconv.ParseFloat(c.PostForm("refundableDeposit"), 64)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var imageURLs []string
	for _, file := range files {
		url, err := services.UploadImage(ctx, "products", file)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Image upload failed", "details": err.Error()})
			return
		}
		imageURLs = append(imageURLs, url)
	}

	now := time.Now()
	product := models.Product{
		Name:              name,
		BasePrice:         basePrice,
		Category:          category,
		Description:       c.PostForm("description"),
		RefundableDeposit: deposit,
		Brand:             c.PostForm("brand"),
		Dimensions:        c.PostForm("dimensions"),
		Color:             c.PostForm("color"),
		TenureOptions:     tenureOptions,
		Images:            imageURLs,
		Locations:         parseLocations(c.PostForm("location")),
		IsActive:          true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	res, err := database.Products().InsertOne(ctx, product)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating product: " + err.Error()})
		return
	}
	product.ID = res.InsertedID.(primitive.ObjectID)

	cache.InvalidateProducts(ctx)

	c.JSON(http.StatusCreated, product)
}

// UpdateProduct applies a partial multipart update. existingImages (a JSON
// array) selects which stored images survive; anything dropped is removed
// from the media host best effort, and freshly uploaded files are appended.
func UpdateProduct(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var product models.Product
	if err := database.Products().FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error reading product"})
		return
	}

	update := bson.M{}

	for _, field := range []string{"name", "description", "category", "brand", "dimensions", "color"} {
		if v, ok := c.GetPostForm(field); ok {
			update[field] = v
		}
	}
	if v, ok := c.GetPostForm("basePrice"); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			update["basePrice"] = f
		}
	}
	if v, ok := c.GetPostForm("refundableDeposit"); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			update["refundableDeposit"] = f
		}
	}
	if v, ok := c.GetPostForm("isActive"); ok {
		update["isActive"] = v == "true"
	}
	if v, ok := c.GetPostForm("location"); ok {
		update["location"] = parseLocations(v)
	}
	if v, ok := c.GetPostForm("tenureOptions"); ok {
		var tenureOptions []models.TenureOption
		if err := json.Unmarshal([]byte(v), &tenureOptions); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse tenureOptions JSON"})
			return
		}
		update["tenureOptions"] = tenureOptions
	}

	finalImages := product.Images
	if raw, ok := c.GetPostForm("existingImages"); ok {
		var existing []string
		if err := json.Unmarshal([]byte(raw), &existing); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse existingImages JSON"})
			return
		}
		finalImages = existing

		for _, img := range product.Images {
			if !contains(existing, img) {
				if err := services.DeleteImage(ctx, img); err != nil {
					// Keep going; an orphaned object is better than a failed update.
					c.Error(err)
				}
			}
		}
	}

	if form, err := c.MultipartForm(); err == nil {
		for _, file := range form.File["images"] {
			url, err := services.UploadImage(ctx, "products", file)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Image upload failed", "details": err.Error()})
				return
			}
			finalImages = append(finalImages, url)
		}
	}

	update["images"] = finalImages
	update["updatedAt"] = time.Now()

	var updated models.Product
	err = database.Products().FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating product"})
		return
	}

	cache.InvalidateProducts(ctx)

	c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully", "product": updated})
}

func DeleteProduct(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var product models.Product
	if err := database.Products().FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error reading product"})
		return
	}

	for _, img := range product.Images {
		if err := services.DeleteImage(ctx, img); err != nil {
			c.Error(err)
		}
	}

	if _, err := database.Products().DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting product"})
		return
	}

	cache.InvalidateProducts(ctx)

	c.JSON(http.StatusOK, gin.H{"message": "Product removed"})
}

// parseLocations accepts a JSON array, a JSON string, or a plain
// comma-separated value — admin clients have sent all three.
func parseLocations(raw string) []string {
	if raw == "" {
		return nil
	}

	var arr []string
	if err := json.Unmarshal([]byte(raw), &arr); err == nil {
		return arr
	}

	var single string
	if err := json.Unmarshal([]byte(raw), &single); err == nil {
		raw = single
	}

	var locations []string
	for _, loc := range strings.Split(raw, ",") {
		if loc = strings.TrimSpace(loc); loc != "" {
			locations = append(locations, loc)
		}
	}
	return locations
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

package carousel

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"furnirent_backend/internal/database"
	"furnirent_backend/internal/models"
	"furnirent_backend/internal/services"
)

// GetCarousel lists slides newest-first for the storefront hero banner.
func GetCarousel(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := database.Carousel().Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching carousel"})
		return
	}

	items := []models.CarouselItem{}
	if err := cursor.All(ctx, &items); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching carousel"})
		return
	}

	c.JSON(http.StatusOK, items)
}

func GetCarouselItem(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid carousel ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var item models.CarouselItem
	if err := database.Carousel().FindOne(ctx, bson.M{"_id": id}).Decode(&item); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Carousel item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching carousel item"})
		return
	}

	c.JSON(http.StatusOK, item)
}

// CreateCarouselItem uploads the slide image to the media host and stores
// the slide. The image is mandatory.
func CreateCarouselItem(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Slide image is required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	imageURL, err := services.UploadImage(ctx, "carousel", file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error uploading image"})
		return
	}

	order, _ := strconv.Atoi(c.PostForm("order"))
	isActive := c.PostForm("isActive") != "false"

	now := time.Now()
	item := models.CarouselItem{
		Title:     c.PostForm("title"),
		Subtitle:  c.PostForm("subtitle"),
		Image:     imageURL,
		Order:     order,
		IsActive:  isActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	result, err := database.Carousel().InsertOne(ctx, item)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving carousel item"})
		return
	}
	item.ID = result.InsertedID.(primitive.ObjectID)

	c.JSON(http.StatusCreated, item)
}

// UpdateCarouselItem patches the supplied fields; a new image replaces the
// old one on the media host.
func UpdateCarouselItem(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid carousel ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var existing models.CarouselItem
	if err := database.Carousel().FindOne(ctx, bson.M{"_id": id}).Decode(&existing); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Carousel item not found"})
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if title, ok := c.GetPostForm("title"); ok {
		set["title"] = title
	}
	if subtitle, ok := c.GetPostForm("subtitle"); ok {
		set["subtitle"] = subtitle
	}
	if orderStr, ok := c.GetPostForm("order"); ok {
		order, err := strconv.Atoi(orderStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order value"})
			return
		}
		set["order"] = order
	}
	if active, ok := c.GetPostForm("isActive"); ok {
		set["isActive"] = active != "false"
	}

	if file, err := c.FormFile("image"); err == nil {
		imageURL, err := services.UploadImage(ctx, "carousel", file)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error uploading image"})
			return
		}
		set["image"] = imageURL
		if existing.Image != "" {
			if err := services.DeleteImage(ctx, existing.Image); err != nil {
				c.Error(err)
			}
		}
	}

	var updated models.CarouselItem
	err = database.Carousel().FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating carousel item"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteCarouselItem removes the slide and best-effort deletes its image.
func DeleteCarouselItem(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid carousel ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var item models.CarouselItem
	if err := database.Carousel().FindOne(ctx, bson.M{"_id": id}).Decode(&item); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Carousel item not found"})
		return
	}

	if item.Image != "" {
		if err := services.DeleteImage(ctx, item.Image); err != nil {
			c.Error(err)
		}
	}

	if _, err := database.Carousel().DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting carousel item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Carousel item deleted"})
}

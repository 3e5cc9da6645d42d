package user

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"furnirent_backend/internal/database"
	"furnirent_backend/internal/models"
)

// UpdateUserDetails upserts the caller's contact details. If a phone number
// is already on file and the supplied one differs, the request is rejected
// so a checkout can't silently switch the contact number.
func UpdateUserDetails(c *gin.Context) {
	uid := c.GetString("user_id")

	var input struct {
		Name    string `json:"name"`
		Phone   string `json:"phone"`
		Address string `json:"address"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	input.Phone = strings.TrimSpace(input.Phone)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var existing models.User
	err := database.Users().FindOne(ctx, bson.M{"uid": uid}).Decode(&existing)
	if err != nil && err != mongo.ErrNoDocuments {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error reading user"})
		return
	}
	if existing.Phone != "" && input.Phone != "" && existing.Phone != input.Phone {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Phone number does not match the one on file"})
		return
	}

	set := bson.M{"updated_at": time.Now()}
	if input.Name != "" {
		set["name"] = input.Name
	}
	if input.Phone != "" {
		set["phone"] = input.Phone
	}
	if input.Address != "" {
		set["address"] = input.Address
	}
	if email := c.GetString("email"); email != "" {
		set["email"] = email
	}

	_, err = database.Users().UpdateOne(ctx,
		bson.M{"uid": uid},
		bson.M{"$set": set},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Details updated"})
}

// GetUserDetails returns the stored contact details; fields never set come
// back as empty strings rather than a 404.
func GetUserDetails(c *gin.Context) {
	uid := c.GetString("user_id")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	err := database.Users().FindOne(ctx, bson.M{"uid": uid}).Decode(&user)
	if err != nil && err != mongo.ErrNoDocuments {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error reading user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name":    user.Name,
		"email":   user.Email,
		"phone":   user.Phone,
		"address": user.Address,
	})
}

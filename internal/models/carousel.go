package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CarouselItem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Subtitle  string             `bson:"subtitle" json:"subtitle"`
	Image     string             `bson:"image" json:"image"`
	Order     int                `bson:"order" json:"order"`
	IsActive  bool               `bson:"isActive" json:"isActive"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/RayyanKhan4004/PEMPAK-api/images"
)

// Blog carries one required primary image and up to five secondary ones.
type Blog struct {
	ID          bson.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Image       images.Ref    `json:"image" bson:"image"`
	Title       string        `json:"title" bson:"title"`
	Description string        `json:"description" bson:"description"`
	PF          string        `json:"pf" bson:"pf"`
	Date        time.Time     `json:"date" bson:"date"`
	Images      []images.Ref  `json:"images" bson:"images"`
	CreatedAt   time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" bson:"updated_at"`
}

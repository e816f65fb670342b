package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/RayyanKhan4004/PEMPAK-api/images"
)

type Product struct {
	ID          bson.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Heading     string        `json:"heading" bson:"heading"`
	Type        string        `json:"type" bson:"type"`
	Description string        `json:"description" bson:"description"`
	Images      []images.Ref  `json:"images" bson:"images"`
	CreatedAt   time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" bson:"updated_at"`
}

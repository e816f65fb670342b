package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/RayyanKhan4004/PEMPAK-api/images"
)

type Category struct {
	ID               bson.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name             string        `json:"name" bson:"name"`
	Description      string        `json:"description" bson:"description"`
	BannerImage      images.Ref    `json:"bannerImage" bson:"banner_image"`
	AdditionalImages []images.Ref  `json:"additionalImages" bson:"additional_images"`
	CreatedAt        time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at" bson:"updated_at"`
}

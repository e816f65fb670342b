package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/RayyanKhan4004/PEMPAK-api/images"
)

// ParentCategories is the fixed set of valid parent category names. The
// parent is stored by name, not as a reference.
var ParentCategories = []string{
	"Switchgear / Controlgear",
	"Power Distribution Transformer",
	"Green Energy",
	"Appliances",
}

func ValidParentCategory(name string) bool {
	for _, p := range ParentCategories {
		if p == name {
			return true
		}
	}
	return false
}

type SubCategory struct {
	ID             bson.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name           string        `json:"name" bson:"name"`
	Description    string        `json:"description,omitempty" bson:"description,omitempty"`
	BannerImg      *images.Ref   `json:"bannerimg,omitempty" bson:"bannerimg,omitempty"`
	Images         []images.Ref  `json:"images" bson:"images"`
	ParentCategory string        `json:"parentCategory" bson:"parent_category"`
	CreatedAt      time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at" bson:"updated_at"`
}

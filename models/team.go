package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/RayyanKhan4004/PEMPAK-api/images"
)

type Team struct {
	ID        bson.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	PF        string        `json:"pf" bson:"pf"`
	Name      string        `json:"name" bson:"name"`
	Role      string        `json:"role" bson:"role"`
	Image     *images.Ref   `json:"image,omitempty" bson:"image,omitempty"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" bson:"updated_at"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Safety levels: 0 safe, 1 warning, 2 caution, 3 unsafe.
type UnsafeArea struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Lat         float64            `json:"lat" bson:"lat"`
	Lng         float64            `json:"lng" bson:"lng"`
	SafetyLevel int                `json:"safetyLevel" bson:"safetyLevel"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Doctor struct {
	ID             primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name"`
	Email          string             `json:"email" bson:"email"`
	Specialization string             `json:"specialization" bson:"specialization"`
	Hospital       primitive.ObjectID `json:"hospital" bson:"hospital"`
	ContactNumber  string             `json:"contactNumber" bson:"contactNumber"`
	Experience     int                `json:"experience" bson:"experience"`
	IsActive       bool               `json:"isActive" bson:"isActive"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// DoctorView is a doctor with its hospital reference populated.
type DoctorView struct {
	ID             primitive.ObjectID `json:"_id" bson:"_id"`
	Name           string             `json:"name" bson:"name"`
	Email          string             `json:"email" bson:"email"`
	Specialization string             `json:"specialization" bson:"specialization"`
	Hospital       *HospitalSummary   `json:"hospital,omitempty" bson:"hospital,omitempty"`
	ContactNumber  string             `json:"contactNumber" bson:"contactNumber"`
	Experience     int                `json:"experience" bson:"experience"`
	IsActive       bool               `json:"isActive" bson:"isActive"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type DoctorSummary struct {
	ID             primitive.ObjectID `json:"_id" bson:"_id"`
	Name           string             `json:"name" bson:"name"`
	Email          string             `json:"email,omitempty" bson:"email"`
	Specialization string             `json:"specialization" bson:"specialization"`
	Hospital       *HospitalSummary   `json:"hospital,omitempty" bson:"hospital,omitempty"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

type HealthCardDocument struct {
	URL        string    `json:"url" bson:"url"`
	UploadedAt time.Time `json:"uploadedAt" bson:"uploadedAt"`
}

type Appointment struct {
	ID                 primitive.ObjectID  `json:"_id" bson:"_id,omitempty"`
	User               primitive.ObjectID  `json:"user" bson:"user"`
	Doctor             primitive.ObjectID  `json:"doctor" bson:"doctor"`
	AppointmentDate    time.Time           `json:"appointmentDate" bson:"appointmentDate"`
	Status             string              `json:"status" bson:"status"`
	Notes              string              `json:"notes,omitempty" bson:"notes,omitempty"`
	MeetLink           string              `json:"meetLink,omitempty" bson:"meetLink,omitempty"`
	HealthCardDocument *HealthCardDocument `json:"healthCardDocument,omitempty" bson:"healthCardDocument,omitempty"`
	PrescriptionURL    string              `json:"prescriptionUrl,omitempty" bson:"prescriptionUrl,omitempty"`
	CreatedAt          time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt          time.Time           `json:"updatedAt" bson:"updatedAt"`
}

// AppointmentView is an appointment with user, doctor and hospital populated.
type AppointmentView struct {
	ID                 primitive.ObjectID  `json:"_id" bson:"_id"`
	User               *UserSummary        `json:"user,omitempty" bson:"user,omitempty"`
	Doctor             *DoctorSummary      `json:"doctor,omitempty" bson:"doctor,omitempty"`
	AppointmentDate    time.Time           `json:"appointmentDate" bson:"appointmentDate"`
	Status             string              `json:"status" bson:"status"`
	Notes              string              `json:"notes,omitempty" bson:"notes,omitempty"`
	MeetLink           string              `json:"meetLink,omitempty" bson:"meetLink,omitempty"`
	HealthCardDocument *HealthCardDocument `json:"healthCardDocument,omitempty" bson:"healthCardDocument,omitempty"`
	PrescriptionURL    string              `json:"prescriptionUrl,omitempty" bson:"prescriptionUrl,omitempty"`
	CreatedAt          time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt          time.Time           `json:"updatedAt" bson:"updatedAt"`
}

package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	db "SehatCare/config/db"
	"SehatCare/models"
	"SehatCare/role"
	"SehatCare/util"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var appointmentStatuses = []string{models.StatusScheduled, models.StatusCompleted, models.StatusCancelled}

func ValidStatus(status string) bool {
	for _, s := range appointmentStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// CanTransition reports whether an appointment in status from may move to
// status to. Completed and cancelled are terminal; staying put is allowed.
func CanTransition(from, to string) bool {
	if !ValidStatus(to) {
		return false
	}
	if from == to {
		return true
	}
	return from == models.StatusScheduled && to != models.StatusScheduled
}

// statusesLeadingTo lists every stored status from which to is reachable.
func statusesLeadingTo(to string) []string {
	from := []string{}
	for _, s := range appointmentStatuses {
		if CanTransition(s, to) {
			from = append(from, s)
		}
	}
	return from
}

type AppointmentInput struct {
	UserID          string
	DoctorID        string
	AppointmentDate string
	Notes           string
	HealthCard      *UploadedFile
}

var appointmentDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

func parseAppointmentDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range appointmentDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, util.Validation(util.INVALID_APPOINTMENT_DATE)
}

func ParseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return primitive.NilObjectID, util.Validation(util.INVALID_ID)
	}
	return oid, nil
}

/*
* Doctor and date are mandatory
* Both ids must be valid object ids
* Build the appointment in the scheduled state
 */
func BuildAppointment(in AppointmentInput) (*models.Appointment, error) {
	if strings.TrimSpace(in.DoctorID) == "" {
		return nil, util.Validation(util.DOCTOR_ID_REQUIRED)
	}
	if strings.TrimSpace(in.AppointmentDate) == "" {
		return nil, util.Validation(util.APPOINTMENT_DATE_REQUIRED)
	}
	doctorID, err := ParseObjectID(in.DoctorID)
	if err != nil {
		return nil, err
	}
	userID, err := ParseObjectID(in.UserID)
	if err != nil {
		return nil, err
	}
	date, err := parseAppointmentDate(in.AppointmentDate)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &models.Appointment{
		User:            userID,
		Doctor:          doctorID,
		AppointmentDate: date,
		Status:          models.StatusScheduled,
		Notes:           strings.TrimSpace(in.Notes),
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

/*
* Validate the input
* The doctor must exist and be active
* Store the optional health card under uploads/health-cards
* Insert the appointment, dropping the stored card if the insert fails
 */
func CreateAppointment(ctx context.Context, in AppointmentInput) (*models.Appointment, error) {
	appointment, err := BuildAppointment(in)
	if err != nil {
		return nil, err
	}
	if _, err := FetchDoctorByID(ctx, appointment.Doctor.Hex()); err != nil {
		log.Error().Err(err).Str("doctor", in.DoctorID).Msg("Error from FetchDoctorByID")
		return nil, err
	}

	var healthCard *models.StoredFile
	if in.HealthCard != nil {
		stored, err := SaveUpload(util.HealthCardsDir, "health-card-", in.HealthCard)
		if err != nil {
			log.Error().Err(err).Msg("Error while storing health card")
			return nil, err
		}
		healthCard = &stored
		appointment.HealthCardDocument = &models.HealthCardDocument{
			URL:        stored.Path,
			UploadedAt: time.Now().UTC(),
		}
	}

	coll := db.OpenCollections(util.AppointmentCollection)
	inserted, err := db.CreateOne(ctx, coll, appointment)
	if err != nil {
		log.Error().Err(err).Msg("Error from createOne")
		if healthCard != nil {
			discardUpload(util.HealthCardsDir, *healthCard)
		}
		return nil, err
	}
	appointment.ID = insertedID(inserted)
	log.Info().Str("appointment", appointment.ID.Hex()).Str("doctor", in.DoctorID).Msg("appointment created")
	return appointment, nil
}

/*
* Match the appointments, newest first
* Populate user (name, email), doctor (name, specialization) and the doctor's hospital (name, address)
 */
func appointmentPipeline(match bson.M) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "appointmentDate", Value: -1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: util.UserCollection},
			{Key: "localField", Value: "user"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "user"},
		}}},
		{{Key: "$unwind", Value: bson.D{{Key: "path", Value: "$user"}, {Key: "preserveNullAndEmptyArrays", Value: true}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: util.DoctorCollection},
			{Key: "localField", Value: "doctor"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "doctor"},
		}}},
		{{Key: "$unwind", Value: bson.D{{Key: "path", Value: "$doctor"}, {Key: "preserveNullAndEmptyArrays", Value: true}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: util.HospitalCollection},
			{Key: "localField", Value: "doctor.hospital"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "doctor.hospital"},
		}}},
		{{Key: "$unwind", Value: bson.D{{Key: "path", Value: "$doctor.hospital"}, {Key: "preserveNullAndEmptyArrays", Value: true}}}},
		{{Key: "$project", Value: bson.D{{Key: "user.password", Value: 0}}}},
	}
}

func findAppointments(ctx context.Context, match bson.M) ([]models.AppointmentView, error) {
	coll := db.OpenCollections(util.AppointmentCollection)
	appointments := []models.AppointmentView{}
	if err := db.Aggregate(ctx, coll, appointmentPipeline(match), &appointments); err != nil {
		log.Error().Err(err).Msg("Error while fetching appointments")
		return nil, err
	}
	return appointments, nil
}

func FetchAllAppointments(ctx context.Context) ([]models.AppointmentView, error) {
	return findAppointments(ctx, bson.M{})
}

func FetchUserAppointments(ctx context.Context, userID string) ([]models.AppointmentView, error) {
	oid, err := ParseObjectID(userID)
	if err != nil {
		return nil, err
	}
	return findAppointments(ctx, bson.M{"user": oid})
}

// FetchDoctorAppointments leaves out cancelled appointments.
func FetchDoctorAppointments(ctx context.Context, doctorID string) ([]models.AppointmentView, error) {
	oid, err := ParseObjectID(doctorID)
	if err != nil {
		return nil, err
	}
	return findAppointments(ctx, bson.M{"doctor": oid, "status": bson.M{"$ne": models.StatusCancelled}})
}

// FetchScheduledBetween returns scheduled appointments with from <= date < to.
func FetchScheduledBetween(ctx context.Context, from, to time.Time) ([]models.AppointmentView, error) {
	return findAppointments(ctx, bson.M{
		"status":          models.StatusScheduled,
		"appointmentDate": bson.M{"$gte": from, "$lt": to},
	})
}

func FetchAppointmentByID(ctx context.Context, id string) (*models.AppointmentView, error) {
	oid, err := ParseObjectID(id)
	if err != nil {
		return nil, err
	}
	appointments, err := findAppointments(ctx, bson.M{"_id": oid})
	if err != nil {
		return nil, err
	}
	if len(appointments) == 0 {
		return nil, util.NotFound(util.APPOINTMENT_NOT_FOUND)
	}
	return &appointments[0], nil
}

// Requester is the authenticated caller acting on an appointment.
type Requester struct {
	UserID string
	Role   string
}

func (r Requester) IsDoctor() bool {
	return r.Role == role.Doctor
}

// scope limits a patient to the appointments booked for them; doctors see all.
func (r Requester) scope() (bson.M, error) {
	if r.IsDoctor() {
		return nil, nil
	}
	oid, err := primitive.ObjectIDFromHex(r.UserID)
	if err != nil {
		return nil, util.Forbidden(util.APPOINTMENT_NOT_OWNED)
	}
	return bson.M{"user": oid}, nil
}

// FetchAppointmentFor returns the appointment when the requester may read it.
func FetchAppointmentFor(ctx context.Context, id string, by Requester) (*models.AppointmentView, error) {
	appointment, err := FetchAppointmentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if by.IsDoctor() {
		return appointment, nil
	}
	if appointment.User == nil || appointment.User.ID.Hex() != by.UserID {
		return nil, util.Forbidden(util.APPOINTMENT_NOT_OWNED)
	}
	return appointment, nil
}

/*
* Update only when the stored status can reach the target status
* scope narrows the match further, e.g. to the booking user
* On a miss, tell a missing appointment apart from a foreign one or a forbidden transition
 */
func transitionAppointment(ctx context.Context, id primitive.ObjectID, to string, scope, extra bson.M) (*models.Appointment, error) {
	coll := db.OpenCollections(util.AppointmentCollection)
	set := bson.M{"status": to, "updatedAt": time.Now().UTC()}
	for k, v := range extra {
		set[k] = v
	}
	filter := bson.M{
		"_id":    id,
		"status": bson.M{"$in": statusesLeadingTo(to)},
	}
	for k, v := range scope {
		filter[k] = v
	}
	updated := &models.Appointment{}
	err := db.FindOneAndUpdate(ctx, coll, filter, bson.M{"$set": set}, updated)
	if err == nil {
		return updated, nil
	}
	if !db.IsNotFound(err) {
		log.Error().Err(err).Msg("Error while updating appointment status")
		return nil, err
	}

	current := &models.Appointment{}
	if err := db.FindOne(ctx, coll, bson.M{"_id": id}, current); err != nil {
		if db.IsNotFound(err) {
			return nil, util.NotFound(util.APPOINTMENT_NOT_FOUND)
		}
		return nil, err
	}
	if owner, ok := scope["user"].(primitive.ObjectID); ok && current.User != owner {
		return nil, util.Forbidden(util.APPOINTMENT_NOT_OWNED)
	}
	return nil, util.Conflict(fmt.Sprintf(util.INVALID_STATUS_TRANSITION, current.Status, to))
}

/*
* Only doctors complete appointments; patients may move their own bookings otherwise
* The transition itself is checked against the stored status
 */
func UpdateAppointmentStatus(ctx context.Context, id, status string, by Requester) (*models.AppointmentView, error) {
	if !ValidStatus(status) {
		return nil, util.Validation(util.INVALID_STATUS)
	}
	if status == models.StatusCompleted && !by.IsDoctor() {
		return nil, util.Forbidden(util.ONLY_DOCTOR_CAN_COMPLETE)
	}
	oid, err := ParseObjectID(id)
	if err != nil {
		return nil, err
	}
	scope, err := by.scope()
	if err != nil {
		return nil, err
	}
	if _, err := transitionAppointment(ctx, oid, status, scope, nil); err != nil {
		return nil, err
	}
	return FetchAppointmentByID(ctx, id)
}

func CancelAppointment(ctx context.Context, id string, by Requester) error {
	oid, err := ParseObjectID(id)
	if err != nil {
		return err
	}
	scope, err := by.scope()
	if err != nil {
		return err
	}
	_, err = transitionAppointment(ctx, oid, models.StatusCancelled, scope, nil)
	return err
}

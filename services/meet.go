package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	db "SehatCare/config/db"
	"SehatCare/mailer"
	"SehatCare/models"
	"SehatCare/util"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
)

// Mailer delivers prescription emails; main swaps in SMTP when configured.
var Mailer mailer.Sender = mailer.LogMailer{}

// dispatch runs fire-and-forget work. Tests replace it to run inline.
var dispatch = func(fn func()) { go fn() }

const emailTimeout = 30 * time.Second

func newMeetingID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:13]
}

func CreateMeet(ctx context.Context, appointmentID string) (string, error) {
	oid, err := ParseObjectID(appointmentID)
	if err != nil {
		return "", err
	}
	link := util.MeetBaseURL + newMeetingID()
	coll := db.OpenCollections(util.AppointmentCollection)
	updated := &models.Appointment{}
	update := bson.M{"$set": bson.M{"meetLink": link, "updatedAt": time.Now().UTC()}}
	if err := db.FindOneAndUpdate(ctx, coll, bson.M{"_id": oid}, update, updated); err != nil {
		if db.IsNotFound(err) {
			return "", util.NotFound(util.APPOINTMENT_NOT_FOUND)
		}
		log.Error().Err(err).Msg("Error from findOneAndUpdate")
		return "", err
	}
	log.Info().Str("appointment", appointmentID).Str("meetLink", link).Msg("meet created")
	return link, nil
}

/*
* The appointment must exist and the patient must have an email
* A cancelled appointment cannot take a prescription
* Store the file, mark the appointment completed
* Email the prescription in the background, failures are only logged
 */
func UploadPrescription(ctx context.Context, appointmentID string, file *UploadedFile) (string, error) {
	if file == nil {
		return "", util.Validation(util.NO_FILE_UPLOADED)
	}
	appointment, err := FetchAppointmentByID(ctx, appointmentID)
	if err != nil {
		return "", err
	}
	if appointment.User == nil || strings.TrimSpace(appointment.User.Email) == "" {
		return "", util.Validation(util.NO_PATIENT_EMAIL)
	}
	if !CanTransition(appointment.Status, models.StatusCompleted) {
		return "", util.Conflict(fmt.Sprintf(util.INVALID_STATUS_TRANSITION, appointment.Status, models.StatusCompleted))
	}

	stored, err := SaveUpload(util.PrescriptionsDir, "prescription-", file)
	if err != nil {
		log.Error().Err(err).Msg("Error while storing prescription")
		return "", err
	}
	extra := bson.M{"prescriptionUrl": stored.Path}
	if _, err := transitionAppointment(ctx, appointment.ID, models.StatusCompleted, nil, extra); err != nil {
		discardUpload(util.PrescriptionsDir, stored)
		return "", err
	}

	msg := mailer.Message{
		To:      appointment.User.Email,
		Subject: util.PRESCRIPTION_EMAIL_SUBJECT,
		Body:    util.PRESCRIPTION_EMAIL_BODY,
		Attachments: []mailer.Attachment{
			{Name: file.Name, Data: file.Data},
		},
	}
	dispatch(func() {
		sendCtx, cancel := context.WithTimeout(context.Background(), emailTimeout)
		defer cancel()
		if err := Mailer.Send(sendCtx, msg); err != nil {
			log.Error().Err(err).Str("to", msg.To).Msg("Error sending prescription email")
			return
		}
		log.Info().Str("to", msg.To).Msg("prescription email sent")
	})
	return stored.Path, nil
}

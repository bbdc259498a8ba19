package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"SehatCare/models"
	"SehatCare/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestCreateMeet(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("stores a jitsi link", func(mt *mtest.T) {
		useMockDB(mt)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{{Key: "_id", Value: id}}}))

		link, err := CreateMeet(ctx, id.Hex())
		require.NoError(mt, err)
		assert.True(mt, strings.HasPrefix(link, "https://meet.jit.si/"))
		assert.Len(mt, strings.TrimPrefix(link, util.MeetBaseURL), 13)
	})

	mt.Run("unknown appointment", func(mt *mtest.T) {
		useMockDB(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		_, err := CreateMeet(ctx, primitive.NewObjectID().Hex())
		assert.True(mt, errors.Is(err, util.ErrNotFound))
	})
}

func TestUploadPrescription(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()
	file := &UploadedFile{Name: "rx.pdf", MimeType: "application/pdf", Ext: ".pdf", Data: pdfBytes}

	mt.Run("completes the appointment and emails the patient", func(mt *mtest.T) {
		useMockDB(mt)
		runInline(mt)
		UploadRoot = mt.TempDir()
		defer func() { UploadRoot = "uploads" }()
		rec := &recordingMailer{}
		prev := Mailer
		Mailer = rec
		defer func() { Mailer = prev }()

		id := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch, appointmentViewDoc(id, models.StatusScheduled, "asha@example.com")),
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{{Key: "_id", Value: id}, {Key: "status", Value: models.StatusCompleted}}}),
		)

		url, err := UploadPrescription(ctx, id.Hex(), file)
		require.NoError(mt, err)
		assert.True(mt, strings.HasPrefix(url, "/uploads/prescriptions/prescription-"))

		_, err = os.Stat(filepath.Join(UploadRoot, util.PrescriptionsDir, filepath.Base(url)))
		assert.NoError(mt, err)

		require.Len(mt, rec.sent, 1)
		assert.Equal(mt, "asha@example.com", rec.sent[0].To)
		assert.Equal(mt, util.PRESCRIPTION_EMAIL_SUBJECT, rec.sent[0].Subject)
		require.Len(mt, rec.sent[0].Attachments, 1)
		assert.Equal(mt, "rx.pdf", rec.sent[0].Attachments[0].Name)
	})

	mt.Run("email failure does not fail the upload", func(mt *mtest.T) {
		useMockDB(mt)
		runInline(mt)
		UploadRoot = mt.TempDir()
		defer func() { UploadRoot = "uploads" }()
		prev := Mailer
		Mailer = &recordingMailer{err: errors.New("smtp down")}
		defer func() { Mailer = prev }()

		id := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch, appointmentViewDoc(id, models.StatusCompleted, "asha@example.com")),
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{{Key: "_id", Value: id}}}),
		)

		_, err := UploadPrescription(ctx, id.Hex(), file)
		assert.NoError(mt, err)
	})

	mt.Run("patient without email", func(mt *mtest.T) {
		useMockDB(mt)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch, appointmentViewDoc(id, models.StatusScheduled, "")))

		_, err := UploadPrescription(ctx, id.Hex(), file)
		assert.EqualError(mt, err, util.NO_PATIENT_EMAIL)
	})

	mt.Run("cancelled appointment", func(mt *mtest.T) {
		useMockDB(mt)
		UploadRoot = mt.TempDir()
		defer func() { UploadRoot = "uploads" }()
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch, appointmentViewDoc(id, models.StatusCancelled, "asha@example.com")))

		_, err := UploadPrescription(ctx, id.Hex(), file)
		assert.True(mt, errors.Is(err, util.ErrConflict))
		_, statErr := os.Stat(filepath.Join(UploadRoot, util.PrescriptionsDir))
		assert.True(mt, os.IsNotExist(statErr))
	})

	mt.Run("no file", func(mt *mtest.T) {
		_, err := UploadPrescription(ctx, primitive.NewObjectID().Hex(), nil)
		assert.EqualError(mt, err, util.NO_FILE_UPLOADED)
	})
}

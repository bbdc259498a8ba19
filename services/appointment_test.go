package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"SehatCare/models"
	"SehatCare/role"
	"SehatCare/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{models.StatusScheduled, models.StatusCompleted, true},
		{models.StatusScheduled, models.StatusCancelled, true},
		{models.StatusScheduled, models.StatusScheduled, true},
		{models.StatusCompleted, models.StatusCompleted, true},
		{models.StatusCompleted, models.StatusScheduled, false},
		{models.StatusCompleted, models.StatusCancelled, false},
		{models.StatusCancelled, models.StatusScheduled, false},
		{models.StatusCancelled, models.StatusCompleted, false},
		{models.StatusScheduled, "pending", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
	assert.ElementsMatch(t, []string{models.StatusScheduled, models.StatusCompleted}, statusesLeadingTo(models.StatusCompleted))
	assert.Equal(t, []string{models.StatusScheduled}, statusesLeadingTo(models.StatusScheduled))
}

func TestBuildAppointmentValidation(t *testing.T) {
	doctor := primitive.NewObjectID().Hex()
	user := primitive.NewObjectID().Hex()

	_, err := BuildAppointment(AppointmentInput{UserID: user, AppointmentDate: "2025-03-01"})
	assert.True(t, errors.Is(err, util.ErrValidation))
	assert.EqualError(t, err, util.DOCTOR_ID_REQUIRED)

	_, err = BuildAppointment(AppointmentInput{UserID: user, DoctorID: doctor})
	assert.EqualError(t, err, util.APPOINTMENT_DATE_REQUIRED)

	_, err = BuildAppointment(AppointmentInput{UserID: user, DoctorID: doctor, AppointmentDate: "next tuesday"})
	assert.EqualError(t, err, util.INVALID_APPOINTMENT_DATE)

	_, err = BuildAppointment(AppointmentInput{UserID: user, DoctorID: "not-an-id", AppointmentDate: "2025-03-01"})
	assert.EqualError(t, err, util.INVALID_ID)

	appointment, err := BuildAppointment(AppointmentInput{UserID: user, DoctorID: doctor, AppointmentDate: "2025-03-01T10:30:00+05:30"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusScheduled, appointment.Status)
	assert.Equal(t, time.Date(2025, 3, 1, 5, 0, 0, 0, time.UTC), appointment.AppointmentDate)
}

func doctorDoc(id primitive.ObjectID) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "name", Value: "Dr. Rao"},
		{Key: "specialization", Value: "Cardiology"},
		{Key: "isActive", Value: true},
	}
}

func appointmentViewDoc(id primitive.ObjectID, status, email string) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "status", Value: status},
		{Key: "user", Value: bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "name", Value: "Asha"}, {Key: "email", Value: email}}},
		{Key: "doctor", Value: bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "name", Value: "Dr. Rao"}}},
	}
}

func TestCreateAppointment(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("unknown doctor", func(mt *mtest.T) {
		useMockDB(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

		_, err := CreateAppointment(ctx, AppointmentInput{
			UserID:          primitive.NewObjectID().Hex(),
			DoctorID:        primitive.NewObjectID().Hex(),
			AppointmentDate: "2025-03-01",
		})
		assert.True(mt, errors.Is(err, util.ErrNotFound))
	})

	mt.Run("stores the health card", func(mt *mtest.T) {
		useMockDB(mt)
		UploadRoot = mt.TempDir()
		defer func() { UploadRoot = "uploads" }()

		doctorID := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch, doctorDoc(doctorID)),
			mtest.CreateSuccessResponse(),
		)

		appointment, err := CreateAppointment(ctx, AppointmentInput{
			UserID:          primitive.NewObjectID().Hex(),
			DoctorID:        doctorID.Hex(),
			AppointmentDate: "2025-03-01",
			HealthCard:      &UploadedFile{Name: "card.pdf", MimeType: "application/pdf", Ext: ".pdf", Data: pdfBytes},
		})
		require.NoError(mt, err)
		assert.False(mt, appointment.ID.IsZero())
		assert.Equal(mt, models.StatusScheduled, appointment.Status)
		require.NotNil(mt, appointment.HealthCardDocument)
		assert.Contains(mt, appointment.HealthCardDocument.URL, "/uploads/health-cards/health-card-")

		entries, err := os.ReadDir(filepath.Join(UploadRoot, util.HealthCardsDir))
		require.NoError(mt, err)
		assert.Len(mt, entries, 1)
	})
}

func TestCreateAppointmentDropsHealthCardWhenInsertFails(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("insert error", func(mt *mtest.T) {
		useMockDB(mt)
		UploadRoot = mt.TempDir()
		defer func() { UploadRoot = "uploads" }()

		doctorID := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch, doctorDoc(doctorID)),
			mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Message: "insert failed"}),
		)

		_, err := CreateAppointment(context.Background(), AppointmentInput{
			UserID:          primitive.NewObjectID().Hex(),
			DoctorID:        doctorID.Hex(),
			AppointmentDate: "2025-03-01",
			HealthCard:      &UploadedFile{Name: "card.pdf", MimeType: "application/pdf", Ext: ".pdf", Data: pdfBytes},
		})
		require.Error(mt, err)

		entries, err := os.ReadDir(filepath.Join(UploadRoot, util.HealthCardsDir))
		require.NoError(mt, err)
		assert.Empty(mt, entries)
	})
}

var doctorCaller = Requester{UserID: primitive.NewObjectID().Hex(), Role: role.Doctor}

func TestUpdateAppointmentStatus(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("rejects unknown status before touching the store", func(mt *mtest.T) {
		useMockDB(mt)
		_, err := UpdateAppointmentStatus(ctx, primitive.NewObjectID().Hex(), "pending", doctorCaller)
		assert.EqualError(mt, err, util.INVALID_STATUS)
		assert.Equal(mt, 400, util.StatusFor(err))
	})

	mt.Run("completes a scheduled appointment", func(mt *mtest.T) {
		useMockDB(mt)
		id := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{{Key: "_id", Value: id}, {Key: "status", Value: models.StatusCompleted}}}),
			mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch, appointmentViewDoc(id, models.StatusCompleted, "asha@example.com")),
		)

		view, err := UpdateAppointmentStatus(ctx, id.Hex(), models.StatusCompleted, doctorCaller)
		require.NoError(mt, err)
		assert.Equal(mt, models.StatusCompleted, view.Status)
		assert.Equal(mt, "asha@example.com", view.User.Email)
	})

	mt.Run("terminal states cannot be left", func(mt *mtest.T) {
		useMockDB(mt)
		id := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}),
			mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch, bson.D{{Key: "_id", Value: id}, {Key: "status", Value: models.StatusCancelled}}),
		)

		_, err := UpdateAppointmentStatus(ctx, id.Hex(), models.StatusCompleted, doctorCaller)
		assert.True(mt, errors.Is(err, util.ErrConflict))
		assert.Contains(mt, err.Error(), "cancelled to completed")
	})

	mt.Run("unknown appointment", func(mt *mtest.T) {
		useMockDB(mt)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}),
			mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch),
		)

		err := CancelAppointment(ctx, primitive.NewObjectID().Hex(), doctorCaller)
		assert.True(mt, errors.Is(err, util.ErrNotFound))
	})
}

func TestPatientScope(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()
	owner := primitive.NewObjectID()
	patient := Requester{UserID: owner.Hex(), Role: role.User}

	mt.Run("patients cannot complete", func(mt *mtest.T) {
		useMockDB(mt)
		_, err := UpdateAppointmentStatus(ctx, primitive.NewObjectID().Hex(), models.StatusCompleted, patient)
		assert.True(mt, errors.Is(err, util.ErrForbidden))
		assert.Equal(mt, 403, util.StatusFor(err))
	})

	mt.Run("cancelling a foreign appointment is forbidden", func(mt *mtest.T) {
		useMockDB(mt)
		id := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}),
			mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch, bson.D{
				{Key: "_id", Value: id},
				{Key: "user", Value: primitive.NewObjectID()},
				{Key: "status", Value: models.StatusScheduled},
			}),
		)

		err := CancelAppointment(ctx, id.Hex(), patient)
		assert.EqualError(mt, err, util.APPOINTMENT_NOT_OWNED)
		assert.True(mt, errors.Is(err, util.ErrForbidden))
	})

	mt.Run("own appointment can be cancelled", func(mt *mtest.T) {
		useMockDB(mt)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: id},
			{Key: "user", Value: owner},
			{Key: "status", Value: models.StatusCancelled},
		}}))

		assert.NoError(mt, CancelAppointment(ctx, id.Hex(), patient))
	})

	mt.Run("own cancelled appointment still conflicts", func(mt *mtest.T) {
		useMockDB(mt)
		id := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}),
			mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch, bson.D{
				{Key: "_id", Value: id},
				{Key: "user", Value: owner},
				{Key: "status", Value: models.StatusCompleted},
			}),
		)

		err := CancelAppointment(ctx, id.Hex(), patient)
		assert.True(mt, errors.Is(err, util.ErrConflict))
	})

	mt.Run("reading a foreign appointment is forbidden", func(mt *mtest.T) {
		useMockDB(mt)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch,
			appointmentViewDoc(id, models.StatusScheduled, "someone@example.com")))

		_, err := FetchAppointmentFor(ctx, id.Hex(), patient)
		assert.True(mt, errors.Is(err, util.ErrForbidden))
	})
}

func TestFetchAppointmentByIDMissing(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("not found", func(mt *mtest.T) {
		useMockDB(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

		_, err := FetchAppointmentByID(context.Background(), primitive.NewObjectID().Hex())
		assert.EqualError(mt, err, util.APPOINTMENT_NOT_FOUND)
	})
}

func TestAppointmentPipelineHidesPasswords(t *testing.T) {
	pipeline := appointmentPipeline(bson.M{"status": bson.M{"$ne": models.StatusCancelled}})
	last := pipeline[len(pipeline)-1]
	assert.Equal(t, "$project", last[0].Key)
	assert.Equal(t, bson.D{{Key: "user.password", Value: 0}}, last[0].Value)

	sort := pipeline[1]
	assert.Equal(t, "$sort", sort[0].Key)
	assert.Equal(t, bson.D{{Key: "appointmentDate", Value: -1}}, sort[0].Value)
}

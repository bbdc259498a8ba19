package migrations

import (
	"context"

	db "SehatCare/config/db"
	"SehatCare/models"
	"SehatCare/util"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
)

func DefaultAppointmentStatus(ctx context.Context) error {
	result, err := db.UpdateMany(ctx,
		db.DB.Collection(util.AppointmentCollection),
		bson.M{"$or": bson.A{
			bson.M{"status": bson.M{"$exists": false}},
			bson.M{"status": ""},
		}},
		bson.M{"$set": bson.M{"status": models.StatusScheduled}},
	)
	if err != nil {
		return err
	}
	log.Info().Int64("updated", result.ModifiedCount).Msg("Migration applied: default appointment status")
	return nil
}

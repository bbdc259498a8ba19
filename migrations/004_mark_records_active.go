package migrations

import (
	"context"

	db "SehatCare/config/db"
	"SehatCare/util"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
)

// MarkRecordsActive sets isActive on hospitals and doctors imported without it.
func MarkRecordsActive(ctx context.Context) error {
	for _, coll := range []string{util.HospitalCollection, util.DoctorCollection} {
		result, err := db.UpdateMany(ctx,
			db.DB.Collection(coll),
			bson.M{"isActive": bson.M{"$exists": false}},
			bson.M{"$set": bson.M{"isActive": true}},
		)
		if err != nil {
			return err
		}
		log.Info().Str("collection", coll).Int64("updated", result.ModifiedCount).Msg("Migration applied: isActive backfill")
	}
	return nil
}

// Run applies every migration in order.
func Run(ctx context.Context) error {
	steps := []func(context.Context) error{
		CreateIndexes,
		DefaultSafetyLevel,
		DefaultAppointmentStatus,
		MarkRecordsActive,
	}
	for _, step := range steps {
		if err := step(ctx); err != nil {
			return err
		}
	}
	return nil
}

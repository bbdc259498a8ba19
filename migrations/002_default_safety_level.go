package migrations

import (
	"context"

	db "SehatCare/config/db"
	"SehatCare/util"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
)

// DefaultSafetyLevel backfills markers stored before safetyLevel existed.
func DefaultSafetyLevel(ctx context.Context) error {
	result, err := db.UpdateMany(ctx,
		db.DB.Collection(util.UnsafeAreaCollection),
		bson.M{"safetyLevel": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"safetyLevel": util.DefaultSafetyLevel}},
	)
	if err != nil {
		return err
	}
	log.Info().Int64("updated", result.ModifiedCount).Msg("Migration applied: default safetyLevel")
	return nil
}

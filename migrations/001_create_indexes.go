package migrations

import (
	"context"

	db "SehatCare/config/db"
	"SehatCare/util"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var indexes = map[string][]mongo.IndexModel{
	util.UserCollection: {
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	},
	util.DoctorCollection: {
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "hospital", Value: 1}, {Key: "isActive", Value: 1}}},
	},
	util.AppointmentCollection: {
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "appointmentDate", Value: -1}}},
		{Keys: bson.D{{Key: "doctor", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "appointmentDate", Value: 1}}},
	},
	util.UnsafeAreaCollection: {
		{Keys: bson.D{{Key: "safetyLevel", Value: 1}}},
	},
}

func CreateIndexes(ctx context.Context) error {
	for coll, models := range indexes {
		names, err := db.DB.Collection(coll).Indexes().CreateMany(ctx, models)
		if err != nil {
			return err
		}
		log.Info().Str("collection", coll).Strs("indexes", names).Msg("Migration applied: indexes ensured")
	}
	return nil
}

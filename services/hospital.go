package services

import (
	"context"
	"strings"
	"time"

	db "SehatCare/config/db"
	redis "SehatCare/config/redis"
	"SehatCare/models"
	"SehatCare/util"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type HospitalInput struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
}

func trimmed(v *string) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(*v)
}

/*
* Name and address are mandatory
* Save to db and cache, drop the cached list
 */
func CreateHospital(ctx context.Context, in HospitalInput) (*models.Hospital, error) {
	name, address := trimmed(in.Name), trimmed(in.Address)
	if name == "" || address == "" {
		return nil, util.Validation(util.ALL_FIELDS_REQUIRED)
	}
	now := time.Now().UTC()
	hospital := &models.Hospital{
		Name:      name,
		Address:   address,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	coll := db.OpenCollections(util.HospitalCollection)
	res, err := db.CreateOne(ctx, coll, hospital)
	if err != nil {
		log.Error().Err(err).Msg("Error from createOne")
		return nil, err
	}
	hospital.ID = insertedID(res)

	if err := redis.SetCache(ctx, util.HospitalKey+hospital.ID.Hex(), hospital); err != nil {
		log.Warn().Err(err).Msg("Error from setCache")
	}
	invalidate(ctx, util.HospitalListKey)
	return hospital, nil
}

/*
* Check in cache, if exists return hospital
* If not exists, search in database and set in cache
 */
func FetchHospitalByID(ctx context.Context, id string) (*models.Hospital, error) {
	oid, err := ParseObjectID(id)
	if err != nil {
		return nil, err
	}
	key := util.HospitalKey + oid.Hex()
	cached := &models.Hospital{}
	if exists, err := redis.GetCache(ctx, key, cached); err == nil && exists {
		log.Debug().Str("key", key).Msg("From cache")
		return cached, nil
	}

	hospital := &models.Hospital{}
	coll := db.OpenCollections(util.HospitalCollection)
	if err := db.FindOne(ctx, coll, bson.M{"_id": oid, "isActive": true}, hospital); err != nil {
		if db.IsNotFound(err) {
			return nil, util.NotFound(util.HOSPITAL_NOT_FOUND)
		}
		log.Error().Err(err).Msg("Error from findOne")
		return nil, err
	}
	if err := redis.SetCache(ctx, key, hospital); err != nil {
		log.Warn().Err(err).Msg("Error from setCache")
	}
	return hospital, nil
}

func FetchAllHospitals(ctx context.Context) ([]models.Hospital, error) {
	hospitals := []models.Hospital{}
	if exists, err := redis.GetCache(ctx, util.HospitalListKey, &hospitals); err == nil && exists {
		return hospitals, nil
	}
	coll := db.OpenCollections(util.HospitalCollection)
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	if err := db.FindAll(ctx, coll, bson.M{"isActive": true}, &hospitals, opts); err != nil {
		log.Error().Err(err).Msg("Error from findAll")
		return nil, err
	}
	if err := redis.SetCache(ctx, util.HospitalListKey, hospitals); err != nil {
		log.Warn().Err(err).Msg("Error from setCache")
	}
	return hospitals, nil
}

/*
* Only provided fields are updated, and they cannot be blanked
* Refresh the cache entry with the updated document
 */
func UpdateHospital(ctx context.Context, id string, in HospitalInput) (*models.Hospital, error) {
	oid, err := ParseObjectID(id)
	if err != nil {
		return nil, err
	}
	set := bson.M{"updatedAt": time.Now().UTC()}
	for field, v := range map[string]*string{"name": in.Name, "address": in.Address} {
		if v == nil {
			continue
		}
		if trimmed(v) == "" {
			return nil, util.Validation(util.ALL_FIELDS_REQUIRED)
		}
		set[field] = trimmed(v)
	}

	updated := &models.Hospital{}
	coll := db.OpenCollections(util.HospitalCollection)
	if err := db.FindOneAndUpdate(ctx, coll, bson.M{"_id": oid, "isActive": true}, bson.M{"$set": set}, updated); err != nil {
		if db.IsNotFound(err) {
			return nil, util.NotFound(util.HOSPITAL_NOT_FOUND)
		}
		log.Error().Err(err).Msg("Error from findOneAndUpdate")
		return nil, err
	}
	key := util.HospitalKey + oid.Hex()
	invalidate(ctx, key, util.HospitalListKey)
	if err := redis.SetCache(ctx, key, updated); err != nil {
		log.Warn().Err(err).Msg("Failed caching updated hospital")
	}
	return updated, nil
}

// DeleteHospital is a soft delete.
func DeleteHospital(ctx context.Context, id string) error {
	oid, err := ParseObjectID(id)
	if err != nil {
		return err
	}
	coll := db.OpenCollections(util.HospitalCollection)
	res, err := db.UpdateOne(ctx, coll, bson.M{"_id": oid, "isActive": true}, bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now().UTC()}})
	if err != nil {
		log.Error().Err(err).Msg("Error from updateOne")
		return err
	}
	if res.MatchedCount == 0 {
		return util.NotFound(util.HOSPITAL_NOT_FOUND)
	}
	invalidate(ctx, util.HospitalKey+oid.Hex(), util.HospitalListKey, util.DoctorByHospKey+oid.Hex())
	return nil
}

func invalidate(ctx context.Context, keys ...string) {
	if err := redis.DeleteCache(ctx, keys...); err != nil {
		log.Warn().Err(err).Strs("keys", keys).Msg("Error from deleteCache")
	}
}

func insertedID(res *mongo.InsertOneResult) primitive.ObjectID {
	if res == nil {
		return primitive.NilObjectID
	}
	oid, _ := res.InsertedID.(primitive.ObjectID)
	return oid
}

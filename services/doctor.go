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
	"go.mongodb.org/mongo-driver/mongo"
)

type DoctorInput struct {
	Name           *string `json:"name"`
	Email          *string `json:"email"`
	Specialization *string `json:"specialization"`
	Hospital       *string `json:"hospital"`
	ContactNumber  *string `json:"contactNumber"`
	Experience     *int    `json:"experience"`
}

/*
* Match active doctors, sorted by name
* Populate the hospital (name, address)
 */
func doctorPipeline(match bson.M) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "name", Value: 1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: util.HospitalCollection},
			{Key: "localField", Value: "hospital"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "hospital"},
		}}},
		{{Key: "$unwind", Value: bson.D{{Key: "path", Value: "$hospital"}, {Key: "preserveNullAndEmptyArrays", Value: true}}}},
	}
}

func findDoctors(ctx context.Context, match bson.M) ([]models.DoctorView, error) {
	match["isActive"] = true
	doctors := []models.DoctorView{}
	coll := db.OpenCollections(util.DoctorCollection)
	if err := db.Aggregate(ctx, coll, doctorPipeline(match), &doctors); err != nil {
		log.Error().Err(err).Msg("Error while fetching doctors")
		return nil, err
	}
	return doctors, nil
}

/*
* Validate inputs
* The hospital must exist
* Check if a doctor with the same email exists
* Save to db, drop cached lists
 */
func CreateDoctor(ctx context.Context, in DoctorInput) (*models.Doctor, error) {
	name, email, specialization := trimmed(in.Name), strings.ToLower(trimmed(in.Email)), trimmed(in.Specialization)
	if name == "" || email == "" || specialization == "" || trimmed(in.Hospital) == "" {
		return nil, util.Validation(util.ALL_FIELDS_REQUIRED)
	}
	hospital, err := FetchHospitalByID(ctx, trimmed(in.Hospital))
	if err != nil {
		log.Error().Err(err).Msg("Error from FetchHospitalByID")
		return nil, err
	}

	coll := db.OpenCollections(util.DoctorCollection)
	existing := &models.Doctor{}
	err = db.FindOne(ctx, coll, bson.M{"email": email}, existing)
	if err == nil {
		return nil, util.Validation(util.DOCTOR_ALREADY_EXIST)
	}
	if !db.IsNotFound(err) {
		log.Error().Err(err).Msg("Error from findOne")
		return nil, err
	}

	now := time.Now().UTC()
	doctor := &models.Doctor{
		Name:           name,
		Email:          email,
		Specialization: specialization,
		Hospital:       hospital.ID,
		ContactNumber:  trimmed(in.ContactNumber),
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if in.Experience != nil {
		doctor.Experience = *in.Experience
	}
	res, err := db.CreateOne(ctx, coll, doctor)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, util.Validation(util.DOCTOR_ALREADY_EXIST)
		}
		log.Error().Err(err).Msg("Error from createOne")
		return nil, err
	}
	doctor.ID = insertedID(res)
	invalidate(ctx, util.DoctorListKey, util.DoctorByHospKey+hospital.ID.Hex())
	return doctor, nil
}

/*
* Check in cache, if exists return doctor
* If not exists, search in database and set in cache
 */
func FetchDoctorByID(ctx context.Context, id string) (*models.DoctorView, error) {
	oid, err := ParseObjectID(id)
	if err != nil {
		return nil, err
	}
	key := util.DoctorKey + oid.Hex()
	cached := &models.DoctorView{}
	if exists, err := redis.GetCache(ctx, key, cached); err == nil && exists {
		log.Debug().Str("key", key).Msg("From cache")
		return cached, nil
	}

	doctors, err := findDoctors(ctx, bson.M{"_id": oid})
	if err != nil {
		return nil, err
	}
	if len(doctors) == 0 {
		return nil, util.NotFound(util.DOCTOR_NOT_FOUND)
	}
	if err := redis.SetCache(ctx, key, doctors[0]); err != nil {
		log.Warn().Err(err).Msg("Error from setCache")
	}
	return &doctors[0], nil
}

func FetchAllDoctors(ctx context.Context) ([]models.DoctorView, error) {
	doctors := []models.DoctorView{}
	if exists, err := redis.GetCache(ctx, util.DoctorListKey, &doctors); err == nil && exists {
		return doctors, nil
	}
	doctors, err := findDoctors(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	if err := redis.SetCache(ctx, util.DoctorListKey, doctors); err != nil {
		log.Warn().Err(err).Msg("Error from setCache")
	}
	return doctors, nil
}

func FetchDoctorsByHospital(ctx context.Context, hospitalID string) ([]models.DoctorView, error) {
	oid, err := ParseObjectID(hospitalID)
	if err != nil {
		return nil, err
	}
	key := util.DoctorByHospKey + oid.Hex()
	doctors := []models.DoctorView{}
	if exists, err := redis.GetCache(ctx, key, &doctors); err == nil && exists {
		return doctors, nil
	}
	doctors, err = findDoctors(ctx, bson.M{"hospital": oid})
	if err != nil {
		return nil, err
	}
	if err := redis.SetCache(ctx, key, doctors); err != nil {
		log.Warn().Err(err).Msg("Error from setCache")
	}
	return doctors, nil
}

/*
* If fields provided, trim them and add them to the update
* A changed hospital must exist
* Delete from cache, the next read refills it
 */
func UpdateDoctor(ctx context.Context, id string, in DoctorInput) (*models.Doctor, error) {
	oid, err := ParseObjectID(id)
	if err != nil {
		return nil, err
	}
	set := bson.M{"updatedAt": time.Now().UTC()}
	fields := map[string]*string{
		"name":           in.Name,
		"email":          in.Email,
		"specialization": in.Specialization,
		"contactNumber":  in.ContactNumber,
	}
	for field, v := range fields {
		if v == nil {
			continue
		}
		if trimmed(v) == "" && field != "contactNumber" {
			return nil, util.Validation(util.ALL_FIELDS_REQUIRED)
		}
		set[field] = trimmed(v)
	}
	if email, ok := set["email"].(string); ok {
		set["email"] = strings.ToLower(email)
	}
	if in.Experience != nil {
		set["experience"] = *in.Experience
	}
	if in.Hospital != nil {
		hospital, err := FetchHospitalByID(ctx, trimmed(in.Hospital))
		if err != nil {
			return nil, err
		}
		set["hospital"] = hospital.ID
	}

	previous := &models.Doctor{}
	coll := db.OpenCollections(util.DoctorCollection)
	if err := db.FindOne(ctx, coll, bson.M{"_id": oid, "isActive": true}, previous); err != nil {
		if db.IsNotFound(err) {
			return nil, util.NotFound(util.DOCTOR_NOT_FOUND)
		}
		return nil, err
	}
	updated := &models.Doctor{}
	if err := db.FindOneAndUpdate(ctx, coll, bson.M{"_id": oid, "isActive": true}, bson.M{"$set": set}, updated); err != nil {
		if db.IsNotFound(err) {
			return nil, util.NotFound(util.DOCTOR_NOT_FOUND)
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, util.Validation(util.DOCTOR_ALREADY_EXIST)
		}
		log.Error().Err(err).Msg("Error from findOneAndUpdate")
		return nil, err
	}
	invalidate(ctx,
		util.DoctorKey+oid.Hex(),
		util.DoctorListKey,
		util.DoctorByHospKey+previous.Hospital.Hex(),
		util.DoctorByHospKey+updated.Hospital.Hex(),
	)
	return updated, nil
}

// DeleteDoctor is a soft delete; existing appointments keep their reference.
func DeleteDoctor(ctx context.Context, id string) error {
	oid, err := ParseObjectID(id)
	if err != nil {
		return err
	}
	doctor := &models.Doctor{}
	coll := db.OpenCollections(util.DoctorCollection)
	err = db.FindOneAndUpdate(ctx, coll, bson.M{"_id": oid, "isActive": true}, bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now().UTC()}}, doctor)
	if err != nil {
		if db.IsNotFound(err) {
			return util.NotFound(util.DOCTOR_NOT_FOUND)
		}
		log.Error().Err(err).Msg("Error from findOneAndUpdate")
		return err
	}
	invalidate(ctx, util.DoctorKey+oid.Hex(), util.DoctorListKey, util.DoctorByHospKey+doctor.Hospital.Hex())
	return nil
}

package jobs

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"time"

	db "SehatCare/config/db"
	"SehatCare/models"
	"SehatCare/util"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type seedHospital struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

type seedDoctor struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Specialization string `json:"specialization"`
	Hospital       string `json:"hospital"`
	ContactNumber  string `json:"contactNumber"`
	Experience     int    `json:"experience"`
}

type SeedData struct {
	Hospitals []seedHospital `json:"hospitals"`
	Doctors   []seedDoctor   `json:"doctors"`
}

func LoadSeedData(path string) (*SeedData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data SeedData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// buildSeed assigns hospital ids up front and resolves each doctor's
// hospital by name. Emails are stored lowercase. Doctors naming an unknown
// hospital or repeating an email are skipped.
func buildSeed(data *SeedData, now time.Time) ([]interface{}, []interface{}) {
	byName := map[string]primitive.ObjectID{}
	hospitals := make([]interface{}, 0, len(data.Hospitals))
	for _, h := range data.Hospitals {
		id := primitive.NewObjectID()
		byName[h.Name] = id
		hospitals = append(hospitals, models.Hospital{
			ID: id, Name: h.Name, Address: h.Address, IsActive: true, CreatedAt: now, UpdatedAt: now,
		})
	}
	doctors := make([]interface{}, 0, len(data.Doctors))
	seen := map[string]bool{}
	for _, d := range data.Doctors {
		hospitalID, ok := byName[d.Hospital]
		if !ok {
			log.Warn().Str("doctor", d.Name).Str("hospital", d.Hospital).Msg("unknown hospital in seed data, skipping doctor")
			continue
		}
		email := strings.ToLower(strings.TrimSpace(d.Email))
		if seen[email] {
			log.Warn().Str("doctor", d.Name).Str("email", email).Msg("duplicate email in seed data, skipping doctor")
			continue
		}
		seen[email] = true
		doctors = append(doctors, models.Doctor{
			Name:           d.Name,
			Email:          email,
			Specialization: d.Specialization,
			Hospital:       hospitalID,
			ContactNumber:  d.ContactNumber,
			Experience:     d.Experience,
			IsActive:       true,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
	}
	return hospitals, doctors
}

/*
* Read hospitals and doctors from the seed file
* Only seed an empty hospitals collection
* Insert hospitals, then doctors unordered so one duplicate email does not stop the rest
* Any other doctor failure removes the new hospitals so the next start retries
 */
func ImportSeedData(ctx context.Context, path string) error {
	if path == "" {
		return nil
	}
	data, err := LoadSeedData(path)
	if err != nil {
		return err
	}
	hospitalColl := db.OpenCollections(util.HospitalCollection)
	count, err := db.Count(ctx, hospitalColl, nil)
	if err != nil {
		return err
	}
	if count > 0 {
		log.Info().Int64("hospitals", count).Msg("hospitals already present, skipping seed import")
		return nil
	}

	hospitals, doctors := buildSeed(data, time.Now().UTC())
	if len(hospitals) > 0 {
		if _, err := db.CreateMany(ctx, hospitalColl, hospitals); err != nil {
			return err
		}
	}
	if len(doctors) > 0 {
		_, err := db.CreateMany(ctx, db.OpenCollections(util.DoctorCollection), doctors, options.InsertMany().SetOrdered(false))
		switch {
		case err == nil:
		case db.OnlyDuplicateKeys(err):
			log.Warn().Err(err).Msg("some seed doctors already exist, skipped")
		default:
			rollbackHospitals(ctx, hospitalColl, hospitals)
			return err
		}
	}
	log.Info().Int("hospitals", len(hospitals)).Int("doctors", len(doctors)).Msg("Data import completed successfully")
	return nil
}

func rollbackHospitals(ctx context.Context, coll *mongo.Collection, hospitals []interface{}) {
	ids := make([]primitive.ObjectID, 0, len(hospitals))
	for _, h := range hospitals {
		ids = append(ids, h.(models.Hospital).ID)
	}
	if _, err := db.DeleteMany(ctx, coll, bson.M{"_id": bson.M{"$in": ids}}); err != nil {
		log.Error().Err(err).Msg("Error removing seeded hospitals after failed doctor import")
	}
}
